package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/quoting-api/internal/api/metrics"
	"github.com/siteflow/quoting-api/internal/core/domain"
	"github.com/siteflow/quoting-api/internal/core/ports"
)

// RequestHandler handles HTTP operations on the request lifecycle.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Submit creates a new pending service request owned by the caller.
//
// @Summary      Submit a service request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRequest  true  "Request details"
// @Success      201   {object}  domain.Request
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/requests [post]
func (h *RequestHandler) Submit(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Submit(c.Request().Context(), ports.SubmitInput{
		UserID:      userID,
		Type:        req.Type,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		return err
	}

	metrics.RequestsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListMine returns the caller's own requests, newest first.
//
// @Summary      List own requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Request]
// @Failure      401  {object}  map[string]string
// @Router       /api/requests/mine [get]
func (h *RequestHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse[*domain.Request]{Items: items, Total: len(items)})
}

// ListAll returns every request with owner emails joined in. Admin only.
//
// @Summary      List all requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.RequestWithOwner]
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/requests [get]
func (h *RequestHandler) ListAll(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListAll(c.Request().Context(), role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse[*domain.RequestWithOwner]{Items: items, Total: len(items)})
}

// Quote attaches a price and the admin's payout link to a pending request.
//
// @Summary      Quote a pending request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Request id"
// @Param        body  body      quoteRequest  true  "Quoted price"
// @Success      200   {object}  domain.Request
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      412   {object}  map[string]string
// @Router       /api/requests/{id}/quote [post]
func (h *RequestHandler) Quote(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quoted, err := h.service.Quote(c.Request().Context(), ports.QuoteInput{
		AdminID:   userID,
		Role:      role,
		RequestID: c.Param("id"),
		Price:     req.Price,
	})
	if err != nil {
		return err
	}

	metrics.QuotesIssuedTotal.Inc()
	metrics.StatusTransitionsTotal.WithLabelValues(string(domain.StatusQuoted)).Inc()
	return c.JSON(http.StatusOK, quoted)
}

// UpdateStatus advances a request to paid or completed. Admin only; called
// by the payment-confirmation and fulfillment collaborators.
//
// @Summary      Advance a request's status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.Request
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      412   {object}  map[string]string
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), role, c.Param("id"), domain.RequestStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, updated)
}
