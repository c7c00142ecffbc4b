package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/quoting-api/internal/core/ports"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	service ports.UserService
}

func NewProfileHandler(service ports.UserService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me returns the authenticated caller's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetPayoutLink updates the calling administrator's payout link.
//
// @Summary      Set own payout link
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      payoutLinkRequest  true  "Payout link"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/me/payout-link [put]
func (h *ProfileHandler) SetPayoutLink(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req payoutLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.SetPayoutLink(c.Request().Context(), userID, role, req.Link)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
