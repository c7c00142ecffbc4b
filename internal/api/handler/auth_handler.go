package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/quoting-api/internal/api/metrics"
	"github.com/siteflow/quoting-api/internal/core/domain"
	"github.com/siteflow/quoting-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a JWT token, or signals that the
// account must complete first-time password setup.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		// Malformed credentials get the same answer as wrong ones.
		return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	if result.MustSetPassword {
		metrics.LoginsTotal.WithLabelValues("must_set_password").Inc()
		return c.JSON(http.StatusOK, authResponse{MustSetPassword: true, Email: result.Email})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Setup completes first-time password setup and returns a fresh session.
//
// @Summary      Complete first-time password setup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      setupRequest  true  "Email and new password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/setup [post]
func (h *AuthHandler) Setup(c echo.Context) error {
	var req setupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.CompleteSetup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}
