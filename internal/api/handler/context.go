package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both claims must be
// present (presence proves the middleware ran), and the role must belong to
// the closed role set.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	role = domain.Role(roleStr)

	if userID == "" || !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
