package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

func rbacContext(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	c, rec := rbacContext("admin")

	called := false
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for allowed role")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsOtherRoles(t *testing.T) {
	for _, role := range []string{"user", "superadmin", ""} {
		c, rec := rbacContext(role)

		handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
			t.Fatalf("should not reach next for role %q", role)
			return nil
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("role %q: expected 403, got %d", role, rec.Code)
		}
	}
}
