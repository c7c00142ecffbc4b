package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: budget out of range", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrRequestNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrPayoutLinkMissing, http.StatusPreconditionFailed},
		{fmt.Errorf("%w (from quoted to quoted)", domain.ErrInvalidTransition), http.StatusPreconditionFailed},
		{errors.New("database on fire"), http.StatusInternalServerError},
		{echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_HidesInternalCause(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("mongo: connection string leaked"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"internal server error"}`+"\n" {
		t.Fatalf("internal details leaked: %s", body)
	}
}
