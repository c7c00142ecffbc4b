package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func sanitizedBody(t *testing.T, payload string) map[string]any {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got map[string]any
	handler := SanitizeBody()(func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return got
}

func TestSanitizeBody_StripsOperatorKeys(t *testing.T) {
	got := sanitizedBody(t, `{"email":"a@b.com","$where":"1==1","nested":{"$gt":"","safe":"v","a.b":"x"}}`)

	if _, ok := got["$where"]; ok {
		t.Fatalf("$-prefixed key not stripped")
	}
	nested, _ := got["nested"].(map[string]any)
	if nested == nil {
		t.Fatalf("nested object missing")
	}
	if _, ok := nested["$gt"]; ok {
		t.Fatalf("nested operator key not stripped")
	}
	if _, ok := nested["a.b"]; ok {
		t.Fatalf("dotted key not stripped")
	}
	if nested["safe"] != "v" {
		t.Fatalf("safe key lost")
	}
}

func TestSanitizeBody_TrimsStrings(t *testing.T) {
	got := sanitizedBody(t, `{"email":"  a@b.com  ","tags":["  x "]}`)

	if got["email"] != "a@b.com" {
		t.Fatalf("string not trimmed: %q", got["email"])
	}
	tags, _ := got["tags"].([]any)
	if len(tags) != 1 || tags[0] != "x" {
		t.Fatalf("array strings not trimmed: %v", got["tags"])
	}
}

func TestSanitizeBody_PassesThroughNonJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain text"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SanitizeBody()(func(c echo.Context) error {
		body, _ := io.ReadAll(c.Request().Body)
		if string(body) != "plain text" {
			t.Fatalf("non-JSON body altered: %q", body)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
