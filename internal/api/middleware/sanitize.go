package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// SanitizeBody rewrites JSON request bodies before binding: keys that could
// be interpreted as store query operators ($-prefixed or dotted) are
// dropped, and string values are trimmed. Non-JSON and empty bodies pass
// through untouched.
func SanitizeBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}
			if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
				return next(c)
			}

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
			}
			_ = req.Body.Close()

			var payload any
			if err := json.Unmarshal(body, &payload); err != nil {
				// Let the binder produce its own error for malformed JSON.
				req.Body = io.NopCloser(bytes.NewReader(body))
				return next(c)
			}

			cleaned, err := json.Marshal(sanitizeValue(payload))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
			}

			req.Body = io.NopCloser(bytes.NewReader(cleaned))
			req.ContentLength = int64(len(cleaned))
			return next(c)
		}
	}
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for key, inner := range val {
			if strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
				delete(val, key)
				continue
			}
			val[key] = sanitizeValue(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = sanitizeValue(inner)
		}
		return val
	case string:
		return strings.TrimSpace(val)
	default:
		return v
	}
}
