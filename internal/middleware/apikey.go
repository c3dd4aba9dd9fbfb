package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const apiKeyHeader = "x-api-key"

// APIKeyMiddleware guards the machine-to-machine trader API with a static
// shared secret carried in the x-api-key header.
type APIKeyMiddleware struct {
	secret string
}

func NewAPIKeyMiddleware(secret string) *APIKeyMiddleware {
	return &APIKeyMiddleware{secret: secret}
}

// Require rejects with 500 when the server has no secret configured, 401
// when the header is absent, 403 when it does not match.
func (m *APIKeyMiddleware) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.secret == "" {
				return echo.NewHTTPError(http.StatusInternalServerError, "API key is not configured on the server")
			}
			provided := c.Request().Header.Get(apiKeyHeader)
			if provided == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing x-api-key header")
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(m.secret)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid API key")
			}
			return next(c)
		}
	}
}
