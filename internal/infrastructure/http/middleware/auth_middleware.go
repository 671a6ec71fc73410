package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-scribe/errors"
)

// EchoAuth returns an Echo middleware enforcing a static bearer token on
// the API group. An empty configured token disables the check, which is
// the development default.
func EchoAuth(apiToken string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiToken == "" {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				return errors.ErrUnauthenticated()
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) != 1 {
				return errors.ErrUnauthenticated()
			}

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	// Authorization header first, "Bearer <token>"
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
