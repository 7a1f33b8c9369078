package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminGuard rejects requests whose X-Admin-Token header does not match the
// configured token. An empty configured token disables the admin surface
// entirely rather than leaving it open.
func AdminGuard(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin surface disabled"})
			}
			got := c.Request().Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "invalid admin token"})
			}
			return next(c)
		}
	}
}
