package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// RequireRole gates a route on the caller's stored role. The role comes
// from the user record looked up by verified email, not from the token:
// authorized iff the record exists and its role equals required.
func RequireRole(users ports.UserService, required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(ContextEmailKey).(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			if err := users.Authorize(c.Request().Context(), email, required); err != nil {
				return err
			}
			return next(c)
		}
	}
}
