package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easyjatra/marketplace-api/internal/api/middleware"
)

// ctxEmail extracts the verified email injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is
// a routing mistake and fails closed with 401.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.ContextEmailKey).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}
