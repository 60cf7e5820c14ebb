package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawmarket/petstore-api/internal/api/middleware"
	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// ctxCaller extracts the caller context injected by the Auth middleware.
// A missing caller means the route was wired without Auth; fail closed.
func ctxCaller(c echo.Context) (domain.CallerContext, error) {
	caller, ok := c.Get(middleware.CallerKey).(domain.CallerContext)
	if !ok || caller.UserID == "" {
		return domain.CallerContext{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return caller, nil
}
