package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireIdentity gates a route group on the token's identity kind. Operator
// and client tokens are minted by independent login surfaces; neither grants
// the other's routes.
func RequireIdentity(kinds ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			kind, _ := c.Get("kind").(string)
			if _, ok := allowed[kind]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
