package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// caller has one of the given roles. It assumes Authenticate has
// already stored the live role in the context under "role"; a missing
// or unknown role is rejected with 403.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
