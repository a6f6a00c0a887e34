package router // package router wires HTTP routes to their handlers and middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/handler"
	"github.com/planora/event-booking-api/internal/middleware"
	"github.com/planora/event-booking-api/internal/model"
	"github.com/planora/event-booking-api/internal/repository"
)

// RegisterRoutes registers routes that need no authentication or
// dependencies. Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login and the token lifecycle
// endpoints under /api/auth. Logout appears twice: the unprotected
// variant takes a refreshToken body, the protected one revokes every
// session of the authenticated caller.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/api/auth", middleware.Authenticate(jwtSecret, users))
	auth.POST("/logout-all", a.Logout)
}

// RegisterUsers registers the authenticated profile endpoints. Any of
// the three roles may read and update their own profile.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group("/api/users", middleware.Authenticate(jwtSecret, users))
	g.GET("/me", u.Me)
	g.PUT("/me", u.UpdateMe)
}

// RegisterEvents registers the public catalog (optionally cached) and
// the planner-only creation endpoint.
func RegisterEvents(e *echo.Echo, ev *handler.EventHandler, jwtSecret string, users *repository.UserRepo, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/api/events/public", ev.ListPublic, cache)
	} else {
		e.GET("/api/events/public", ev.ListPublic)
	}

	g := e.Group("/api/events",
		middleware.Authenticate(jwtSecret, users),
		middleware.RequireRole(model.RolePlanner),
	)
	g.POST("", ev.Create)
}

// RegisterBookings registers the client-only booking endpoints.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group("/api/bookings",
		middleware.Authenticate(jwtSecret, users),
		middleware.RequireRole(model.RoleClient),
	)
	g.POST("", b.Create)
	g.GET("/my", b.ListMy)
}
