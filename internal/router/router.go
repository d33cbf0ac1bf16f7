// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cineseat/movie-hall-booking/internal/handler"
	"github.com/cineseat/movie-hall-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check
// for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token so a stolen token is only good once.
	g.POST("/refresh", a.Refresh)
	// Logout takes the refresh token in the body and revokes it; no JWT needed.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER", "ADMIN"))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// movie catalog and the seat map. cache may be nil, in which case the
// seat map and catalog are served uncached.
func RegisterPublic(e *echo.Echo, m *handler.MovieHandler, cache echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{}
	if cache != nil {
		mw = append(mw, cache)
	}
	e.GET("/v1/movies", m.List, mw...)
	e.GET("/v1/movies/:id", m.Get, mw...)
	// Seat status can change at any moment, so cached seat maps are a UX
	// hint only; booking always re-validates against live data.
	e.GET("/v1/movies/:id/seats", m.SeatMap, mw...)
}

// RegisterBooking registers the seat engine and booking endpoints.
// Allocation, validation, commit and cancellation all require an
// authenticated session.
func RegisterBooking(e *echo.Echo, al *handler.AllocationHandler, b *handler.BookingHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER", "ADMIN"))

	auth.POST("/movies/:id/allocate", al.Allocate)
	auth.POST("/movies/:id/validate", al.Validate)
	auth.POST("/movies/:id/bookings", b.Create)
	auth.GET("/my-bookings", b.ListMine)
	auth.DELETE("/bookings/:id", b.Cancel)
}

// RegisterAdmin registers catalog management and the global booking
// list. Only the ADMIN role passes the role middleware here.
func RegisterAdmin(e *echo.Echo, m *handler.MovieHandler, b *handler.BookingHandler, jwtSecret string) {
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))

	admin.POST("/movies", m.Create)
	admin.PUT("/movies/:id", m.Update)
	admin.DELETE("/movies/:id", m.Delete)
	admin.GET("/bookings", b.ListAll)
}
