package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/playground-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/playground-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication: a refresh token in the
	// body ends one session, a bearer token ends all sessions.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER", "OWNER", "ADMIN"))
	auth.GET("/me", a.Me)

	// Alias outside the protected group so a refresh token in the body
	// suffices to terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints.  These
// return sanitized data for guests and apply no JWT or role middleware.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, pr *handler.PricingHandler) {
	// Catalog lists used to populate search filters and forms.
	e.GET("/v1/catalog/sports", p.ListSports)
	e.GET("/v1/catalog/playground-types", p.ListPlaygroundTypes)
	e.GET("/v1/catalog/cities", p.ListCities)
	e.GET("/v1/catalog/currencies", p.ListCurrencies)

	// Facility search and details.  Only ACTIVE facilities are visible.
	e.GET("/v1/facilities", p.SearchFacilities)
	e.GET("/v1/facilities/:id", p.GetFacility)
	e.GET("/v1/facilities/:id/slots", p.ListFacilitySlots)
	// Advisory availability for one date; read-only, no locks.
	e.GET("/v1/facilities/:id/availability", p.GetAvailability)

	// Price quotes are pure calculations and never reserve anything, so
	// guests may use them while browsing.
	e.POST("/v1/facilities/:id/quote", pr.QuoteBooking)
	e.POST("/v1/facilities/:id/pass-quote", pr.QuotePass)
}
