package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/handler"
	"github.com/iliyamo/playground-booking/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the USER role.  Customers create
// bookings, manage their own bookings and receipts, and purchase
// duration passes.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER"),
	)

	// Creation covers both hourly SLOT bookings and PASS bookings backed
	// by an active duration-pass purchase.
	g.POST("/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetMyBooking)
	g.POST("/bookings/:id/cancel", h.CancelMyBooking)
	// Attaches a payment receipt URL; verification is an admin action.
	g.PUT("/bookings/:id/receipt", h.AttachReceipt)

	// Duration passes.  :id on purchase is the pass definition; :id on
	// cancel is the purchase itself.
	g.POST("/passes/:id/purchase", h.PurchasePass)
	g.GET("/my-passes", h.ListMyPurchases)
	g.POST("/my-passes/:id/cancel", h.CancelPurchase)
}
