package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/handler"
	"github.com/iliyamo/playground-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// Admins approve facility submissions, deactivate facilities and
// verify payment receipts on bookings.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// Facility moderation.  The pending queue lists submissions oldest
	// first.
	g.GET("/facilities/pending", a.ListPendingFacilities)
	g.POST("/facilities/:id/approve", a.ApproveFacility)
	g.POST("/facilities/:id/deactivate", a.DeactivateFacility)

	// Receipt verification gates owner approval of a booking.
	g.POST("/bookings/:id/receipt/verify", a.VerifyReceipt)
	g.POST("/bookings/:id/receipt/reject", a.RejectReceipt)
}
