package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/handler"    // owner handlers
	"github.com/iliyamo/playground-booking/internal/middleware" // JWT + role middlewares
)

// RegisterOwner registers OWNER-scoped endpoints under /v1.
// All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Facilities ----
	g.POST("/facilities", o.CreateFacility)
	g.GET("/facilities", o.ListMyFacilities)
	g.GET("/facilities/:id", o.GetMyFacility)
	g.PUT("/facilities/:id/hours", o.UpsertHours)
	g.PUT("/facilities/:id/maintenance", o.SetMaintenance)

	// ---- Amenities ----
	g.POST("/facilities/:id/amenities", o.CreateAmenity)
	g.GET("/facilities/:id/amenities", o.ListAmenities)

	// ---- Time slots ----
	g.POST("/facilities/:id/slots/generate", o.GenerateSlots)
	g.POST("/facilities/:id/slots", o.AddSlot)
	g.GET("/facilities/:id/slots", o.ListSlots)
	g.PUT("/facilities/:id/slots/:slotID/availability", o.SetSlotAvailability)

	// ---- Playground slots (custom non-grid windows) ----
	g.POST("/facilities/:id/playground-slots", o.AddPlaygroundSlot)
	g.GET("/facilities/:id/playground-slots", o.ListPlaygroundSlots)

	// ---- Duration passes ----
	g.POST("/facilities/:id/passes", o.CreatePass)
	g.GET("/facilities/:id/passes", o.ListPasses)
	g.DELETE("/facilities/:id/passes/:passID", o.DeletePass)

	// ---- Bookings ----
	g.GET("/facilities/:id/bookings", o.ListFacilityBookings)
	g.POST("/bookings/:id/approve", o.ApproveBooking)
	g.POST("/bookings/:id/reject", o.RejectBooking)
	g.POST("/bookings/:id/cancel", o.CancelBooking)
	g.POST("/bookings/:id/complete", o.CompleteBooking)

	// ---- Drafts (staged facility setup, committed atomically) ----
	g.POST("/drafts", o.StageDraft)
	g.GET("/drafts/:draftID", o.GetDraft)
	g.PUT("/drafts/:draftID/hours", o.SetDraftHours)
	g.POST("/drafts/:draftID/slots/generate", o.GenerateDraftSlots)
	g.POST("/drafts/:draftID/playground-slots", o.AddDraftPlaygroundSlot)
	g.POST("/drafts/:draftID/passes", o.AddDraftPass)
	g.POST("/drafts/:draftID/commit", o.CommitDraft)
	g.DELETE("/drafts/:draftID", o.DeleteDraft)
}
