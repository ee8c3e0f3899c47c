package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/booking"
	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/queue"
	queue_publisher "github.com/iliyamo/playground-booking/internal/service"
)

// notifyBookingStatus publishes a booking status event best-effort.  A
// broker outage must never fail the request, so errors are swallowed
// here (the publisher already logs them).
func notifyBookingStatus(b model.Booking, facilityName, currencyCode, reason string) {
	ev := queue.BookingStatusEvent{
		BookingID:    b.ID,
		FacilityID:   b.FacilityID,
		FacilityName: facilityName,
		UserID:       b.UserID,
		BookingKind:  b.BookingKind,
		BookingDate:  b.BookingDate.Format("2006-01-02"),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status,
		Reason:       reason,
		FinalAmount:  b.FinalAmount.String(),
		CurrencyCode: currencyCode,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingEvent(ctx, ev)
	}()
}

// ListFacilityBookings handles GET /v1/owner/facilities/:id/bookings.
// Elapsed confirmed bookings are completed lazily before listing.
func (h *OwnerHandler) ListFacilityBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	ctx := c.Request().Context()
	_, _ = h.BookingRepo.CompleteElapsed(ctx, id, time.Now())
	items, err := h.BookingRepo.ListByFacilityForOwner(ctx, id, ownerID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// loadOwnedBooking fetches a booking and its facility after verifying
// ownership.  On failure the response is already written.
func (h *OwnerHandler) loadOwnedBooking(c echo.Context, ownerID uint64) (model.Booking, model.Facility, bool) {
	id, okID := parseID(c, "id")
	if !okID {
		_ = fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid booking id")
		return model.Booking{}, model.Facility{}, false
	}
	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		_ = failErr(c, err)
		return model.Booking{}, model.Facility{}, false
	}
	f, err := h.FacilityRepo.GetByID(ctx, b.FacilityID)
	if err != nil {
		_ = failErr(c, err)
		return model.Booking{}, model.Facility{}, false
	}
	return b, f, true
}

// ApproveBooking handles POST /v1/owner/bookings/:id/approve.  Approval
// requires an admin-verified payment receipt; a failed gate leaves the
// booking untouched.
func (h *OwnerHandler) ApproveBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	b, f, okB := h.loadOwnedBooking(c, ownerID)
	if !okB {
		return nil
	}
	next, err := booking.Approve(b.Status, b.ReceiptVerified)
	if err != nil {
		if err == booking.ErrReceiptNotVerified {
			return fail(c, http.StatusBadRequest, codePreconditionFailed, "payment receipt not verified")
		}
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "booking cannot be approved from its current state")
	}
	if err := h.BookingRepo.SetStatus(c.Request().Context(), b.ID, next, nil); err != nil {
		return failErr(c, err)
	}
	b.Status = next
	notifyBookingStatus(b, f.Name, f.CurrencyCode, "")
	return ok(c, http.StatusOK, echo.Map{"id": b.ID, "status": next})
}

// RejectBooking handles POST /v1/owner/bookings/:id/reject with an
// optional reason recorded on the booking.
func (h *OwnerHandler) RejectBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&body)
	body.Reason = strings.TrimSpace(body.Reason)

	b, f, okB := h.loadOwnedBooking(c, ownerID)
	if !okB {
		return nil
	}
	next, err := booking.Reject(b.Status)
	if err != nil {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "only pending bookings can be rejected")
	}
	var reason *string
	if body.Reason != "" {
		reason = &body.Reason
	}
	if err := h.BookingRepo.SetStatus(c.Request().Context(), b.ID, next, reason); err != nil {
		return failErr(c, err)
	}
	b.Status = next
	notifyBookingStatus(b, f.Name, f.CurrencyCode, body.Reason)
	return ok(c, http.StatusOK, echo.Map{"id": b.ID, "status": next})
}

// CancelBooking handles POST /v1/owner/bookings/:id/cancel for
// confirmed bookings the owner must withdraw (maintenance, weather).
func (h *OwnerHandler) CancelBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&body)
	body.Reason = strings.TrimSpace(body.Reason)

	b, f, okB := h.loadOwnedBooking(c, ownerID)
	if !okB {
		return nil
	}
	next, err := booking.Cancel(b.Status)
	if err != nil {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "booking cannot be cancelled from its current state")
	}
	var reason *string
	if body.Reason != "" {
		reason = &body.Reason
	}
	if err := h.BookingRepo.SetStatus(c.Request().Context(), b.ID, next, reason); err != nil {
		return failErr(c, err)
	}
	b.Status = next
	notifyBookingStatus(b, f.Name, f.CurrencyCode, body.Reason)
	return ok(c, http.StatusOK, echo.Map{"id": b.ID, "status": next})
}

// CompleteBooking handles POST /v1/owner/bookings/:id/complete for
// marking a confirmed booking as done ahead of the lazy sweep.
func (h *OwnerHandler) CompleteBooking(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	b, f, okB := h.loadOwnedBooking(c, ownerID)
	if !okB {
		return nil
	}
	next, err := booking.Complete(b.Status)
	if err != nil {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "only confirmed bookings can be completed")
	}
	if err := h.BookingRepo.SetStatus(c.Request().Context(), b.ID, next, nil); err != nil {
		return failErr(c, err)
	}
	b.Status = next
	notifyBookingStatus(b, f.Name, f.CurrencyCode, "")
	return ok(c, http.StatusOK, echo.Map{"id": b.ID, "status": next})
}
