package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/repository"
)

// AdminHandler bundles repositories for platform administrators:
// facility approval and payment receipt verification.
type AdminHandler struct {
	FacilityRepo *repository.FacilityRepo
	BookingRepo  *repository.BookingRepo
}

// NewAdminHandler constructs an AdminHandler and panics on nil
// dependencies.
func NewAdminHandler(fr *repository.FacilityRepo, br *repository.BookingRepo) *AdminHandler {
	if fr == nil || br == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{FacilityRepo: fr, BookingRepo: br}
}

// ListPendingFacilities handles GET /v1/admin/facilities/pending, the
// approval queue in submission order.
func (h *AdminHandler) ListPendingFacilities(c echo.Context) error {
	items, err := h.FacilityRepo.ListByStatus(c.Request().Context(), model.FacilityPending)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load facilities")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// ApproveFacility handles POST /v1/admin/facilities/:id/approve.
// Only PENDING facilities can be approved; approval makes them
// bookable.
func (h *AdminHandler) ApproveFacility(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if f.Status != model.FacilityPending {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "facility is not pending approval")
	}
	if err := h.FacilityRepo.UpdateStatus(ctx, id, model.FacilityActive); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "status": model.FacilityActive})
}

// DeactivateFacility handles POST /v1/admin/facilities/:id/deactivate.
// The facility stops accepting bookings; existing bookings are left for
// the owner to resolve.
func (h *AdminHandler) DeactivateFacility(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if f.Status == model.FacilityInactive {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "facility is already inactive")
	}
	if err := h.FacilityRepo.UpdateStatus(ctx, id, model.FacilityInactive); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "status": model.FacilityInactive})
}

// VerifyReceipt handles POST /v1/admin/bookings/:id/receipt/verify.
// Verification marks the payment PAID and unblocks owner approval.
func (h *AdminHandler) VerifyReceipt(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid booking id")
	}
	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if b.PaymentReceipt == nil {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "no receipt uploaded")
	}
	if err := h.BookingRepo.SetReceiptVerification(ctx, id, true); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "receipt_verified": true})
}

// RejectReceipt handles POST /v1/admin/bookings/:id/receipt/reject.
// The payment reverts to PENDING and the customer must upload a new
// proof.
func (h *AdminHandler) RejectReceipt(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid booking id")
	}
	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if b.PaymentReceipt == nil {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "no receipt uploaded")
	}
	if err := h.BookingRepo.SetReceiptVerification(ctx, id, false); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "receipt_verified": false})
}
