package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/repository"
)

// Machine-readable error codes carried in every failure envelope.  The
// code is stable for clients; the message is free text.
const (
	codeInvalidParameter    = "invalid_parameter"
	codeUnauthorized        = "unauthorized"
	codeForbidden           = "forbidden"
	codeNotFound            = "not_found"
	codePreconditionFailed  = "precondition_failed"
	codeHasActiveDependents = "has_active_dependents"
	codeConflict            = "conflict"
	codeInternal            = "internal_error"
)

// ok writes a success envelope.  Every response, success or failure,
// carries an explicit boolean so clients never infer outcome from
// status codes alone.
func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// fail writes a failure envelope with a stable error code.
func fail(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": echo.Map{"code": code, "message": msg}})
}

// failErr maps repository sentinel errors onto the error taxonomy.
// Unknown errors become opaque 500s so internals never leak.
func failErr(c echo.Context, err error) error {
	switch err {
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, codeForbidden, "you do not own this resource")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, codeConflict, "resource already exists")
	case repository.ErrFacilityNotFound:
		return fail(c, http.StatusNotFound, codeNotFound, "facility not found")
	case repository.ErrFacilityNotActive:
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "facility is not accepting bookings")
	case repository.ErrSlotNotFound:
		return fail(c, http.StatusNotFound, codeNotFound, "slot not found")
	case repository.ErrSlotFull:
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "slot is already booked")
	case repository.ErrPassNotFound:
		return fail(c, http.StatusNotFound, codeNotFound, "pass not found")
	case repository.ErrPurchaseNotFound:
		return fail(c, http.StatusNotFound, codeNotFound, "pass purchase not found")
	case repository.ErrPurchaseNotUsable:
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "pass purchase not active for that date")
	case repository.ErrHasActivePurchases:
		return fail(c, http.StatusBadRequest, codeHasActiveDependents, "pass has active purchases and was deactivated instead")
	case repository.ErrBookingNotFound:
		return fail(c, http.StatusNotFound, codeNotFound, "booking not found")
	case repository.ErrDraftNotFound:
		return fail(c, http.StatusNotFound, codeNotFound, "draft not found or expired")
	case repository.ErrDraftUnavailable:
		return fail(c, http.StatusServiceUnavailable, codeInternal, "draft staging unavailable")
	}
	return fail(c, http.StatusInternalServerError, codeInternal, "internal error")
}
