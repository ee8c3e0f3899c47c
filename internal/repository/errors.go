// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrSlotFull signals that a booking cannot proceed because
// the governing slot already holds its maximum of active bookings.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a create or update cannot be performed
// because of conflicting state, such as adding a time slot that already
// exists for the same facility, day and window. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrFacilityNotFound is returned when a facility lookup fails.
var ErrFacilityNotFound = errors.New("facility not found")

// ErrFacilityNotActive is returned when a booking or purchase targets a
// facility whose status is not ACTIVE.
var ErrFacilityNotActive = errors.New("facility is not accepting bookings")

// ErrSlotNotFound is returned when no governing slot exists for the
// requested facility, day and start time.
var ErrSlotNotFound = errors.New("slot not found")

// ErrSlotFull is returned when the governing slot already has its
// maximum number of active (pending or confirmed) bookings. Handlers
// should translate this into a 400 precondition_failed response.
var ErrSlotFull = errors.New("slot is already booked")

// ErrPassNotFound is returned when a duration pass lookup fails.
var ErrPassNotFound = errors.New("pass not found")

// ErrPurchaseNotFound is returned when a pass purchase lookup fails.
var ErrPurchaseNotFound = errors.New("pass purchase not found")

// ErrPurchaseNotUsable is returned when a PASS booking references a
// purchase that is not active on the requested date.
var ErrPurchaseNotUsable = errors.New("pass purchase not active for that date")

// ErrHasActivePurchases blocks hard-deleting a duration pass while any
// purchase referencing it is still active. Soft delete (is_active =
// false) remains possible.
var ErrHasActivePurchases = errors.New("pass has active purchases")

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDraftNotFound is returned when a staging draft id is unknown or
// has expired.
var ErrDraftNotFound = errors.New("draft not found")

// ErrDraftUnavailable is returned when draft staging is requested but
// no Redis connection is configured.
var ErrDraftUnavailable = errors.New("draft staging unavailable")
