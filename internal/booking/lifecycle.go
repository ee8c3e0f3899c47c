// Package booking defines the booking status state machine.  The
// transition rules live here as pure functions so handlers and
// repositories share one source of truth and the rules can be tested
// without a database.
package booking

import "errors"

// Status values for a booking.  CANCELLED and COMPLETED are terminal.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Payment sub-states, tracked independently of the booking status.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// Kind discriminates hourly-slot bookings from duration-pass bookings.
const (
	KindSlot = "SLOT"
	KindPass = "PASS"
)

// ErrReceiptNotVerified blocks approval of a booking whose payment
// receipt has not been verified by an admin.  Handlers translate it
// into a 400 precondition_failed response.
var ErrReceiptNotVerified = errors.New("payment not verified")

// ErrInvalidTransition is returned for any transition the state machine
// does not allow, including any move out of a terminal state.
var ErrInvalidTransition = errors.New("invalid booking state transition")

// transitions enumerates the allowed status moves.
var transitions = map[string]map[string]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
	},
}

// CanTransition reports whether moving from one status to another is
// permitted.
func CanTransition(from, to string) bool {
	return transitions[from][to]
}

// Approve validates the pending→confirmed transition.  It requires the
// receipt to have been verified first; the gate is checked before the
// transition so a failed approval leaves the status untouched.
func Approve(status string, receiptVerified bool) (string, error) {
	if !CanTransition(status, StatusConfirmed) {
		return status, ErrInvalidTransition
	}
	if !receiptVerified {
		return status, ErrReceiptNotVerified
	}
	return StatusConfirmed, nil
}

// Reject validates the pending→cancelled transition used when an owner
// or admin turns a booking down.
func Reject(status string) (string, error) {
	if status != StatusPending {
		return status, ErrInvalidTransition
	}
	return StatusCancelled, nil
}

// Cancel validates cancellation of a pending or confirmed booking.
func Cancel(status string) (string, error) {
	if !CanTransition(status, StatusCancelled) {
		return status, ErrInvalidTransition
	}
	return StatusCancelled, nil
}

// Complete validates the confirmed→completed transition applied once the
// booked time has elapsed or an admin marks the booking done.
func Complete(status string) (string, error) {
	if !CanTransition(status, StatusCompleted) {
		return status, ErrInvalidTransition
	}
	return StatusCompleted, nil
}
