package booking

import (
	"errors"
	"testing"
)

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestApproveRequiresVerifiedReceipt(t *testing.T) {
	got, err := Approve(StatusPending, false)
	if !errors.Is(err, ErrReceiptNotVerified) {
		t.Fatalf("err = %v, want ErrReceiptNotVerified", err)
	}
	if got != StatusPending {
		t.Errorf("status = %s, want unchanged PENDING", got)
	}
}

func TestApproveVerified(t *testing.T) {
	got, err := Approve(StatusPending, true)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got != StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", got)
	}
}

func TestApproveFromNonPending(t *testing.T) {
	for _, from := range []string{StatusConfirmed, StatusCancelled, StatusCompleted} {
		if _, err := Approve(from, true); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Approve from %s: err = %v, want ErrInvalidTransition", from, err)
		}
	}
}

func TestRejectOnlyFromPending(t *testing.T) {
	if got, err := Reject(StatusPending); err != nil || got != StatusCancelled {
		t.Errorf("Reject(PENDING) = %s, %v", got, err)
	}
	if _, err := Reject(StatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Reject(CONFIRMED): err = %v, want ErrInvalidTransition", err)
	}
}

func TestCancelTerminalStatesRejected(t *testing.T) {
	for _, from := range []string{StatusCancelled, StatusCompleted} {
		if _, err := Cancel(from); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Cancel from %s: err = %v, want ErrInvalidTransition", from, err)
		}
	}
}

func TestCompleteOnlyFromConfirmed(t *testing.T) {
	if got, err := Complete(StatusConfirmed); err != nil || got != StatusCompleted {
		t.Errorf("Complete(CONFIRMED) = %s, %v", got, err)
	}
	if _, err := Complete(StatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Complete(PENDING): err = %v, want ErrInvalidTransition", err)
	}
}
