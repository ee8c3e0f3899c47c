// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingStatusEvent is published whenever a booking changes state
// (created, approved, rejected, cancelled, completed).  It carries
// enough information for downstream consumers to notify the customer or
// feed analytics without querying the primary database.
type BookingStatusEvent struct {
	BookingID    uint64 `json:"booking_id"`
	FacilityID   uint64 `json:"facility_id"`
	FacilityName string `json:"facility_name"`
	UserID       uint64 `json:"user_id"`
	BookingKind  string `json:"booking_kind"` // SLOT or PASS
	BookingDate  string `json:"booking_date"` // YYYY-MM-DD
	StartTime    string `json:"start_time"`   // HH:MM
	EndTime      string `json:"end_time"`     // HH:MM
	Status       string `json:"status"`       // new booking status
	Reason       string `json:"reason,omitempty"`
	FinalAmount  string `json:"final_amount"` // decimal string
	CurrencyCode string `json:"currency_code"`
	OccurredAt   string `json:"occurred_at"` // RFC3339 UTC
}
