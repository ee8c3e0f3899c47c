package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking records a user reserving a facility time window, either
// against an hourly slot (booking_kind=SLOT) or a purchased duration
// pass (booking_kind=PASS, with PassPurchaseID set).  Prices are
// snapshotted at creation so later facility price changes never affect
// existing bookings.
//
// Invariant: for a given (facility, booking_date, start_time) the
// number of bookings with status in {PENDING, CONFIRMED} must not
// exceed the governing slot's max_bookings/max_capacity.  The check and
// the insert run in one transaction under a row lock.
//
// Fields:
//  ID              – primary key identifier.
//  FacilityID      – facility being booked.
//  UserID          – user who made the booking.
//  BookingKind     – SLOT or PASS.
//  PassPurchaseID  – purchase backing a PASS booking (nil for SLOT).
//  BookingDate     – calendar date of the booking.
//  StartTime       – window start (HH:MM).
//  EndTime         – window end (HH:MM).
//  DurationHours   – booked duration in hours.
//  PricePerHour    – hourly price snapshot.
//  TotalAmount     – price before adjustments.
//  FinalAmount     – price after adjustments (amenities, discounts).
//  Status          – PENDING, CONFIRMED, CANCELLED or COMPLETED.
//  PaymentStatus   – PENDING or PAID.
//  PaymentReceipt  – opaque URL of the uploaded payment proof (nullable).
//  ReceiptVerified – set by an admin after checking the receipt.
//  SpecialRequests – free text from the customer.
//  CancelReason    – recorded on reject/cancel (nullable).
type Booking struct {
	ID              uint64          `json:"id"`                         // bookings.id
	FacilityID      uint64          `json:"facility_id"`                // bookings.facility_id
	UserID          uint64          `json:"user_id"`                    // bookings.user_id
	BookingKind     string          `json:"booking_kind"`               // bookings.booking_kind
	PassPurchaseID  *uint64         `json:"pass_purchase_id,omitempty"` // bookings.pass_purchase_id (nullable)
	BookingDate     time.Time       `json:"booking_date"`               // bookings.booking_date
	StartTime       string          `json:"start_time"`                 // bookings.start_time
	EndTime         string          `json:"end_time"`                   // bookings.end_time
	DurationHours   decimal.Decimal `json:"duration_hours"`             // bookings.duration_hours
	PricePerHour    decimal.Decimal `json:"price_per_hour"`             // bookings.price_per_hour
	TotalAmount     decimal.Decimal `json:"total_amount"`               // bookings.total_amount
	FinalAmount     decimal.Decimal `json:"final_amount"`               // bookings.final_amount
	Status          string          `json:"status"`                     // bookings.status
	PaymentStatus   string          `json:"payment_status"`             // bookings.payment_status
	PaymentReceipt  *string         `json:"payment_receipt,omitempty"`  // bookings.payment_receipt (nullable)
	ReceiptVerified bool            `json:"receipt_verified"`           // bookings.receipt_verified
	SpecialRequests string          `json:"special_requests"`           // bookings.special_requests
	CancelReason    *string         `json:"cancel_reason,omitempty"`    // bookings.cancel_reason (nullable)
	CreatedAt       time.Time       `json:"created_at"`                 // bookings.created_at
	UpdatedAt       time.Time       `json:"updated_at"`                 // bookings.updated_at
}
