package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeSlot is a recurring weekly slot template generated in bulk from a
// facility's operating hours (one row per window) or added individually
// by the owner.  Rows are never hard-deleted, only deactivated, so
// historical bookings keep a valid governing slot.
//
// The (facility, day_of_week, start_time, end_time) tuple is unique.
//
// Fields:
//  ID          – primary key identifier.
//  FacilityID  – facility the slot belongs to.
//  DayOfWeek   – 0=Sunday..6=Saturday.
//  StartTime   – window start (HH:MM).
//  EndTime     – window end (HH:MM).
//  Price       – optional override price; nil falls back to the
//                facility's base hourly price.
//  IsAvailable – whether the slot currently accepts bookings.
//  MaxBookings – simultaneous bookings allowed in this window.
type TimeSlot struct {
	ID          uint64           `json:"id"`              // time_slots.id
	FacilityID  uint64           `json:"facility_id"`     // time_slots.facility_id
	DayOfWeek   int              `json:"day_of_week"`     // time_slots.day_of_week
	StartTime   string           `json:"start_time"`      // time_slots.start_time
	EndTime     string           `json:"end_time"`        // time_slots.end_time
	Price       *decimal.Decimal `json:"price,omitempty"` // time_slots.price (nullable)
	IsAvailable bool             `json:"is_available"`    // time_slots.is_available
	MaxBookings uint32           `json:"max_bookings"`    // time_slots.max_bookings (default 1)
	CreatedAt   time.Time        `json:"created_at"`      // time_slots.created_at
	UpdatedAt   time.Time        `json:"updated_at"`      // time_slots.updated_at
}

// PlaygroundSlot types carry per-type pricing rather than a single
// override price.
const (
	SlotRegular = "REGULAR"
	SlotPremium = "PREMIUM"
	SlotVIP     = "VIP"
)

// PlaygroundSlot is an owner-defined ad hoc slot, distinct from the
// generated TimeSlot templates.  Owners use these for irregular windows
// (evening VIP sessions, tournament blocks) with their own price and
// capacity.
type PlaygroundSlot struct {
	ID           uint64          `json:"id"`            // playground_slots.id
	FacilityID   uint64          `json:"facility_id"`   // playground_slots.facility_id
	SlotType     string          `json:"slot_type"`     // playground_slots.slot_type (REGULAR, PREMIUM, VIP)
	DayOfWeek    int             `json:"day_of_week"`   // playground_slots.day_of_week
	StartTime    string          `json:"start_time"`    // playground_slots.start_time
	EndTime      string          `json:"end_time"`      // playground_slots.end_time
	Price        decimal.Decimal `json:"price"`         // playground_slots.price
	CurrencyCode string          `json:"currency_code"` // playground_slots.currency_code
	MaxCapacity  uint32          `json:"max_capacity"`  // playground_slots.max_capacity
	IsActive     bool            `json:"is_active"`     // playground_slots.is_active
	CreatedAt    time.Time       `json:"created_at"`    // playground_slots.created_at
}
