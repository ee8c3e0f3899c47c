package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Duration pass types.  CUSTOM covers any duration outside the weekly
// and monthly presets.
const (
	PassWeekly  = "WEEKLY"
	PassMonthly = "MONTHLY"
	PassCustom  = "CUSTOM"
)

// DurationPass is a time-bounded access entitlement sold as an
// alternative to per-slot booking: it grants access for DurationDays
// days at a fixed price.  Passes are soft-deleted (is_active=false)
// once they have active purchases; hard delete is blocked.
//
// Invariant: DurationDays > 0 and price_per_day = Price / DurationDays.
type DurationPass struct {
	ID                uint64          `json:"id"`                 // duration_passes.id
	FacilityID        uint64          `json:"facility_id"`        // duration_passes.facility_id
	Name              string          `json:"name"`               // duration_passes.name
	DurationType      string          `json:"duration_type"`      // duration_passes.duration_type
	DurationDays      int             `json:"duration_days"`      // duration_passes.duration_days
	Price             decimal.Decimal `json:"price"`              // duration_passes.price
	CurrencyCode      string          `json:"currency_code"`      // duration_passes.currency_code
	EquipmentIncluded bool            `json:"equipment_included"` // duration_passes.equipment_included
	PriorityBooking   bool            `json:"priority_booking"`   // duration_passes.priority_booking
	GuestPrivileges   bool            `json:"guest_privileges"`   // duration_passes.guest_privileges
	CoachingIncluded  bool            `json:"coaching_included"`  // duration_passes.coaching_included
	IsActive          bool            `json:"is_active"`          // duration_passes.is_active
	CreatedAt         time.Time       `json:"created_at"`         // duration_passes.created_at
	UpdatedAt         time.Time       `json:"updated_at"`         // duration_passes.updated_at
}

// PassPurchase statuses.
const (
	PurchasePending   = "PENDING"
	PurchaseActive    = "ACTIVE"
	PurchaseExpired   = "EXPIRED"
	PurchaseCancelled = "CANCELLED"
)

// PassPurchase records a user buying a duration pass.  The entitlement
// window is [StartDate, EndDate] with EndDate = StartDate + duration
// days.  Whether the purchase is currently usable is a pure function of
// the status and today's date, recomputed on read rather than by a
// background job.
type PassPurchase struct {
	ID         uint64    `json:"id"`          // pass_purchases.id
	PassID     uint64    `json:"pass_id"`     // pass_purchases.pass_id
	UserID     uint64    `json:"user_id"`     // pass_purchases.user_id
	StartDate  time.Time `json:"start_date"`  // pass_purchases.start_date
	EndDate    time.Time `json:"end_date"`    // pass_purchases.end_date
	Status     string    `json:"status"`      // pass_purchases.status
	UsageCount uint32    `json:"usage_count"` // pass_purchases.usage_count
	CreatedAt  time.Time `json:"created_at"`  // pass_purchases.created_at
}

// IsActiveOn reports whether the purchase grants access on the given
// date: status must be ACTIVE and the date must fall inside the
// entitlement window (inclusive on both ends).
func (p PassPurchase) IsActiveOn(day time.Time) bool {
	if p.Status != PurchaseActive {
		return false
	}
	d := day.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
}
