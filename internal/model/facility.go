package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Facility status values.  A facility that is not ACTIVE cannot accept
// new bookings.  Owners create facilities in PENDING; only an admin
// approval moves them to ACTIVE.
const (
	FacilityDraft       = "DRAFT"
	FacilityPending     = "PENDING"
	FacilityActive      = "ACTIVE"
	FacilityInactive    = "INACTIVE"
	FacilityMaintenance = "MAINTENANCE"
)

// Facility represents a bookable playground/sports venue owned by a
// user.  This struct corresponds to a row in the `facilities` table.
//
// Fields:
//  ID           – primary key identifier.
//  OwnerID      – user ID of the facility owner.
//  Name         – facility name.
//  SportID      – sport played at the facility.
//  TypeID       – playground type (indoor/outdoor/...).
//  CityID       – city the facility is located in.
//  BasePrice    – hourly base price in the facility's currency.
//  CurrencyCode – ISO currency code for all facility pricing.
//  Capacity     – maximum number of players.
//  Status       – lifecycle status (see constants above).
//  CreatedAt    – timestamp when the facility was created.
//  UpdatedAt    – timestamp of last update.
type Facility struct {
	ID           uint64          `json:"id"`            // facilities.id
	OwnerID      uint64          `json:"owner_id"`      // facilities.owner_id
	Name         string          `json:"name"`          // facilities.name
	SportID      uint64          `json:"sport_id"`      // facilities.sport_id
	TypeID       uint64          `json:"type_id"`       // facilities.type_id
	CityID       uint64          `json:"city_id"`       // facilities.city_id
	BasePrice    decimal.Decimal `json:"base_price"`    // facilities.base_price
	CurrencyCode string          `json:"currency_code"` // facilities.currency_code
	Capacity     uint32          `json:"capacity"`      // facilities.capacity
	Status       string          `json:"status"`        // facilities.status
	CreatedAt    time.Time       `json:"created_at"`    // facilities.created_at
	UpdatedAt    time.Time       `json:"updated_at"`    // facilities.updated_at
}

// FacilityHours stores one day's opening window for a facility.  There
// is at most one row per (facility, day_of_week); days without a row or
// with is_open=false are closed.
type FacilityHours struct {
	ID         uint64 `json:"id"`          // facility_hours.id
	FacilityID uint64 `json:"facility_id"` // facility_hours.facility_id
	DayOfWeek  int    `json:"day_of_week"` // facility_hours.day_of_week (0=Sunday..6=Saturday)
	OpenTime   string `json:"open_time"`   // facility_hours.open_time (HH:MM)
	CloseTime  string `json:"close_time"`  // facility_hours.close_time (HH:MM)
	IsOpen     bool   `json:"is_open"`     // facility_hours.is_open
}

// Amenity types.  FREE amenities carry a zero price and never affect a
// booking total.
const (
	AmenityFree = "FREE"
	AmenityPaid = "PAID"
)

// Amenity is an add-on offered by a facility (floodlights, equipment
// rental, parking).  Paid amenities are summed into booking totals when
// selected.
type Amenity struct {
	ID          uint64          `json:"id"`           // amenities.id
	FacilityID  uint64          `json:"facility_id"`  // amenities.facility_id
	Name        string          `json:"name"`         // amenities.name
	AmenityType string          `json:"amenity_type"` // amenities.amenity_type (FREE or PAID)
	Price       decimal.Decimal `json:"price"`        // amenities.price
}
