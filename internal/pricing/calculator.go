// Package pricing computes booking totals and duration-pass prices.  All
// monetary arithmetic uses decimal values so repeated additions and
// multiplications never accumulate binary floating point drift.  The
// currency's decimal-place count governs rounding of derived figures
// only, never the internal precision.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/currency"
)

// SelectionKind names which pricing branch a booking calculation took so
// clients can render the breakdown without re-deriving it.
type SelectionKind string

const (
	KindRegular    SelectionKind = "REGULAR"    // count of hourly slots
	KindCustom     SelectionKind = "CUSTOM"     // explicit duration in hours
	KindMembership SelectionKind = "MEMBERSHIP" // flat duration-pass price
)

// Selection describes what the customer is paying for.  Exactly one of
// the branch fields is consulted depending on Kind.
type Selection struct {
	Kind          SelectionKind
	SlotCount     int             // KindRegular: number of hourly slots
	DurationHours decimal.Decimal // KindCustom: booked duration in hours
	PassPrice     decimal.Decimal // KindMembership: flat pass price
}

// Amenity is the pricing view of a facility amenity.  Free amenities
// carry a zero price.
type Amenity struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Breakdown is the itemised result of a calculation.
type Breakdown struct {
	Kind           SelectionKind   `json:"kind"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Amenities      []Amenity       `json:"amenities"`
	AmenityTotal   decimal.Decimal `json:"amenity_total"`
	Total          decimal.Decimal `json:"total"`
	CurrencyCode   string          `json:"currency_code"`
	CurrencySymbol string          `json:"currency_symbol"`
}

// Calculate prices a booking selection against the facility's hourly
// base price plus the selected amenities.  Amenities are matched by id
// against the facility's own list; unknown ids are skipped rather than
// rejected so a stale client selection cannot fail the whole quote.
func Calculate(basePrice decimal.Decimal, cur currency.Currency, sel Selection, available []Amenity, selectedIDs []uint64) Breakdown {
	var subtotal decimal.Decimal
	switch sel.Kind {
	case KindCustom:
		subtotal = basePrice.Mul(sel.DurationHours)
	case KindMembership:
		subtotal = sel.PassPrice
	default:
		count := sel.SlotCount
		if count < 0 {
			count = 0
		}
		subtotal = basePrice.Mul(decimal.NewFromInt(int64(count)))
	}

	byID := make(map[uint64]Amenity, len(available))
	for _, a := range available {
		byID[a.ID] = a
	}
	picked := make([]Amenity, 0, len(selectedIDs))
	amenityTotal := decimal.Zero
	seen := make(map[uint64]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		a, ok := byID[id]
		if !ok {
			continue
		}
		picked = append(picked, a)
		amenityTotal = amenityTotal.Add(a.Price)
	}

	subtotal = subtotal.Round(cur.DecimalPlaces)
	amenityTotal = amenityTotal.Round(cur.DecimalPlaces)
	return Breakdown{
		Kind:           sel.Kind,
		Subtotal:       subtotal,
		Amenities:      picked,
		AmenityTotal:   amenityTotal,
		Total:          subtotal.Add(amenityTotal),
		CurrencyCode:   cur.Code,
		CurrencySymbol: cur.Symbol,
	}
}
