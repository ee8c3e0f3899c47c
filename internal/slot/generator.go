// Package slot implements the time-slot generation engine.  Given a
// facility's operating hours it produces the bookable windows for a day
// or a whole week, applying tier-based price multipliers.  The package
// is pure: it never touches the database, which keeps the generation
// logic testable and lets multiple endpoints share one implementation.
package slot

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/currency"
)

// Tier is a pricing multiplier category applied to the facility's base
// hourly price.
type Tier string

const (
	TierRegular Tier = "REGULAR"
	TierPeak    Tier = "PEAK"
	TierPremium Tier = "PREMIUM"
)

// multipliers maps each tier to its price multiplier.  Regular slots use
// the base price unchanged.
var multipliers = map[Tier]decimal.Decimal{
	TierRegular: decimal.NewFromInt(1),
	TierPeak:    decimal.RequireFromString("1.5"),
	TierPremium: decimal.NewFromInt(2),
}

// ErrInvalidDuration is returned when the requested slot duration is zero
// or negative.  Handlers translate it into a 400 response.
var ErrInvalidDuration = errors.New("slot duration must be positive")

// ErrInvalidTime is returned when an open/close/start/end value cannot be
// parsed as HH:MM.
var ErrInvalidTime = errors.New("invalid time, expected HH:MM")

// Generated is one bookable window produced by the generator.  Prices are
// already rounded to the currency's configured decimal places.
type Generated struct {
	ID              string          `json:"id"`
	DayOfWeek       int             `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime       string          `json:"start_time"`  // HH:MM
	EndTime         string          `json:"end_time"`    // HH:MM
	DurationMinutes int             `json:"duration_minutes"`
	Tier            Tier            `json:"tier"`
	Price           decimal.Decimal `json:"price"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
	CurrencyCode    string          `json:"currency_code"`
	CurrencySymbol  string          `json:"currency_symbol"`
	Custom          bool            `json:"custom"`
}

// DayHours describes one day's opening window as stored on the facility.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	IsOpen bool   `json:"is_open"`
}

// parseHHMM converts "HH:MM" into minutes since midnight.
func parseHHMM(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatHHMM renders minutes since midnight back into "HH:MM".
func formatHHMM(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Generate emits the bookable windows for a single day.  Starting at the
// open time it repeatedly emits [cursor, cursor+duration) and advances
// the cursor by duration+break.  A window that would overrun the close
// time is not emitted, so no partial slots are produced.  A close time at
// or before the open time yields an empty result and no error.
func Generate(day int, open, close string, slotMinutes, breakMinutes int, basePrice decimal.Decimal, tier Tier, cur currency.Currency) ([]Generated, error) {
	if slotMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if breakMinutes < 0 {
		breakMinutes = 0
	}
	openMin, err := parseHHMM(open)
	if err != nil {
		return nil, err
	}
	closeMin, err := parseHHMM(close)
	if err != nil {
		return nil, err
	}
	mult, ok := multipliers[tier]
	if !ok {
		mult = multipliers[TierRegular]
		tier = TierRegular
	}
	price := basePrice.Mul(mult).Round(cur.DecimalPlaces)

	slots := make([]Generated, 0)
	seq := 0
	for cursor := openMin; cursor+slotMinutes <= closeMin; cursor += slotMinutes + breakMinutes {
		slots = append(slots, Generated{
			ID:              fmt.Sprintf("gen-%d-%s-%d", day, formatHHMM(cursor), seq),
			DayOfWeek:       day,
			StartTime:       formatHHMM(cursor),
			EndTime:         formatHHMM(cursor + slotMinutes),
			DurationMinutes: slotMinutes,
			Tier:            tier,
			Price:           price,
			PriceMultiplier: mult,
			CurrencyCode:    cur.Code,
			CurrencySymbol:  cur.Symbol,
		})
		seq++
	}
	return slots, nil
}

// GenerateWeek applies Generate independently per day using that day's
// own open/close pair, so facilities with different hours per day get
// correct windows.  Days marked closed contribute nothing.  The hours
// map is keyed by day-of-week (0 = Sunday).
func GenerateWeek(hours map[int]DayHours, slotMinutes, breakMinutes int, basePrice decimal.Decimal, tier Tier, cur currency.Currency) ([]Generated, error) {
	all := make([]Generated, 0)
	for day := 0; day < 7; day++ {
		h, ok := hours[day]
		if !ok || !h.IsOpen {
			continue
		}
		slots, err := Generate(day, h.Open, h.Close, slotMinutes, breakMinutes, basePrice, tier, cur)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
	}
	return all, nil
}

// NewCustom builds a manually defined slot that bypasses the generator.
// The caller supplies explicit start/end/day/price/tier; the multiplier
// is derived from the base price for bookkeeping.  The id embeds the day,
// start time and a uuid so custom slots can never collide with generated
// ids even when added repeatedly for the same window.
func NewCustom(day int, start, end string, price, basePrice decimal.Decimal, tier Tier, cur currency.Currency) (Generated, error) {
	startMin, err := parseHHMM(start)
	if err != nil {
		return Generated{}, err
	}
	endMin, err := parseHHMM(end)
	if err != nil {
		return Generated{}, err
	}
	if endMin <= startMin {
		return Generated{}, errors.New("end time must be after start time")
	}
	mult := decimal.NewFromInt(1)
	if basePrice.IsPositive() {
		mult = price.DivRound(basePrice, 4)
	}
	if _, ok := multipliers[tier]; !ok {
		tier = TierRegular
	}
	return Generated{
		ID:              fmt.Sprintf("custom-%d-%s-%s", day, start, uuid.NewString()[:8]),
		DayOfWeek:       day,
		StartTime:       formatHHMM(startMin),
		EndTime:         formatHHMM(endMin),
		DurationMinutes: endMin - startMin,
		Tier:            tier,
		Price:           price.Round(cur.DecimalPlaces),
		PriceMultiplier: mult,
		CurrencyCode:    cur.Code,
		CurrencySymbol:  cur.Symbol,
		Custom:          true,
	}, nil
}
