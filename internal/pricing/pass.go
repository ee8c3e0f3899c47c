package pricing

import (
	"github.com/shopspring/decimal"
)

// The duration multiplier table rewards longer commitments with deeper
// discounts relative to the daily rate.  The breakpoints are a product
// decision carried over unchanged; any other duration gets a flat 5%
// bulk discount off the linear price.
var durationMultipliers = map[int]decimal.Decimal{
	1:   decimal.NewFromInt(1),
	7:   decimal.RequireFromString("6.5"),
	30:  decimal.RequireFromString("25.0"),
	90:  decimal.RequireFromString("70.0"),
	365: decimal.RequireFromString("300.0"),
}

var fallbackDiscount = decimal.RequireFromString("0.95")

// PassFeature is a flat-cost add-on sold with a duration pass.  Feature
// costs scale with the same duration multiplier as the base price.
type PassFeature string

const (
	FeatureEquipment       PassFeature = "EQUIPMENT"
	FeatureCoaching        PassFeature = "COACHING"
	FeatureRefreshments    PassFeature = "REFRESHMENTS"
	FeatureVideoAnalysis   PassFeature = "VIDEO_ANALYSIS"
	FeatureFirstAid        PassFeature = "FIRST_AID"
	FeaturePremiumLocation PassFeature = "PREMIUM_LOCATION"
)

// featureCosts lists the per-unit daily cost of each add-on.
var featureCosts = map[PassFeature]decimal.Decimal{
	FeatureEquipment:       decimal.RequireFromString("5.00"),
	FeatureCoaching:        decimal.RequireFromString("15.00"),
	FeatureRefreshments:    decimal.RequireFromString("3.00"),
	FeatureVideoAnalysis:   decimal.RequireFromString("8.00"),
	FeatureFirstAid:        decimal.RequireFromString("2.00"),
	FeaturePremiumLocation: decimal.RequireFromString("10.00"),
}

// DurationMultiplier returns the pricing multiplier for a pass of the
// given length in days.  Non-positive durations return zero so callers
// can reject them without special-casing.
func DurationMultiplier(days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	if m, ok := durationMultipliers[days]; ok {
		return m
	}
	return decimal.NewFromInt(int64(days)).Mul(fallbackDiscount)
}

// PassBreakdown itemises a duration-pass price.
type PassBreakdown struct {
	DurationDays int             `json:"duration_days"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	BasePortion  decimal.Decimal `json:"base_portion"`
	FeatureCost  decimal.Decimal `json:"feature_cost"`
	Total        decimal.Decimal `json:"total"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
}

// CalculatePass prices a duration pass: the daily base price and every
// selected feature's unit cost are each scaled by the duration
// multiplier, then summed.  PricePerDay is rounded to two places for
// display; Total is kept exact.
func CalculatePass(basePrice decimal.Decimal, days int, features []PassFeature) PassBreakdown {
	mult := DurationMultiplier(days)
	basePortion := basePrice.Mul(mult)
	featureCost := decimal.Zero
	seen := make(map[PassFeature]struct{}, len(features))
	for _, f := range features {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		if c, ok := featureCosts[f]; ok {
			featureCost = featureCost.Add(c.Mul(mult))
		}
	}
	total := basePortion.Add(featureCost)
	perDay := decimal.Zero
	if days > 0 {
		perDay = total.DivRound(decimal.NewFromInt(int64(days)), 2)
	}
	return PassBreakdown{
		DurationDays: days,
		Multiplier:   mult,
		BasePortion:  basePortion,
		FeatureCost:  featureCost,
		Total:        total,
		PricePerDay:  perDay,
	}
}

// PricePerDay derives the exact per-day rate of an already priced pass.
// Used when reading passes back so the stored price and the derived rate
// always agree: price_per_day = price / duration_days.
func PricePerDay(price decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return price.DivRound(decimal.NewFromInt(int64(days)), 2)
}
