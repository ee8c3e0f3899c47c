package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/currency"
	"github.com/iliyamo/playground-booking/internal/pricing"
	"github.com/iliyamo/playground-booking/internal/repository"
)

// PricingHandler serves price quotes.  Quotes are pure calculations
// against current facility data and never reserve anything.
type PricingHandler struct {
	FacilityRepo *repository.FacilityRepo
	PassRepo     *repository.PassRepo
}

// NewPricingHandler constructs a PricingHandler.
func NewPricingHandler(fr *repository.FacilityRepo, pr *repository.PassRepo) *PricingHandler {
	if fr == nil || pr == nil {
		panic("nil repository passed to NewPricingHandler")
	}
	return &PricingHandler{FacilityRepo: fr, PassRepo: pr}
}

// bookingQuoteReq is the body for POST /v1/facilities/:id/quote.
type bookingQuoteReq struct {
	Kind          string   `json:"kind"` // REGULAR | CUSTOM | MEMBERSHIP
	SlotCount     int      `json:"slot_count,omitempty"`
	DurationHours string   `json:"duration_hours,omitempty"`
	PassID        uint64   `json:"pass_id,omitempty"`
	AmenityIDs    []uint64 `json:"amenity_ids,omitempty"`
}

// QuoteBooking prices a prospective booking: hourly slots, a custom
// duration, or a duration-pass membership, plus selected paid
// amenities.
func (h *PricingHandler) QuoteBooking(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var req bookingQuoteReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}

	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	cur := currency.LookupOrDefault(f.CurrencyCode)

	sel := pricing.Selection{}
	switch strings.ToUpper(strings.TrimSpace(req.Kind)) {
	case "", string(pricing.KindRegular):
		if req.SlotCount <= 0 {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "slot_count must be positive")
		}
		sel.Kind = pricing.KindRegular
		sel.SlotCount = req.SlotCount
	case string(pricing.KindCustom):
		d, err := decimal.NewFromString(strings.TrimSpace(req.DurationHours))
		if err != nil || !d.IsPositive() {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "duration_hours must be a positive decimal")
		}
		sel.Kind = pricing.KindCustom
		sel.DurationHours = d
	case string(pricing.KindMembership):
		if req.PassID == 0 {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "pass_id required for membership quotes")
		}
		pass, err := h.PassRepo.GetByID(ctx, req.PassID)
		if err != nil {
			return failErr(c, err)
		}
		if pass.FacilityID != id {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "pass does not belong to this facility")
		}
		sel.Kind = pricing.KindMembership
		sel.PassPrice = pass.Price
	default:
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "kind must be REGULAR, CUSTOM or MEMBERSHIP")
	}

	amenities, err := h.FacilityRepo.ListAmenities(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load amenities")
	}
	breakdown := pricing.Calculate(f.BasePrice, cur, sel, toPricingAmenities(amenities), req.AmenityIDs)
	return ok(c, http.StatusOK, breakdown)
}

// passQuoteReq is the body for POST /v1/facilities/:id/pass-quote.
type passQuoteReq struct {
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features,omitempty"`
}

// QuotePass prices a prospective duration pass against the facility's
// base price, the duration multiplier table and the selected add-ons.
func (h *PricingHandler) QuotePass(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var req passQuoteReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	if req.DurationDays <= 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "duration_days must be positive")
	}
	features := make([]pricing.PassFeature, 0, len(req.Features))
	for _, f := range req.Features {
		features = append(features, pricing.PassFeature(strings.ToUpper(strings.TrimSpace(f))))
	}
	f, err := h.FacilityRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	breakdown := pricing.CalculatePass(f.BasePrice, req.DurationDays, features)
	return ok(c, http.StatusOK, echo.Map{
		"breakdown":     breakdown,
		"currency_code": f.CurrencyCode,
	})
}
