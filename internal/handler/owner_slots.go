package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/currency"
	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/slot"
)

// generateSlotsReq is the body for POST /v1/owner/facilities/:id/slots/generate.
// Generation walks the facility's stored opening hours; days without
// hours or marked closed produce nothing.
type generateSlotsReq struct {
	SlotMinutes  int    `json:"slot_minutes"`
	BreakMinutes int    `json:"break_minutes"`
	Tier         string `json:"tier"`    // REGULAR | PEAK | PREMIUM
	Persist      bool   `json:"persist"` // false returns a preview only
}

// GenerateSlots produces the weekly slot grid from the facility's
// operating hours and optionally persists it as time_slots templates.
// Regeneration is idempotent: windows that already exist are skipped.
func (h *OwnerHandler) GenerateSlots(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var req generateSlotsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	if req.SlotMinutes <= 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "slot_minutes must be positive")
	}
	if req.BreakMinutes < 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "break_minutes must not be negative")
	}
	tier := slot.Tier(strings.ToUpper(strings.TrimSpace(req.Tier)))
	if tier == "" {
		tier = slot.TierRegular
	}
	if tier != slot.TierRegular && tier != slot.TierPeak && tier != slot.TierPremium {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "tier must be REGULAR, PEAK or PREMIUM")
	}

	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return failErr(c, err)
	}
	hours, err := h.FacilityRepo.GetHours(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load hours")
	}
	if len(hours) == 0 {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "set operating hours before generating slots")
	}

	cur := currency.LookupOrDefault(f.CurrencyCode)
	generated, err := slot.GenerateWeek(hours, req.SlotMinutes, req.BreakMinutes, f.BasePrice, tier, cur)
	if err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
	}

	inserted := int64(0)
	if req.Persist {
		rows := make([]model.TimeSlot, 0, len(generated))
		for _, g := range generated {
			price := g.Price
			rows = append(rows, model.TimeSlot{
				FacilityID:  id,
				DayOfWeek:   g.DayOfWeek,
				StartTime:   g.StartTime,
				EndTime:     g.EndTime,
				Price:       &price,
				IsAvailable: true,
				MaxBookings: 1,
			})
		}
		inserted, err = h.TimeSlotRepo.CreateBulk(ctx, rows)
		if err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to persist slots")
		}
	}

	return ok(c, http.StatusOK, echo.Map{
		"slots":     generated,
		"count":     len(generated),
		"persisted": inserted,
	})
}

// addSlotReq is the body for POST /v1/owner/facilities/:id/slots.
type addSlotReq struct {
	DayOfWeek   int     `json:"day_of_week"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Price       *string `json:"price"` // nil falls back to the facility base price
	MaxBookings uint32  `json:"max_bookings"`
}

// AddSlot creates one slot template by hand.  A window that collides
// with an existing template for the same day returns 409.
func (h *OwnerHandler) AddSlot(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var req addSlotReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "day_of_week must be 0..6")
	}
	if !validTime(req.StartTime) || !validTime(req.EndTime) || req.EndTime <= req.StartTime {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "start/end must be HH:MM with end after start")
	}
	var price *decimal.Decimal
	if req.Price != nil {
		p, err := decimal.NewFromString(strings.TrimSpace(*req.Price))
		if err != nil || !p.IsPositive() {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "price must be a positive decimal")
		}
		price = &p
	}
	ctx := c.Request().Context()
	if _, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return failErr(c, err)
	}
	s := model.TimeSlot{
		FacilityID:  id,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Price:       price,
		IsAvailable: true,
		MaxBookings: req.MaxBookings,
	}
	if err := h.TimeSlotRepo.Create(ctx, &s); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusCreated, s)
}

// ListSlots handles GET /v1/owner/facilities/:id/slots.
func (h *OwnerHandler) ListSlots(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	ctx := c.Request().Context()
	if _, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return failErr(c, err)
	}
	items, err := h.TimeSlotRepo.ListByFacility(ctx, id, false)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load slots")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// SetSlotAvailability handles PUT /v1/owner/facilities/:id/slots/:slotID/availability.
func (h *OwnerHandler) SetSlotAvailability(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	slotID, okSlot := parseID(c, "slotID")
	if !okSlot {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid slot id")
	}
	var body struct {
		Available bool `json:"available"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	ctx := c.Request().Context()
	if _, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return failErr(c, err)
	}
	s, err := h.TimeSlotRepo.GetByID(ctx, slotID)
	if err != nil {
		return failErr(c, err)
	}
	if s.FacilityID != id {
		return fail(c, http.StatusNotFound, codeNotFound, "slot not found")
	}
	if err := h.TimeSlotRepo.SetAvailability(ctx, slotID, body.Available); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": slotID, "is_available": body.Available})
}

// addPlaygroundSlotReq is the body for POST /v1/owner/facilities/:id/playground-slots.
type addPlaygroundSlotReq struct {
	SlotType    string `json:"slot_type"` // REGULAR | PREMIUM | VIP
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Price       string `json:"price"`
	MaxCapacity uint32 `json:"max_capacity"`
}

// parsePlaygroundSlot validates an ad hoc slot request and builds the
// row.  A non-empty message means the request is invalid.
func parsePlaygroundSlot(req addPlaygroundSlotReq, currencyCode string) (model.PlaygroundSlot, string) {
	stype := strings.ToUpper(strings.TrimSpace(req.SlotType))
	if stype != model.SlotRegular && stype != model.SlotPremium && stype != model.SlotVIP {
		return model.PlaygroundSlot{}, "slot_type must be REGULAR, PREMIUM or VIP"
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return model.PlaygroundSlot{}, "day_of_week must be 0..6"
	}
	if !validTime(req.StartTime) || !validTime(req.EndTime) || req.EndTime <= req.StartTime {
		return model.PlaygroundSlot{}, "start/end must be HH:MM with end after start"
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || !price.IsPositive() {
		return model.PlaygroundSlot{}, "price must be a positive decimal"
	}
	capacity := req.MaxCapacity
	if capacity == 0 {
		capacity = 1
	}
	return model.PlaygroundSlot{
		SlotType:     stype,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Price:        price,
		CurrencyCode: currencyCode,
		MaxCapacity:  capacity,
		IsActive:     true,
	}, ""
}

// AddPlaygroundSlot creates an ad hoc slot with its own type, price and
// capacity, separate from the generated weekly grid.
func (h *OwnerHandler) AddPlaygroundSlot(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var req addPlaygroundSlotReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return failErr(c, err)
	}
	s, msg := parsePlaygroundSlot(req, f.CurrencyCode)
	if msg != "" {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, msg)
	}
	s.FacilityID = id
	if err := h.PlaySlotRepo.Create(ctx, &s); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusCreated, s)
}

// ListPlaygroundSlots handles GET /v1/owner/facilities/:id/playground-slots.
func (h *OwnerHandler) ListPlaygroundSlots(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	ctx := c.Request().Context()
	if _, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return failErr(c, err)
	}
	items, err := h.PlaySlotRepo.ListByFacility(ctx, id, false)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load playground slots")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}
