package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/currency"
	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/pricing"
	"github.com/iliyamo/playground-booking/internal/repository"
	"github.com/iliyamo/playground-booking/internal/slot"
)

// Facility setup is a multi-step wizard: details, hours, slot grid,
// passes.  The intermediate state lives in Redis under a correlation id
// until the owner commits, at which point everything is written to the
// database in one transaction.  Nothing staged is visible to customers
// before the commit, and an abandoned draft simply expires.

// StageDraft handles POST /v1/owner/drafts with the facility details.
func (h *OwnerHandler) StageDraft(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var req createFacilityReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	base, cur, okReq := h.validateFacilityReq(c, &req)
	if !okReq {
		return nil
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}
	f := model.Facility{
		OwnerID:      ownerID,
		Name:         req.Name,
		SportID:      req.SportID,
		TypeID:       req.TypeID,
		CityID:       req.CityID,
		BasePrice:    base,
		CurrencyCode: cur.Code,
		Capacity:     capacity,
		Status:       model.FacilityPending,
	}
	d, err := h.DraftRepo.Stage(c.Request().Context(), ownerID, f)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusCreated, d)
}

// GetDraft handles GET /v1/owner/drafts/:draftID.
func (h *OwnerHandler) GetDraft(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	d, err := h.DraftRepo.Load(c.Request().Context(), ownerID, c.Param("draftID"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, d)
}

// SetDraftHours handles PUT /v1/owner/drafts/:draftID/hours.
func (h *OwnerHandler) SetDraftHours(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var body struct {
		Hours []hoursReq `json:"hours"`
	}
	if err := c.Bind(&body); err != nil || len(body.Hours) == 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "hours list required")
	}
	hours := make(map[int]slot.DayHours, len(body.Hours))
	for _, hr := range body.Hours {
		if hr.DayOfWeek < 0 || hr.DayOfWeek > 6 {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "day_of_week must be 0..6")
		}
		if hr.IsOpen && (!validTime(hr.OpenTime) || !validTime(hr.CloseTime)) {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "open/close times must be HH:MM")
		}
		hours[hr.DayOfWeek] = slot.DayHours{Open: hr.OpenTime, Close: hr.CloseTime, IsOpen: hr.IsOpen}
	}
	d, err := h.DraftRepo.Update(c.Request().Context(), ownerID, c.Param("draftID"), func(d *repository.FacilityDraft) {
		d.Hours = hours
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, d)
}

// GenerateDraftSlots handles POST /v1/owner/drafts/:draftID/slots/generate.
// The grid is generated from the staged hours and stored on the draft.
func (h *OwnerHandler) GenerateDraftSlots(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
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
	d, err := h.DraftRepo.Load(ctx, ownerID, c.Param("draftID"))
	if err != nil {
		return failErr(c, err)
	}
	if len(d.Hours) == 0 {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "stage operating hours before generating slots")
	}
	cur := currency.LookupOrDefault(d.Facility.CurrencyCode)
	generated, err := slot.GenerateWeek(d.Hours, req.SlotMinutes, req.BreakMinutes, d.Facility.BasePrice, tier, cur)
	if err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, err.Error())
	}
	rows := make([]model.TimeSlot, 0, len(generated))
	for _, g := range generated {
		price := g.Price
		rows = append(rows, model.TimeSlot{
			DayOfWeek:   g.DayOfWeek,
			StartTime:   g.StartTime,
			EndTime:     g.EndTime,
			Price:       &price,
			IsAvailable: true,
			MaxBookings: 1,
		})
	}
	d2, err := h.DraftRepo.Update(ctx, ownerID, c.Param("draftID"), func(d *repository.FacilityDraft) {
		d.Slots = rows
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"draft": d2,
		"slots": generated,
		"count": len(generated),
	})
}

// AddDraftPass handles POST /v1/owner/drafts/:draftID/passes.
func (h *OwnerHandler) AddDraftPass(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var req createPassReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "name required")
	}
	if req.DurationDays <= 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "duration_days must be positive")
	}
	ctx := c.Request().Context()
	d, err := h.DraftRepo.Load(ctx, ownerID, c.Param("draftID"))
	if err != nil {
		return failErr(c, err)
	}
	breakdown := pricing.CalculatePass(d.Facility.BasePrice, req.DurationDays, passFeatures(req))
	p := model.DurationPass{
		Name:              req.Name,
		DurationType:      durationTypeFor(req.DurationDays),
		DurationDays:      req.DurationDays,
		Price:             breakdown.Total,
		CurrencyCode:      d.Facility.CurrencyCode,
		EquipmentIncluded: req.Equipment,
		PriorityBooking:   req.Priority,
		GuestPrivileges:   req.Guests,
		CoachingIncluded:  req.Coaching,
		IsActive:          true,
	}
	d2, err := h.DraftRepo.Update(ctx, ownerID, c.Param("draftID"), func(d *repository.FacilityDraft) {
		d.Passes = append(d.Passes, p)
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"draft":     d2,
		"breakdown": breakdown,
	})
}

// AddDraftPlaygroundSlot handles POST /v1/owner/drafts/:draftID/playground-slots.
// The ad hoc slot is staged on the draft and created alongside the
// facility at commit.
func (h *OwnerHandler) AddDraftPlaygroundSlot(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var req addPlaygroundSlotReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	ctx := c.Request().Context()
	d, err := h.DraftRepo.Load(ctx, ownerID, c.Param("draftID"))
	if err != nil {
		return failErr(c, err)
	}
	s, msg := parsePlaygroundSlot(req, d.Facility.CurrencyCode)
	if msg != "" {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, msg)
	}
	d2, err := h.DraftRepo.Update(ctx, ownerID, c.Param("draftID"), func(d *repository.FacilityDraft) {
		d.Custom = append(d.Custom, s)
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, d2)
}

// CommitDraft handles POST /v1/owner/drafts/:draftID/commit.  The
// facility, its hours, slot grid and passes land in one transaction;
// the draft is deleted only after the commit succeeds.
func (h *OwnerHandler) CommitDraft(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	ctx := c.Request().Context()
	draftID := c.Param("draftID")
	d, err := h.DraftRepo.Load(ctx, ownerID, draftID)
	if err != nil {
		return failErr(c, err)
	}

	tx, err := h.FacilityRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	f := d.Facility
	f.OwnerID = ownerID
	f.Status = model.FacilityPending
	if err := h.FacilityRepo.CreateTx(ctx, tx, &f); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to create facility")
	}
	for day, hr := range d.Hours {
		if err := h.FacilityRepo.UpsertHoursTx(ctx, tx, model.FacilityHours{
			FacilityID: f.ID,
			DayOfWeek:  day,
			OpenTime:   hr.Open,
			CloseTime:  hr.Close,
			IsOpen:     hr.IsOpen,
		}); err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to save hours")
		}
	}
	if len(d.Slots) > 0 {
		slots := make([]model.TimeSlot, 0, len(d.Slots))
		for _, s := range d.Slots {
			s.FacilityID = f.ID
			slots = append(slots, s)
		}
		if _, err := h.TimeSlotRepo.CreateBulkTx(ctx, tx, slots); err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to create slots")
		}
	}
	for _, ps := range d.Custom {
		ps.FacilityID = f.ID
		if err := h.PlaySlotRepo.CreateTx(ctx, tx, &ps); err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to create playground slots")
		}
	}
	for _, p := range d.Passes {
		p.FacilityID = f.ID
		if err := h.PassRepo.CreateTx(ctx, tx, &p); err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to create passes")
		}
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to commit transaction")
	}
	committed = true

	// best effort; an expired draft key costs nothing
	_ = h.DraftRepo.Delete(ctx, ownerID, draftID)

	return ok(c, http.StatusCreated, echo.Map{
		"facility": f,
		"slots":    len(d.Slots),
		"passes":   len(d.Passes),
	})
}

// DeleteDraft handles DELETE /v1/owner/drafts/:draftID.
func (h *OwnerHandler) DeleteDraft(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	if err := h.DraftRepo.Delete(c.Request().Context(), ownerID, c.Param("draftID")); err != nil {
		return failErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
