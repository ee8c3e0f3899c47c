package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/pricing"
)

// createPassReq is the body for POST /v1/owner/facilities/:id/passes.
// The price is derived from the facility base price and the duration
// multiplier table; owners pick the duration and features, not the
// price.
type createPassReq struct {
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days"`
	Equipment    bool   `json:"equipment_included"`
	Priority     bool   `json:"priority_booking"`
	Guests       bool   `json:"guest_privileges"`
	Coaching     bool   `json:"coaching_included"`
}

// durationTypeFor buckets a duration into the stored pass type.
func durationTypeFor(days int) string {
	switch days {
	case 7:
		return model.PassWeekly
	case 30:
		return model.PassMonthly
	}
	return model.PassCustom
}

// passFeatures maps the boolean flags onto priced features.  Priority
// booking and guest privileges are entitlement flags without a price
// component.
func passFeatures(req createPassReq) []pricing.PassFeature {
	var fs []pricing.PassFeature
	if req.Equipment {
		fs = append(fs, pricing.FeatureEquipment)
	}
	if req.Coaching {
		fs = append(fs, pricing.FeatureCoaching)
	}
	return fs
}

// CreatePass handles POST /v1/owner/facilities/:id/passes.
func (h *OwnerHandler) CreatePass(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
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
	f, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return failErr(c, err)
	}
	breakdown := pricing.CalculatePass(f.BasePrice, req.DurationDays, passFeatures(req))
	p := model.DurationPass{
		FacilityID:        id,
		Name:              req.Name,
		DurationType:      durationTypeFor(req.DurationDays),
		DurationDays:      req.DurationDays,
		Price:             breakdown.Total,
		CurrencyCode:      f.CurrencyCode,
		EquipmentIncluded: req.Equipment,
		PriorityBooking:   req.Priority,
		GuestPrivileges:   req.Guests,
		CoachingIncluded:  req.Coaching,
		IsActive:          true,
	}
	if err := h.PassRepo.Create(ctx, &p); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to create pass")
	}
	return ok(c, http.StatusCreated, echo.Map{
		"pass":      p,
		"breakdown": breakdown,
	})
}

// ListPasses handles GET /v1/owner/facilities/:id/passes, including
// deactivated passes so owners see the full history.
func (h *OwnerHandler) ListPasses(c echo.Context) error {
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
	items, err := h.PassRepo.ListByFacility(ctx, id, false)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load passes")
	}
	type passView struct {
		model.DurationPass
		PricePerDay string `json:"price_per_day"`
	}
	views := make([]passView, 0, len(items))
	for _, p := range items {
		views = append(views, passView{
			DurationPass: p,
			PricePerDay:  pricing.PricePerDay(p.Price, p.DurationDays).String(),
		})
	}
	return ok(c, http.StatusOK, echo.Map{"items": views})
}

// DeletePass handles DELETE /v1/owner/facilities/:id/passes/:passID.
// A pass with active purchases cannot be removed; it is deactivated
// instead and the response says so.
func (h *OwnerHandler) DeletePass(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	passID, okPass := parseID(c, "passID")
	if !okPass {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid pass id")
	}
	ctx := c.Request().Context()
	if _, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return failErr(c, err)
	}
	p, err := h.PassRepo.GetByID(ctx, passID)
	if err != nil {
		return failErr(c, err)
	}
	if p.FacilityID != id {
		return fail(c, http.StatusNotFound, codeNotFound, "pass not found")
	}
	if err := h.PassRepo.Delete(ctx, passID); err != nil {
		return failErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
