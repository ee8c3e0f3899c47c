package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/currency"
	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/repository"
)

// createFacilityReq is the body for POST /v1/owner/facilities.
type createFacilityReq struct {
	Name         string `json:"name"`
	SportID      uint64 `json:"sport_id"`
	TypeID       uint64 `json:"type_id"`
	CityID       uint64 `json:"city_id"`
	BasePrice    string `json:"base_price"`
	CurrencyCode string `json:"currency_code"`
	Capacity     uint32 `json:"capacity"`
}

// validateFacilityReq normalizes and checks a facility payload, shared
// by direct creation and draft staging.  On failure the error response
// has already been written and the caller should return nil.
func (h *OwnerHandler) validateFacilityReq(c echo.Context, req *createFacilityReq) (decimal.Decimal, currency.Currency, bool) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.SportID == 0 || req.TypeID == 0 || req.CityID == 0 {
		_ = fail(c, http.StatusBadRequest, codeInvalidParameter, "name, sport_id, type_id and city_id are required")
		return decimal.Zero, currency.Currency{}, false
	}
	base, err := decimal.NewFromString(strings.TrimSpace(req.BasePrice))
	if err != nil || !base.IsPositive() {
		_ = fail(c, http.StatusBadRequest, codeInvalidParameter, "base_price must be a positive decimal")
		return decimal.Zero, currency.Currency{}, false
	}
	cur, found := currency.Lookup(strings.ToUpper(strings.TrimSpace(req.CurrencyCode)))
	if !found {
		_ = fail(c, http.StatusBadRequest, codeInvalidParameter, "unknown currency_code")
		return decimal.Zero, currency.Currency{}, false
	}
	exists, err := h.CatalogRepo.CityExists(c.Request().Context(), req.CityID)
	if err != nil {
		_ = fail(c, http.StatusInternalServerError, codeInternal, "city lookup failed")
		return decimal.Zero, currency.Currency{}, false
	}
	if !exists {
		_ = fail(c, http.StatusBadRequest, codeInvalidParameter, "unknown city_id")
		return decimal.Zero, currency.Currency{}, false
	}
	return base, cur, true
}

// CreateFacility handles POST /v1/owner/facilities.  New facilities
// start in PENDING and become bookable only after admin approval.
func (h *OwnerHandler) CreateFacility(c echo.Context) error {
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
	if err := h.FacilityRepo.Create(c.Request().Context(), &f); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusCreated, f)
}

// ListMyFacilities handles GET /v1/owner/facilities.
func (h *OwnerHandler) ListMyFacilities(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	items, err := h.FacilityRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load facilities")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// GetMyFacility handles GET /v1/owner/facilities/:id with hours and
// amenities inlined.
func (h *OwnerHandler) GetMyFacility(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
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
	amenities, err := h.FacilityRepo.ListAmenities(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load amenities")
	}
	return ok(c, http.StatusOK, echo.Map{
		"facility":  f,
		"hours":     hours,
		"amenities": amenities,
	})
}

// hoursReq is one day's opening window in the upsert body.
type hoursReq struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

// UpsertHours handles PUT /v1/owner/facilities/:id/hours.  The body is
// a list of per-day windows; each replaces the existing row for that
// day.  Closed days may omit the times.
func (h *OwnerHandler) UpsertHours(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var body struct {
		Hours []hoursReq `json:"hours"`
	}
	if err := c.Bind(&body); err != nil || len(body.Hours) == 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "hours list required")
	}
	ctx := c.Request().Context()
	if _, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return failErr(c, err)
	}
	for _, hr := range body.Hours {
		if hr.DayOfWeek < 0 || hr.DayOfWeek > 6 {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "day_of_week must be 0..6")
		}
		if hr.IsOpen && (!validTime(hr.OpenTime) || !validTime(hr.CloseTime)) {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "open/close times must be HH:MM")
		}
		if err := h.FacilityRepo.UpsertHours(ctx, model.FacilityHours{
			FacilityID: id,
			DayOfWeek:  hr.DayOfWeek,
			OpenTime:   hr.OpenTime,
			CloseTime:  hr.CloseTime,
			IsOpen:     hr.IsOpen,
		}); err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to save hours")
		}
	}
	hours, err := h.FacilityRepo.GetHours(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load hours")
	}
	return ok(c, http.StatusOK, echo.Map{"hours": hours})
}

// createAmenityReq is the body for POST /v1/owner/facilities/:id/amenities.
type createAmenityReq struct {
	Name        string `json:"name"`
	AmenityType string `json:"amenity_type"` // FREE | PAID
	Price       string `json:"price"`
}

// CreateAmenity handles POST /v1/owner/facilities/:id/amenities.  FREE
// amenities always store a zero price regardless of the body.
func (h *OwnerHandler) CreateAmenity(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var req createAmenityReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "name required")
	}
	atype := strings.ToUpper(strings.TrimSpace(req.AmenityType))
	if atype != model.AmenityFree && atype != model.AmenityPaid {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "amenity_type must be FREE or PAID")
	}
	price := decimal.Zero
	if atype == model.AmenityPaid {
		price, err = decimal.NewFromString(strings.TrimSpace(req.Price))
		if err != nil || price.IsNegative() {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "price must be a non-negative decimal")
		}
	}
	ctx := c.Request().Context()
	if _, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return failErr(c, err)
	}
	a := model.Amenity{FacilityID: id, Name: req.Name, AmenityType: atype, Price: price}
	if err := h.FacilityRepo.CreateAmenity(ctx, &a); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to create amenity")
	}
	return ok(c, http.StatusCreated, a)
}

// ListAmenities handles GET /v1/owner/facilities/:id/amenities.
func (h *OwnerHandler) ListAmenities(c echo.Context) error {
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
	items, err := h.FacilityRepo.ListAmenities(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load amenities")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// SetMaintenance handles PUT /v1/owner/facilities/:id/maintenance.  The
// owner can move an ACTIVE facility into MAINTENANCE and back; other
// status changes belong to admins.
func (h *OwnerHandler) SetMaintenance(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	var body struct {
		Maintenance bool `json:"maintenance"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return failErr(c, err)
	}
	next := model.FacilityMaintenance
	if !body.Maintenance {
		next = model.FacilityActive
	}
	if body.Maintenance && f.Status != model.FacilityActive {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "only active facilities can enter maintenance")
	}
	if !body.Maintenance && f.Status != model.FacilityMaintenance {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "facility is not in maintenance")
	}
	if err := h.FacilityRepo.UpdateStatus(ctx, id, next); err != nil {
		if err == repository.ErrFacilityNotFound {
			return failErr(c, err)
		}
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to update status")
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "status": next})
}
