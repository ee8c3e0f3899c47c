package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/playground-booking/internal/currency"
	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/pricing"
	"github.com/iliyamo/playground-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: catalog
// lists, facility search, facility details and per-date availability.
// Responses here are cache-friendly; the availability endpoint is
// advisory and takes no locks.
type PublicHandler struct {
	CatalogRepo  *repository.CatalogRepo
	FacilityRepo *repository.FacilityRepo
	TimeSlotRepo *repository.TimeSlotRepo
	PlaySlotRepo *repository.PlaygroundSlotRepo
	PassRepo     *repository.PassRepo
	BookingRepo  *repository.BookingRepo
}

// NewPublicHandler constructs a PublicHandler and panics on nil
// dependencies.
func NewPublicHandler(cat *repository.CatalogRepo, fr *repository.FacilityRepo, tr *repository.TimeSlotRepo, pr *repository.PlaygroundSlotRepo, dr *repository.PassRepo, br *repository.BookingRepo) *PublicHandler {
	if cat == nil || fr == nil || tr == nil || pr == nil || dr == nil || br == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{
		CatalogRepo:  cat,
		FacilityRepo: fr,
		TimeSlotRepo: tr,
		PlaySlotRepo: pr,
		PassRepo:     dr,
		BookingRepo:  br,
	}
}

// ListSports handles GET /v1/catalog/sports.
func (h *PublicHandler) ListSports(c echo.Context) error {
	items, err := h.CatalogRepo.ListSports(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load sports")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// ListPlaygroundTypes handles GET /v1/catalog/playground-types.
func (h *PublicHandler) ListPlaygroundTypes(c echo.Context) error {
	items, err := h.CatalogRepo.ListPlaygroundTypes(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load playground types")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// ListCities handles GET /v1/catalog/cities.
func (h *PublicHandler) ListCities(c echo.Context) error {
	items, err := h.CatalogRepo.ListCities(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load cities")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// ListCurrencies handles GET /v1/catalog/currencies from the static
// ISO table.
func (h *PublicHandler) ListCurrencies(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"items": currency.All()})
}

// SearchFacilities handles GET /v1/facilities with optional name, city
// and sport filters plus page/page_size pagination.
func (h *PublicHandler) SearchFacilities(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	q := repository.FacilitySearchQuery{
		Name:     strings.TrimSpace(c.QueryParam("name")),
		City:     strings.TrimSpace(c.QueryParam("city")),
		Sport:    strings.TrimSpace(c.QueryParam("sport")),
		Page:     page,
		PageSize: pageSize,
	}
	items, total, err := h.FacilityRepo.Search(c.Request().Context(), q)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "search failed")
	}
	return ok(c, http.StatusOK, echo.Map{
		"items": items,
		"total": total,
	})
}

// GetFacility handles GET /v1/facilities/:id with hours, amenities and
// active passes inlined.  Only ACTIVE facilities are visible to guests.
func (h *PublicHandler) GetFacility(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if f.Status != model.FacilityActive {
		return fail(c, http.StatusNotFound, codeNotFound, "facility not found")
	}
	hours, err := h.FacilityRepo.GetHours(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load hours")
	}
	amenities, err := h.FacilityRepo.ListAmenities(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load amenities")
	}
	passes, err := h.PassRepo.ListByFacility(ctx, id, true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load passes")
	}
	type passView struct {
		model.DurationPass
		PricePerDay string `json:"price_per_day"`
	}
	passViews := make([]passView, 0, len(passes))
	for _, p := range passes {
		passViews = append(passViews, passView{
			DurationPass: p,
			PricePerDay:  pricing.PricePerDay(p.Price, p.DurationDays).String(),
		})
	}
	return ok(c, http.StatusOK, echo.Map{
		"facility":  f,
		"hours":     hours,
		"amenities": amenities,
		"passes":    passViews,
	})
}

// ListFacilitySlots handles GET /v1/facilities/:id/slots: the weekly
// grid of active slot templates plus active playground slots.
func (h *PublicHandler) ListFacilitySlots(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if f.Status != model.FacilityActive {
		return fail(c, http.StatusNotFound, codeNotFound, "facility not found")
	}
	slots, err := h.TimeSlotRepo.ListByFacility(ctx, id, true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load slots")
	}
	playSlots, err := h.PlaySlotRepo.ListByFacility(ctx, id, true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load playground slots")
	}
	return ok(c, http.StatusOK, echo.Map{
		"slots":            slots,
		"playground_slots": playSlots,
	})
}

// slotAvailability is one window in the availability response.
type slotAvailability struct {
	SlotID      uint64 `json:"slot_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Price       string `json:"price"`
	MaxBookings uint32 `json:"max_bookings"`
	Booked      uint32 `json:"booked"`
	Available   bool   `json:"available"`
}

// GetAvailability handles GET /v1/facilities/:id/availability?date=YYYY-MM-DD.
// The endpoint is read-only and advisory: it takes no locks and has no
// side effects, so repeated identical requests agree until a booking
// lands.  Malformed dates are rejected rather than matched against
// nothing.
func (h *PublicHandler) GetAvailability(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid facility id")
	}
	date, okDate := parseDate(strings.TrimSpace(c.QueryParam("date")))
	if !okDate {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "date must be YYYY-MM-DD")
	}
	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if f.Status != model.FacilityActive {
		return fail(c, http.StatusNotFound, codeNotFound, "facility not found")
	}
	slots, err := h.TimeSlotRepo.ListByFacility(ctx, id, true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load slots")
	}
	day := int(date.Weekday())
	dateStr := date.Format("2006-01-02")
	out := make([]slotAvailability, 0)
	for _, s := range slots {
		if s.DayOfWeek != day {
			continue
		}
		booked, err := h.BookingRepo.CountActive(ctx, id, dateStr, s.StartTime)
		if err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to count bookings")
		}
		price := f.BasePrice
		if s.Price != nil {
			price = *s.Price
		}
		out = append(out, slotAvailability{
			SlotID:      s.ID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Price:       price.String(),
			MaxBookings: s.MaxBookings,
			Booked:      booked,
			Available:   booked < s.MaxBookings,
		})
	}
	return ok(c, http.StatusOK, echo.Map{
		"date":        dateStr,
		"day_of_week": day,
		"slots":       out,
	})
}
