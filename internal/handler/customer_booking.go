package handler

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/booking"
	"github.com/iliyamo/playground-booking/internal/config"
	"github.com/iliyamo/playground-booking/internal/currency"
	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/pricing"
	"github.com/iliyamo/playground-booking/internal/repository"
)

// CustomerHandler groups repositories required to create bookings, buy
// passes and manage both on behalf of customers.  All methods assume
// JWT authentication and role validation have already been performed by
// middleware.  Booking creation runs its availability check and insert
// inside one transaction under a slot row lock.
type CustomerHandler struct {
	Cfg          config.Config
	FacilityRepo *repository.FacilityRepo
	TimeSlotRepo *repository.TimeSlotRepo
	BookingRepo  *repository.BookingRepo
	PassRepo     *repository.PassRepo
	PurchaseRepo *repository.PassPurchaseRepo
}

// NewCustomerHandler constructs a new CustomerHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewCustomerHandler(cfg config.Config, fr *repository.FacilityRepo, tr *repository.TimeSlotRepo, br *repository.BookingRepo, pr *repository.PassRepo, pur *repository.PassPurchaseRepo) *CustomerHandler {
	if fr == nil || tr == nil || br == nil || pr == nil || pur == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		Cfg:          cfg,
		FacilityRepo: fr,
		TimeSlotRepo: tr,
		BookingRepo:  br,
		PassRepo:     pr,
		PurchaseRepo: pur,
	}
}

// createBookingReq is the body for POST /v1/bookings.
type createBookingReq struct {
	FacilityID      uint64   `json:"facility_id"`
	BookingKind     string   `json:"booking_kind"` // SLOT (default) | PASS
	BookingDate     string   `json:"booking_date"` // YYYY-MM-DD
	StartTime       string   `json:"start_time"`   // HH:MM, SLOT bookings only
	PassPurchaseID  uint64   `json:"pass_purchase_id,omitempty"`
	AmenityIDs      []uint64 `json:"amenity_ids,omitempty"`
	SpecialRequests string   `json:"special_requests"`
}

// CreateBooking creates either an hourly slot booking or a pass-backed
// day booking.  The governing slot row is locked before counting active
// bookings, so two concurrent requests for the last opening serialize
// and exactly one succeeds.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid body")
	}
	if req.FacilityID == 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "facility_id required")
	}
	date, okDate := parseDate(req.BookingDate)
	if !okDate {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "booking_date must be YYYY-MM-DD")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "booking_date is in the past")
	}
	kind := strings.ToUpper(strings.TrimSpace(req.BookingKind))
	if kind == "" {
		kind = booking.KindSlot
	}
	if kind != booking.KindSlot && kind != booking.KindPass {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "booking_kind must be SLOT or PASS")
	}
	if kind == booking.KindSlot && !validTime(req.StartTime) {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "start_time must be HH:MM")
	}
	if kind == booking.KindPass && req.PassPurchaseID == 0 {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "pass_purchase_id required for PASS bookings")
	}

	ctx := c.Request().Context()
	f, err := h.FacilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		return failErr(c, err)
	}
	if f.Status != model.FacilityActive {
		return failErr(c, repository.ErrFacilityNotActive)
	}

	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lapse stale pending bookings before counting so abandoned requests
	// cannot block the window forever.
	if _, err := h.BookingRepo.ExpirePendingTx(ctx, tx, f.ID, h.Cfg.PendingTTLHours); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to expire stale bookings")
	}

	var b model.Booking
	switch kind {
	case booking.KindSlot:
		b, err = h.buildSlotBooking(c, tx, f, userID, date, req)
	case booking.KindPass:
		b, err = h.buildPassBooking(c, tx, f, userID, date, req)
	}
	if err != nil {
		// response already written by the build helpers
		return nil
	}

	if err := h.BookingRepo.CreateTx(ctx, tx, &b); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to create booking")
	}
	if kind == booking.KindPass {
		if err := h.PurchaseRepo.IncrementUsageTx(ctx, tx, req.PassPurchaseID); err != nil {
			return fail(c, http.StatusInternalServerError, codeInternal, "failed to record pass usage")
		}
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to commit transaction")
	}
	committed = true

	notifyBookingStatus(b, f.Name, f.CurrencyCode, "")
	return ok(c, http.StatusCreated, b)
}

// errHandled signals that the build helper already wrote the error
// response.
var errHandled = fmt.Errorf("response written")

// buildSlotBooking locks the governing slot, checks capacity and prices
// the booking.  It writes the error response itself and returns
// errHandled on failure.
func (h *CustomerHandler) buildSlotBooking(c echo.Context, tx *sql.Tx, f model.Facility, userID uint64, date time.Time, req createBookingReq) (model.Booking, error) {
	ctx := c.Request().Context()
	day := int(date.Weekday())

	s, err := h.TimeSlotRepo.GetGoverningTx(ctx, tx, f.ID, day, req.StartTime)
	if err != nil {
		_ = failErr(c, err)
		return model.Booking{}, errHandled
	}
	active, err := h.BookingRepo.CountActiveTx(ctx, tx, f.ID, date.Format("2006-01-02"), req.StartTime)
	if err != nil {
		_ = fail(c, http.StatusInternalServerError, codeInternal, "failed to check availability")
		return model.Booking{}, errHandled
	}
	if active >= s.MaxBookings {
		_ = failErr(c, repository.ErrSlotFull)
		return model.Booking{}, errHandled
	}

	pricePerHour := f.BasePrice
	if s.Price != nil {
		pricePerHour = *s.Price
	}
	durationHours := windowHours(s.StartTime, s.EndTime)

	cur := currency.LookupOrDefault(f.CurrencyCode)
	amenities, err := h.FacilityRepo.ListAmenities(ctx, f.ID)
	if err != nil {
		_ = fail(c, http.StatusInternalServerError, codeInternal, "failed to load amenities")
		return model.Booking{}, errHandled
	}
	breakdown := pricing.Calculate(pricePerHour, cur, pricing.Selection{
		Kind:          pricing.KindCustom,
		DurationHours: durationHours,
	}, toPricingAmenities(amenities), req.AmenityIDs)

	return model.Booking{
		FacilityID:      f.ID,
		UserID:          userID,
		BookingKind:     booking.KindSlot,
		BookingDate:     date,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationHours:   durationHours,
		PricePerHour:    pricePerHour,
		TotalAmount:     breakdown.Subtotal,
		FinalAmount:     breakdown.Total,
		Status:          booking.StatusPending,
		PaymentStatus:   booking.PaymentPending,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}, nil
}

// buildPassBooking locks the purchase row, verifies the entitlement
// covers the date and that the pass has not already been used that day
// at this facility.
func (h *CustomerHandler) buildPassBooking(c echo.Context, tx *sql.Tx, f model.Facility, userID uint64, date time.Time, req createBookingReq) (model.Booking, error) {
	ctx := c.Request().Context()

	p, err := h.PurchaseRepo.GetForUpdateTx(ctx, tx, req.PassPurchaseID)
	if err != nil {
		_ = failErr(c, err)
		return model.Booking{}, errHandled
	}
	if p.UserID != userID {
		_ = failErr(c, repository.ErrForbidden)
		return model.Booking{}, errHandled
	}
	pass, err := h.PassRepo.GetByID(ctx, p.PassID)
	if err != nil {
		_ = failErr(c, err)
		return model.Booking{}, errHandled
	}
	if pass.FacilityID != f.ID {
		_ = fail(c, http.StatusBadRequest, codePreconditionFailed, "pass does not belong to this facility")
		return model.Booking{}, errHandled
	}
	if !purchaseUsableOn(p, date) {
		_ = failErr(c, repository.ErrPurchaseNotUsable)
		return model.Booking{}, errHandled
	}
	used, err := h.BookingRepo.HasActivePassBookingTx(ctx, tx, f.ID, p.ID, date.Format("2006-01-02"))
	if err != nil {
		_ = fail(c, http.StatusInternalServerError, codeInternal, "failed to check pass usage")
		return model.Booking{}, errHandled
	}
	if used {
		_ = fail(c, http.StatusConflict, codeConflict, "pass already used for this date")
		return model.Booking{}, errHandled
	}

	start := fmt.Sprintf("%02d:00", h.Cfg.PassBookingHour)
	end := fmt.Sprintf("%02d:00", (h.Cfg.PassBookingHour+1)%24)
	purchaseID := p.ID
	// The entitlement was paid for at purchase time, so the booking
	// itself is free and its receipt is considered verified.
	return model.Booking{
		FacilityID:      f.ID,
		UserID:          userID,
		BookingKind:     booking.KindPass,
		PassPurchaseID:  &purchaseID,
		BookingDate:     date,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   decimal.NewFromInt(1),
		PricePerHour:    decimal.Zero,
		TotalAmount:     decimal.Zero,
		FinalAmount:     decimal.Zero,
		Status:          booking.StatusPending,
		PaymentStatus:   booking.PaymentPaid,
		ReceiptVerified: true,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}, nil
}

// purchaseUsableOn reports whether a locked purchase row covers the
// date.  PENDING purchases whose window has opened count as usable; the
// lazy status refresh will promote them on the next read.
func purchaseUsableOn(p model.PassPurchase, date time.Time) bool {
	switch p.Status {
	case model.PurchaseActive, model.PurchasePending:
		d := date.Truncate(24 * time.Hour)
		return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
	}
	return false
}

// purchaseEndDate computes the last usable day of an entitlement
// window, start_date + duration_days.
func purchaseEndDate(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// windowHours converts an HH:MM window into a decimal hour count.
func windowHours(start, end string) decimal.Decimal {
	st, errS := time.Parse("15:04", start)
	en, errE := time.Parse("15:04", end)
	if errS != nil || errE != nil || !en.After(st) {
		return decimal.NewFromInt(1)
	}
	minutes := int64(en.Sub(st) / time.Minute)
	return decimal.NewFromInt(minutes).DivRound(decimal.NewFromInt(60), 2)
}

// toPricingAmenities converts facility amenities to the pricing view.
func toPricingAmenities(in []model.Amenity) []pricing.Amenity {
	out := make([]pricing.Amenity, 0, len(in))
	for _, a := range in {
		out = append(out, pricing.Amenity{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return out
}

// ListMyBookings handles GET /v1/my-bookings.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	items, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load bookings")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// GetMyBooking handles GET /v1/bookings/:id.
func (h *CustomerHandler) GetMyBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid booking id")
	}
	b, err := h.BookingRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	if b.UserID != userID {
		// hide existence of other users' bookings
		return fail(c, http.StatusNotFound, codeNotFound, "booking not found")
	}
	return ok(c, http.StatusOK, b)
}

// CancelMyBooking handles POST /v1/bookings/:id/cancel.
func (h *CustomerHandler) CancelMyBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid booking id")
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&body)
	body.Reason = strings.TrimSpace(body.Reason)

	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return failErr(c, err)
	}
	if b.UserID != userID {
		return fail(c, http.StatusNotFound, codeNotFound, "booking not found")
	}
	next, err := booking.Cancel(b.Status)
	if err != nil {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "booking cannot be cancelled from its current state")
	}
	var reason *string
	if body.Reason != "" {
		reason = &body.Reason
	}
	if err := h.BookingRepo.SetStatus(ctx, id, next, reason); err != nil {
		return failErr(c, err)
	}
	b.Status = next
	if f, ferr := h.FacilityRepo.GetByID(ctx, b.FacilityID); ferr == nil {
		notifyBookingStatus(b, f.Name, f.CurrencyCode, body.Reason)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "status": next})
}

// AttachReceipt handles PUT /v1/bookings/:id/receipt with the uploaded
// payment proof reference.
func (h *CustomerHandler) AttachReceipt(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid booking id")
	}
	var body struct {
		ReceiptURL string `json:"receipt_url"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.ReceiptURL) == "" {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "receipt_url required")
	}
	if err := h.BookingRepo.AttachReceipt(c.Request().Context(), id, userID, strings.TrimSpace(body.ReceiptURL)); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "receipt_verified": false})
}

// purchasePassReq is the body for POST /v1/passes/:id/purchase.
type purchasePassReq struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD, defaults to today
}

// PurchasePass handles POST /v1/passes/:id/purchase.  The entitlement
// window is [start, start+duration_days]; a future start leaves the
// purchase PENDING until the window opens.
func (h *CustomerHandler) PurchasePass(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	passID, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid pass id")
	}
	var req purchasePassReq
	_ = c.Bind(&req)

	start := time.Now().UTC().Truncate(24 * time.Hour)
	if strings.TrimSpace(req.StartDate) != "" {
		var okDate bool
		start, okDate = parseDate(req.StartDate)
		if !okDate {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "start_date must be YYYY-MM-DD")
		}
		if start.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
			return fail(c, http.StatusBadRequest, codeInvalidParameter, "start_date is in the past")
		}
	}

	ctx := c.Request().Context()
	pass, err := h.PassRepo.GetByID(ctx, passID)
	if err != nil {
		return failErr(c, err)
	}
	if !pass.IsActive {
		return fail(c, http.StatusBadRequest, codePreconditionFailed, "pass is no longer offered")
	}
	f, err := h.FacilityRepo.GetByID(ctx, pass.FacilityID)
	if err != nil {
		return failErr(c, err)
	}
	if f.Status != model.FacilityActive {
		return failErr(c, repository.ErrFacilityNotActive)
	}

	status := model.PurchaseActive
	if start.After(time.Now().UTC().Truncate(24 * time.Hour)) {
		status = model.PurchasePending
	}
	p := model.PassPurchase{
		PassID:    passID,
		UserID:    userID,
		StartDate: start,
		EndDate:   purchaseEndDate(start, pass.DurationDays),
		Status:    status,
	}
	if err := h.PurchaseRepo.Create(ctx, &p); err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to create purchase")
	}
	return ok(c, http.StatusCreated, echo.Map{
		"purchase":      p,
		"price":         pass.Price,
		"price_per_day": pricing.PricePerDay(pass.Price, pass.DurationDays),
		"currency_code": pass.CurrencyCode,
	})
}

// ListMyPurchases handles GET /v1/my-passes.
func (h *CustomerHandler) ListMyPurchases(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	items, err := h.PurchaseRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, codeInternal, "failed to load purchases")
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// CancelPurchase handles POST /v1/my-passes/:id/cancel.
func (h *CustomerHandler) CancelPurchase(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	id, okID := parseID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, codeInvalidParameter, "invalid purchase id")
	}
	if err := h.PurchaseRepo.Cancel(c.Request().Context(), id, userID); err != nil {
		return failErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "status": model.PurchaseCancelled})
}
