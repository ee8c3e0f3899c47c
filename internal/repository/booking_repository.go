package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/booking"
	"github.com/iliyamo/playground-booking/internal/model"
)

// BookingRepo provides CRUD operations and conflict resolution for
// bookings.  The availability check and the insert always run inside
// one transaction: the governing slot row is locked first
// (TimeSlotRepo.GetGoverningTx), then active bookings are counted, then
// the insert happens.  Two concurrent requests for the same window
// serialize on the slot lock, so both can never pass the count.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning the slot and booking repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// ExpirePendingTx lazily cancels PENDING bookings older than the
// configured TTL at the start of a booking-create transaction, instead
// of relying on a background job.  A TTL of zero disables expiry
// entirely (manual owner review only).  Returns the number of bookings
// expired.
func (r *BookingRepo) ExpirePendingTx(ctx context.Context, tx *sql.Tx, facilityID uint64, ttlHours int) (int64, error) {
	if ttlHours <= 0 {
		return 0, nil
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = 'CANCELLED', cancel_reason = 'expired: not approved in time'
		 WHERE facility_id = ? AND status = 'PENDING' AND created_at < UTC_TIMESTAMP() - INTERVAL ? HOUR`,
		facilityID, ttlHours)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountActiveTx counts PENDING/CONFIRMED bookings occupying the exact
// (facility, date, start_time) tuple.  Must be called after the
// governing slot row has been locked in the same transaction.
func (r *BookingRepo) CountActiveTx(ctx context.Context, tx *sql.Tx, facilityID uint64, date, startTime string) (uint32, error) {
	var n uint32
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE facility_id = ? AND booking_date = ? AND start_time = ?
		   AND status IN ('PENDING','CONFIRMED')`,
		facilityID, date, startTime).Scan(&n)
	return n, err
}

// CountActive is the advisory (non-locking) variant used by the public
// availability endpoint.  It takes no locks and has no side effects, so
// two identical requests without an intervening booking return the same
// counts.
func (r *BookingRepo) CountActive(ctx context.Context, facilityID uint64, date, startTime string) (uint32, error) {
	var n uint32
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE facility_id = ? AND booking_date = ? AND start_time = ?
		   AND status IN ('PENDING','CONFIRMED')`,
		facilityID, date, startTime).Scan(&n)
	return n, err
}

// HasActivePassBookingTx reports whether the purchase already has a
// PENDING/CONFIRMED booking on the given date.  Pass bookings are
// matched on the structured pass_purchase_id column, so a purchase can
// be used at most once per day regardless of the nominal start time
// written on the row.
func (r *BookingRepo) HasActivePassBookingTx(ctx context.Context, tx *sql.Tx, facilityID, passPurchaseID uint64, date string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE facility_id = ? AND booking_date = ? AND pass_purchase_id = ?
		   AND booking_kind = 'PASS' AND status IN ('PENDING','CONFIRMED')`,
		facilityID, date, passPurchaseID).Scan(&n)
	return n > 0, err
}

// CreateTx inserts a booking within the scope of an existing
// transaction and populates the generated ID.  The caller must commit
// or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (facility_id, user_id, booking_kind, pass_purchase_id, booking_date, start_time, end_time,
	            duration_hours, price_per_hour, total_amount, final_amount, status, payment_status,
	            receipt_verified, special_requests)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.FacilityID, b.UserID, b.BookingKind, b.PassPurchaseID,
		b.BookingDate.Format("2006-01-02"), b.StartTime, b.EndTime,
		b.DurationHours, b.PricePerHour, b.TotalAmount, b.FinalAmount,
		b.Status, b.PaymentStatus, b.ReceiptVerified, b.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

const bookingCols = `id, facility_id, user_id, booking_kind, pass_purchase_id, booking_date, start_time, end_time,
	duration_hours, price_per_hour, total_amount, final_amount, status, payment_status,
	payment_receipt, receipt_verified, special_requests, cancel_reason, created_at, updated_at`

// scanBooking reads one booking row.
func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	var passID sql.NullInt64
	var durationHours, pricePerHour, totalAmount, finalAmount string
	var receipt, reason sql.NullString
	err := row.Scan(&b.ID, &b.FacilityID, &b.UserID, &b.BookingKind, &passID,
		&b.BookingDate, &b.StartTime, &b.EndTime,
		&durationHours, &pricePerHour, &totalAmount, &finalAmount,
		&b.Status, &b.PaymentStatus, &receipt, &b.ReceiptVerified,
		&b.SpecialRequests, &reason, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	if passID.Valid {
		v := uint64(passID.Int64)
		b.PassPurchaseID = &v
	}
	if receipt.Valid {
		v := receipt.String
		b.PaymentReceipt = &v
	}
	if reason.Valid {
		v := reason.String
		b.CancelReason = &v
	}
	if b.DurationHours, err = decimal.NewFromString(durationHours); err != nil {
		return b, err
	}
	if b.PricePerHour, err = decimal.NewFromString(pricePerHour); err != nil {
		return b, err
	}
	if b.TotalAmount, err = decimal.NewFromString(totalAmount); err != nil {
		return b, err
	}
	if b.FinalAmount, err = decimal.NewFromString(finalAmount); err != nil {
		return b, err
	}
	b.StartTime = trimSeconds(b.StartTime)
	b.EndTime = trimSeconds(b.EndTime)
	return b, nil
}

// GetByID fetches a booking.  Returns ErrBookingNotFound when missing.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return b, ErrBookingNotFound
	}
	return b, err
}

// GetByIDForOwner fetches a booking and verifies that the caller owns
// the facility it targets.  Returns ErrBookingNotFound when missing and
// ErrForbidden when the facility belongs to someone else.
func (r *BookingRepo) GetByIDForOwner(ctx context.Context, id, ownerID uint64) (model.Booking, error) {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT f.owner_id FROM bookings b JOIN facilities f ON f.id = b.facility_id WHERE b.id = ?`,
		id).Scan(&actualOwner)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	if actualOwner != ownerID {
		return model.Booking{}, ErrForbidden
	}
	return r.GetByID(ctx, id)
}

// ListByUser returns a user's bookings newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByFacilityForOwner returns all bookings of a facility after
// verifying ownership.  Returns ErrFacilityNotFound or ErrForbidden
// accordingly.
func (r *BookingRepo) ListByFacilityForOwner(ctx context.Context, facilityID, ownerID uint64) ([]model.Booking, error) {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM facilities WHERE id = ?`, facilityID).Scan(&actualOwner)
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE facility_id = ? ORDER BY booking_date DESC, start_time`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetStatus persists a validated status transition.  The new status and
// optional cancel reason must already have passed the state machine in
// the booking package; this method only writes.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status string, reason *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, cancel_reason = COALESCE(?, cancel_reason) WHERE id = ?`,
		status, reason, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// AttachReceipt stores the uploaded payment-receipt reference for a
// booking owned by the user.  The content itself is opaque to the core.
func (r *BookingRepo) AttachReceipt(ctx context.Context, id, userID uint64, receiptURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_receipt = ?, receipt_verified = 0 WHERE id = ? AND user_id = ?`,
		receiptURL, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// SetReceiptVerification is the admin action on an uploaded receipt.
// Verification also marks the payment as PAID; rejection reverts it to
// PENDING.  Booking status is deliberately untouched: a booking may sit
// PENDING with a verified receipt until the owner acts.
func (r *BookingRepo) SetReceiptVerification(ctx context.Context, id uint64, verified bool) error {
	payment := booking.PaymentPending
	if verified {
		payment = booking.PaymentPaid
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET receipt_verified = ?, payment_status = ? WHERE id = ?`,
		verified, payment, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CompleteElapsed marks CONFIRMED bookings whose window has passed as
// COMPLETED.  Invoked lazily from listing paths; returns the number of
// rows transitioned.
func (r *BookingRepo) CompleteElapsed(ctx context.Context, facilityID uint64, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'COMPLETED'
		 WHERE facility_id = ? AND status = 'CONFIRMED'
		   AND CONCAT(booking_date, ' ', end_time) < ?`,
		facilityID, now.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
