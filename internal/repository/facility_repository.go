package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/model"
	"github.com/iliyamo/playground-booking/internal/slot"
)

// FacilityRepo provides persistence for facilities, their per-day
// operating hours and their amenities.  Facility rows hold the pricing
// configuration (base hourly price + currency) that the slot generator
// and pricing calculator consume.
type FacilityRepo struct {
	db *sql.DB
}

// NewFacilityRepo constructs a FacilityRepo bound to the given database.
func NewFacilityRepo(db *sql.DB) *FacilityRepo { return &FacilityRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *FacilityRepo) DB() *sql.DB { return r.db }

// Create inserts a facility.  New owner submissions always start in
// PENDING; only admin approval moves a facility to ACTIVE.  The
// generated ID is written back onto the model.
func (r *FacilityRepo) Create(ctx context.Context, f *model.Facility) error {
	const q = `INSERT INTO facilities (owner_id, name, sport_id, type_id, city_id, base_price, currency_code, capacity, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.OwnerID, f.Name, f.SportID, f.TypeID, f.CityID,
		f.BasePrice, f.CurrencyCode, f.Capacity, f.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// CreateTx is Create within an existing transaction.  Used by the draft
// commit flow so the facility and all staged children land atomically.
func (r *FacilityRepo) CreateTx(ctx context.Context, tx *sql.Tx, f *model.Facility) error {
	const q = `INSERT INTO facilities (owner_id, name, sport_id, type_id, city_id, base_price, currency_code, capacity, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, f.OwnerID, f.Name, f.SportID, f.TypeID, f.CityID,
		f.BasePrice, f.CurrencyCode, f.Capacity, f.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// scanFacility reads one facility row from the given scanner.
func scanFacility(row interface{ Scan(...any) error }) (model.Facility, error) {
	var f model.Facility
	var base string
	err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.SportID, &f.TypeID, &f.CityID,
		&base, &f.CurrencyCode, &f.Capacity, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return f, err
	}
	f.BasePrice, err = decimal.NewFromString(base)
	return f, err
}

const facilityCols = `id, owner_id, name, sport_id, type_id, city_id, base_price, currency_code, capacity, status, created_at, updated_at`

// GetByID fetches a facility by id.  Returns ErrFacilityNotFound when
// no row exists.
func (r *FacilityRepo) GetByID(ctx context.Context, id uint64) (model.Facility, error) {
	f, err := scanFacility(r.db.QueryRowContext(ctx,
		`SELECT `+facilityCols+` FROM facilities WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return f, ErrFacilityNotFound
	}
	return f, err
}

// GetByIDForOwner fetches a facility and verifies ownership.  Returns
// ErrFacilityNotFound when missing and ErrForbidden when the caller does
// not own it.
func (r *FacilityRepo) GetByIDForOwner(ctx context.Context, id, ownerID uint64) (model.Facility, error) {
	f, err := r.GetByID(ctx, id)
	if err != nil {
		return f, err
	}
	if f.OwnerID != ownerID {
		return model.Facility{}, ErrForbidden
	}
	return f, nil
}

// ListByOwner returns every facility belonging to the owner, newest
// first.
func (r *FacilityRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Facility, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+facilityCols+` FROM facilities WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListByStatus returns facilities in the given status, oldest first so
// the admin approval queue is processed in submission order.
func (r *FacilityRepo) ListByStatus(ctx context.Context, status string) ([]model.Facility, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+facilityCols+` FROM facilities WHERE status = ? ORDER BY created_at`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a facility's status.  Callers are expected to
// have validated the actor's permission (owner or admin) beforehand.
func (r *FacilityRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE facilities SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFacilityNotFound
	}
	return nil
}

// UpsertHours replaces the operating hours for one day.  The unique key
// on (facility_id, day_of_week) makes repeated submissions idempotent.
func (r *FacilityRepo) UpsertHours(ctx context.Context, h model.FacilityHours) error {
	const q = `INSERT INTO facility_hours (facility_id, day_of_week, open_time, close_time, is_open)
	           VALUES (?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE open_time = VALUES(open_time), close_time = VALUES(close_time), is_open = VALUES(is_open)`
	_, err := r.db.ExecContext(ctx, q, h.FacilityID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsOpen)
	return err
}

// UpsertHoursTx is UpsertHours within an existing transaction, used by
// the draft commit flow.
func (r *FacilityRepo) UpsertHoursTx(ctx context.Context, tx *sql.Tx, h model.FacilityHours) error {
	const q = `INSERT INTO facility_hours (facility_id, day_of_week, open_time, close_time, is_open)
	           VALUES (?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE open_time = VALUES(open_time), close_time = VALUES(close_time), is_open = VALUES(is_open)`
	_, err := tx.ExecContext(ctx, q, h.FacilityID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsOpen)
	return err
}

// GetHours loads the weekly operating-hours map for a facility in the
// shape the slot generator consumes.  Days without a row are absent
// from the map and treated as closed.
func (r *FacilityRepo) GetHours(ctx context.Context, facilityID uint64) (map[int]slot.DayHours, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day_of_week, open_time, close_time, is_open FROM facility_hours WHERE facility_id = ?`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int]slot.DayHours, 7)
	for rows.Next() {
		var day int
		var h slot.DayHours
		if err := rows.Scan(&day, &h.Open, &h.Close, &h.IsOpen); err != nil {
			return nil, err
		}
		// MySQL TIME columns come back as HH:MM:SS; the generator wants HH:MM.
		h.Open = trimSeconds(h.Open)
		h.Close = trimSeconds(h.Close)
		out[day] = h
	}
	return out, rows.Err()
}

// trimSeconds normalizes HH:MM:SS strings to HH:MM.
func trimSeconds(t string) string {
	if len(t) == 8 && strings.Count(t, ":") == 2 {
		return t[:5]
	}
	return t
}

// CreateAmenity adds an amenity to a facility.  FREE amenities are
// stored with a zero price regardless of the submitted value.
func (r *FacilityRepo) CreateAmenity(ctx context.Context, a *model.Amenity) error {
	if a.AmenityType == model.AmenityFree {
		a.Price = decimal.Zero
	}
	const q = `INSERT INTO amenities (facility_id, name, amenity_type, price) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.FacilityID, a.Name, a.AmenityType, a.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// ListAmenities returns a facility's amenities ordered by name.
func (r *FacilityRepo) ListAmenities(ctx context.Context, facilityID uint64) ([]model.Amenity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, facility_id, name, amenity_type, price FROM amenities WHERE facility_id = ? ORDER BY name`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Amenity, 0)
	for rows.Next() {
		var a model.Amenity
		var price string
		if err := rows.Scan(&a.ID, &a.FacilityID, &a.Name, &a.AmenityType, &price); err != nil {
			return nil, err
		}
		if a.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
