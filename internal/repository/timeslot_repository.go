package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/model"
)

// TimeSlotRepo manages the recurring weekly slot templates.  Templates
// are generated in bulk from a facility's operating hours or added one
// by one; they are never hard-deleted, only deactivated, so historical
// bookings always keep a valid governing slot.
type TimeSlotRepo struct {
	db *sql.DB
}

// NewTimeSlotRepo constructs a TimeSlotRepo bound to the given database.
func NewTimeSlotRepo(db *sql.DB) *TimeSlotRepo { return &TimeSlotRepo{db: db} }

// CreateBulk inserts many slot templates in one statement, skipping
// windows that already exist for the facility (the unique key on
// facility/day/start/end absorbs regeneration).  Returns the number of
// newly inserted rows.
func (r *TimeSlotRepo) CreateBulk(ctx context.Context, slots []model.TimeSlot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	query := `INSERT IGNORE INTO time_slots (facility_id, day_of_week, start_time, end_time, price, is_available, max_bookings) VALUES `
	args := make([]interface{}, 0, len(slots)*7)
	for i, s := range slots {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		var price interface{}
		if s.Price != nil {
			price = s.Price.String()
		}
		max := s.MaxBookings
		if max == 0 {
			max = 1
		}
		args = append(args, s.FacilityID, s.DayOfWeek, s.StartTime, s.EndTime, price, s.IsAvailable, max)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CreateBulkTx is CreateBulk within an existing transaction, used by the
// draft commit flow.
func (r *TimeSlotRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, slots []model.TimeSlot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	query := `INSERT IGNORE INTO time_slots (facility_id, day_of_week, start_time, end_time, price, is_available, max_bookings) VALUES `
	args := make([]interface{}, 0, len(slots)*7)
	for i, s := range slots {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		var price interface{}
		if s.Price != nil {
			price = s.Price.String()
		}
		max := s.MaxBookings
		if max == 0 {
			max = 1
		}
		args = append(args, s.FacilityID, s.DayOfWeek, s.StartTime, s.EndTime, price, s.IsAvailable, max)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Create inserts a single owner-defined slot template.  A duplicate
// window for the same facility and day returns ErrConflict.
func (r *TimeSlotRepo) Create(ctx context.Context, s *model.TimeSlot) error {
	var price interface{}
	if s.Price != nil {
		price = s.Price.String()
	}
	max := s.MaxBookings
	if max == 0 {
		max = 1
	}
	const q = `INSERT INTO time_slots (facility_id, day_of_week, start_time, end_time, price, is_available, max_bookings)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.FacilityID, s.DayOfWeek, s.StartTime, s.EndTime, price, s.IsAvailable, max)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.MaxBookings = max
	return nil
}

// scanTimeSlot reads one template row.
func scanTimeSlot(row interface{ Scan(...any) error }) (model.TimeSlot, error) {
	var s model.TimeSlot
	var price sql.NullString
	err := row.Scan(&s.ID, &s.FacilityID, &s.DayOfWeek, &s.StartTime, &s.EndTime,
		&price, &s.IsAvailable, &s.MaxBookings, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return s, err
	}
	if price.Valid {
		d, err := decimal.NewFromString(price.String)
		if err != nil {
			return s, err
		}
		s.Price = &d
	}
	s.StartTime = trimSeconds(s.StartTime)
	s.EndTime = trimSeconds(s.EndTime)
	return s, nil
}

const timeSlotCols = `id, facility_id, day_of_week, start_time, end_time, price, is_available, max_bookings, created_at, updated_at`

// ListByFacility returns all templates for a facility ordered by day
// then start time.  Pass activeOnly to hide deactivated windows.
func (r *TimeSlotRepo) ListByFacility(ctx context.Context, facilityID uint64, activeOnly bool) ([]model.TimeSlot, error) {
	q := `SELECT ` + timeSlotCols + ` FROM time_slots WHERE facility_id = ?`
	if activeOnly {
		q += ` AND is_available = 1`
	}
	q += ` ORDER BY day_of_week, start_time`
	rows, err := r.db.QueryContext(ctx, q, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TimeSlot, 0)
	for rows.Next() {
		s, err := scanTimeSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one template.  Returns ErrSlotNotFound when missing.
func (r *TimeSlotRepo) GetByID(ctx context.Context, id uint64) (model.TimeSlot, error) {
	s, err := scanTimeSlot(r.db.QueryRowContext(ctx,
		`SELECT `+timeSlotCols+` FROM time_slots WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return s, ErrSlotNotFound
	}
	return s, err
}

// SetAvailability activates or deactivates a template.  Deactivation is
// the only removal path; rows stay for historical bookings.
func (r *TimeSlotRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_slots SET is_available = ? WHERE id = ?`, available, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// GetGoverningTx locks and returns the slot template governing the
// given facility, day-of-week and start time.  The SELECT ... FOR UPDATE
// serializes concurrent booking attempts on the same window: the second
// transaction blocks here until the first commits, and then sees its
// booking in the conflict count.  Returns ErrSlotNotFound when no
// available template covers the window.
func (r *TimeSlotRepo) GetGoverningTx(ctx context.Context, tx *sql.Tx, facilityID uint64, dayOfWeek int, startTime string) (model.TimeSlot, error) {
	s, err := scanTimeSlot(tx.QueryRowContext(ctx,
		`SELECT `+timeSlotCols+` FROM time_slots
		 WHERE facility_id = ? AND day_of_week = ? AND start_time = ? AND is_available = 1
		 LIMIT 1 FOR UPDATE`,
		facilityID, dayOfWeek, startTime))
	if err == sql.ErrNoRows {
		return s, ErrSlotNotFound
	}
	return s, err
}
