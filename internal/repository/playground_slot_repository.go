package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/model"
)

// PlaygroundSlotRepo manages owner-defined ad hoc slots.  Unlike the
// generated templates these carry per-type pricing (REGULAR, PREMIUM,
// VIP) and their own capacity.
type PlaygroundSlotRepo struct {
	db *sql.DB
}

// NewPlaygroundSlotRepo constructs a PlaygroundSlotRepo.
func NewPlaygroundSlotRepo(db *sql.DB) *PlaygroundSlotRepo { return &PlaygroundSlotRepo{db: db} }

// Create inserts a custom slot.  The generated ID is written back.
func (r *PlaygroundSlotRepo) Create(ctx context.Context, s *model.PlaygroundSlot) error {
	const q = `INSERT INTO playground_slots (facility_id, slot_type, day_of_week, start_time, end_time, price, currency_code, max_capacity, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.FacilityID, s.SlotType, s.DayOfWeek, s.StartTime, s.EndTime,
		s.Price, s.CurrencyCode, s.MaxCapacity, s.IsActive)
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
	return nil
}

// CreateTx is Create within an existing transaction (draft commit).
func (r *PlaygroundSlotRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.PlaygroundSlot) error {
	const q = `INSERT INTO playground_slots (facility_id, slot_type, day_of_week, start_time, end_time, price, currency_code, max_capacity, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.FacilityID, s.SlotType, s.DayOfWeek, s.StartTime, s.EndTime,
		s.Price, s.CurrencyCode, s.MaxCapacity, s.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListByFacility returns a facility's custom slots ordered by day and
// start time, optionally restricted to active rows.
func (r *PlaygroundSlotRepo) ListByFacility(ctx context.Context, facilityID uint64, activeOnly bool) ([]model.PlaygroundSlot, error) {
	q := `SELECT id, facility_id, slot_type, day_of_week, start_time, end_time, price, currency_code, max_capacity, is_active, created_at
	      FROM playground_slots WHERE facility_id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY day_of_week, start_time`
	rows, err := r.db.QueryContext(ctx, q, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PlaygroundSlot, 0)
	for rows.Next() {
		var s model.PlaygroundSlot
		var price string
		if err := rows.Scan(&s.ID, &s.FacilityID, &s.SlotType, &s.DayOfWeek, &s.StartTime, &s.EndTime,
			&price, &s.CurrencyCode, &s.MaxCapacity, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		if s.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		s.StartTime = trimSeconds(s.StartTime)
		s.EndTime = trimSeconds(s.EndTime)
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetActive flips a custom slot's active flag.
func (r *PlaygroundSlotRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE playground_slots SET is_active = ? WHERE id = ?`, active, id)
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
