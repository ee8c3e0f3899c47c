package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/playground-booking/internal/model"
)

// PassRepo manages duration passes.  Hard deletion is blocked while any
// purchase referencing the pass is active; soft delete (is_active =
// false) is always possible.
type PassRepo struct {
	db *sql.DB
}

// NewPassRepo constructs a PassRepo bound to the given database.
func NewPassRepo(db *sql.DB) *PassRepo { return &PassRepo{db: db} }

// Create inserts a duration pass and writes the generated ID back.
func (r *PassRepo) Create(ctx context.Context, p *model.DurationPass) error {
	const q = `INSERT INTO duration_passes
	           (facility_id, name, duration_type, duration_days, price, currency_code,
	            equipment_included, priority_booking, guest_privileges, coaching_included, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.FacilityID, p.Name, p.DurationType, p.DurationDays,
		p.Price, p.CurrencyCode, p.EquipmentIncluded, p.PriorityBooking, p.GuestPrivileges,
		p.CoachingIncluded, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// CreateTx is Create within an existing transaction (draft commit).
func (r *PassRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.DurationPass) error {
	const q = `INSERT INTO duration_passes
	           (facility_id, name, duration_type, duration_days, price, currency_code,
	            equipment_included, priority_booking, guest_privileges, coaching_included, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, p.FacilityID, p.Name, p.DurationType, p.DurationDays,
		p.Price, p.CurrencyCode, p.EquipmentIncluded, p.PriorityBooking, p.GuestPrivileges,
		p.CoachingIncluded, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

const passCols = `id, facility_id, name, duration_type, duration_days, price, currency_code,
	equipment_included, priority_booking, guest_privileges, coaching_included, is_active, created_at, updated_at`

// scanPass reads one duration-pass row.
func scanPass(row interface{ Scan(...any) error }) (model.DurationPass, error) {
	var p model.DurationPass
	var price string
	err := row.Scan(&p.ID, &p.FacilityID, &p.Name, &p.DurationType, &p.DurationDays,
		&price, &p.CurrencyCode, &p.EquipmentIncluded, &p.PriorityBooking,
		&p.GuestPrivileges, &p.CoachingIncluded, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Price, err = decimal.NewFromString(price)
	return p, err
}

// GetByID fetches a pass.  Returns ErrPassNotFound when missing.
func (r *PassRepo) GetByID(ctx context.Context, id uint64) (model.DurationPass, error) {
	p, err := scanPass(r.db.QueryRowContext(ctx,
		`SELECT `+passCols+` FROM duration_passes WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return p, ErrPassNotFound
	}
	return p, err
}

// ListByFacility returns the passes of a facility, optionally only the
// active ones, ordered by duration.
func (r *PassRepo) ListByFacility(ctx context.Context, facilityID uint64, activeOnly bool) ([]model.DurationPass, error) {
	q := `SELECT ` + passCols + ` FROM duration_passes WHERE facility_id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY duration_days`
	rows, err := r.db.QueryContext(ctx, q, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.DurationPass, 0)
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a pass.  When any purchase of the pass is still active
// the delete is blocked with ErrHasActivePurchases and the pass is
// soft-deleted instead (is_active=false), so it disappears from
// listings while active purchases keep a valid reference.  The check
// and the delete run in one transaction.
func (r *PassRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var active int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pass_purchases
		 WHERE pass_id = ? AND status = 'ACTIVE' AND start_date <= CURDATE() AND end_date >= CURDATE()
		 FOR UPDATE`, id).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE duration_passes SET is_active = 0 WHERE id = ?`, id); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		committed = true
		return ErrHasActivePurchases
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM duration_passes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPassNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
