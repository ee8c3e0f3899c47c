package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/playground-booking/internal/model"
)

// PassPurchaseRepo manages pass purchases.  A purchase's usability is a
// pure function of its status and today's date; statuses are refreshed
// lazily on read rather than by a background job.
type PassPurchaseRepo struct {
	db *sql.DB
}

// NewPassPurchaseRepo constructs a PassPurchaseRepo.
func NewPassPurchaseRepo(db *sql.DB) *PassPurchaseRepo { return &PassPurchaseRepo{db: db} }

// Create inserts a purchase.  end_date must already be computed by the
// caller as start_date + duration_days.
func (r *PassPurchaseRepo) Create(ctx context.Context, p *model.PassPurchase) error {
	const q = `INSERT INTO pass_purchases (pass_id, user_id, start_date, end_date, status)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.PassID, p.UserID,
		p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"), p.Status)
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

const purchaseCols = `id, pass_id, user_id, start_date, end_date, status, usage_count, created_at`

// scanPurchase reads one purchase row.
func scanPurchase(row interface{ Scan(...any) error }) (model.PassPurchase, error) {
	var p model.PassPurchase
	err := row.Scan(&p.ID, &p.PassID, &p.UserID, &p.StartDate, &p.EndDate,
		&p.Status, &p.UsageCount, &p.CreatedAt)
	return p, err
}

// refresh recomputes a purchase's effective status from today's date.
// PENDING purchases whose window has opened become ACTIVE; ACTIVE
// purchases whose window has closed become EXPIRED.  The row is updated
// opportunistically so later reads agree, but a failed update does not
// fail the read.
func (r *PassPurchaseRepo) refresh(ctx context.Context, p *model.PassPurchase) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	next := p.Status
	switch p.Status {
	case model.PurchasePending:
		if !today.Before(p.StartDate) && !today.After(p.EndDate) {
			next = model.PurchaseActive
		} else if today.After(p.EndDate) {
			next = model.PurchaseExpired
		}
	case model.PurchaseActive:
		if today.After(p.EndDate) {
			next = model.PurchaseExpired
		}
	}
	if next != p.Status {
		p.Status = next
		_, _ = r.db.ExecContext(ctx, `UPDATE pass_purchases SET status = ? WHERE id = ?`, next, p.ID)
	}
}

// GetByID fetches a purchase with its status refreshed.  Returns
// ErrPurchaseNotFound when missing.
func (r *PassPurchaseRepo) GetByID(ctx context.Context, id uint64) (model.PassPurchase, error) {
	p, err := scanPurchase(r.db.QueryRowContext(ctx,
		`SELECT `+purchaseCols+` FROM pass_purchases WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return p, ErrPurchaseNotFound
	}
	if err != nil {
		return p, err
	}
	r.refresh(ctx, &p)
	return p, nil
}

// ListByUser returns a user's purchases newest first, statuses
// refreshed.
func (r *PassPurchaseRepo) ListByUser(ctx context.Context, userID uint64) ([]model.PassPurchase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+purchaseCols+` FROM pass_purchases WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PassPurchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		r.refresh(ctx, &out[i])
	}
	return out, nil
}

// IncrementUsage bumps the usage counter after a successful PASS
// booking.
func (r *PassPurchaseRepo) IncrementUsage(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pass_purchases SET usage_count = usage_count + 1 WHERE id = ?`, id)
	return err
}

// IncrementUsageTx is IncrementUsage within the booking transaction so
// the counter and the booking insert commit together.
func (r *PassPurchaseRepo) IncrementUsageTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE pass_purchases SET usage_count = usage_count + 1 WHERE id = ?`, id)
	return err
}

// GetForUpdateTx locks and returns a purchase inside a booking
// transaction so the usability check and the booking insert see a
// consistent row.
func (r *PassPurchaseRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.PassPurchase, error) {
	p, err := scanPurchase(tx.QueryRowContext(ctx,
		`SELECT `+purchaseCols+` FROM pass_purchases WHERE id = ? FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return p, ErrPurchaseNotFound
	}
	return p, err
}

// Cancel marks a purchase cancelled.  Only PENDING and ACTIVE purchases
// can be cancelled.
func (r *PassPurchaseRepo) Cancel(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pass_purchases SET status = 'CANCELLED'
		 WHERE id = ? AND user_id = ? AND status IN ('PENDING','ACTIVE')`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPurchaseNotFound
	}
	return nil
}
