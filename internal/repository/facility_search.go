package repository

import (
	"context"
	"strings"
)

// FacilitySearchQuery defines filters & pagination for the public
// facility listing.  Only ACTIVE facilities are ever returned.
type FacilitySearchQuery struct {
	Name     string
	City     string
	Sport    string
	Page     int
	PageSize int
}

// PublicFacilityRow is the sanitized facility view returned to guests.
type PublicFacilityRow struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Sport        string `json:"sport"`
	Type         string `json:"type"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	BasePrice    string `json:"base_price"`
	CurrencyCode string `json:"currency_code"`
	Capacity     uint32 `json:"capacity"`
}

// Search returns active facilities matching the query plus the total
// match count for pagination.  Name, city and sport filters are
// case-insensitive substring matches.
func (r *FacilityRepo) Search(ctx context.Context, q FacilitySearchQuery) ([]PublicFacilityRow, int64, error) {
	where := []string{"f.status = 'ACTIVE'"}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(f.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.City != "" {
		where = append(where, "LOWER(ci.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if q.Sport != "" {
		where = append(where, "LOWER(sp.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Sport)+"%")
	}
	cond := strings.Join(where, " AND ")

	const from = ` FROM facilities f
		JOIN sports sp ON sp.id = f.sport_id
		JOIN playground_types pt ON pt.id = f.type_id
		JOIN cities ci ON ci.id = f.city_id
		JOIN states st ON st.id = ci.state_id
		JOIN countries co ON co.id = st.country_id
		WHERE `

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT f.id, f.name, sp.name, pt.name, ci.name, st.name, co.name,
			f.base_price, f.currency_code, f.capacity` + from + cond + `
		ORDER BY f.name ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicFacilityRow, 0, limit)
	for rows.Next() {
		var d PublicFacilityRow
		if err := rows.Scan(&d.ID, &d.Name, &d.Sport, &d.Type, &d.City, &d.State, &d.Country,
			&d.BasePrice, &d.CurrencyCode, &d.Capacity); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
