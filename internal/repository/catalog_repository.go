package repository

import (
	"context"
	"database/sql"
)

// CatalogRepo reads the reference tables: sports, playground types and
// the geographic hierarchy.  Catalog data is effectively immutable
// within a request so no locking is ever required here.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo constructs a CatalogRepo with the given DB handle.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// SportRow is the public view of a sport type.
type SportRow struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ListSports returns all sport types ordered by name.
func (r *CatalogRepo) ListSports(ctx context.Context) ([]SportRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM sports ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SportRow, 0)
	for rows.Next() {
		var s SportRow
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListPlaygroundTypes returns all playground types ordered by name.
func (r *CatalogRepo) ListPlaygroundTypes(ctx context.Context) ([]SportRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM playground_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SportRow, 0)
	for rows.Next() {
		var s SportRow
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CityRow carries a city with its state and country names resolved so
// clients never need to walk the hierarchy themselves.
type CityRow struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// ListCities returns every city joined with its state and country,
// ordered by country, state, city.
func (r *CatalogRepo) ListCities(ctx context.Context) ([]CityRow, error) {
	const q = `SELECT ci.id, ci.name, st.name, co.name
	           FROM cities ci
	           JOIN states st ON st.id = ci.state_id
	           JOIN countries co ON co.id = st.country_id
	           ORDER BY co.name, st.name, ci.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CityRow, 0)
	for rows.Next() {
		var c CityRow
		if err := rows.Scan(&c.ID, &c.Name, &c.State, &c.Country); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CityExists reports whether the given city id is present.  Used to
// validate facility submissions before insert.
func (r *CatalogRepo) CityExists(ctx context.Context, id uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cities WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}
