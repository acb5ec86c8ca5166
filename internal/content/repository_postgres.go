package content

import (
	"database/sql"
)

// PostgresRepository reads pages from the `content` table. Reads are
// resilient: a missing table yields the empty set rather than an error so
// the storefront can still render.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Page, error) {
	rows, err := r.db.Query(`SELECT slug, title, body, ord FROM content ORDER BY ord, slug`)
	if err != nil {
		return []Page{}, nil
	}
	defer rows.Close()

	out := make([]Page, 0)
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Slug, &p.Title, &p.Body, &p.Ord); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PostgresRepository) GetBySlug(slug string) (Page, bool) {
	var p Page
	err := r.db.QueryRow(`SELECT slug, title, body, ord FROM content WHERE slug = $1`, slug).
		Scan(&p.Slug, &p.Title, &p.Body, &p.Ord)
	if err != nil {
		return Page{}, false
	}
	return p, true
}
