package cart

import (
	"context"
	"database/sql"
	"strings"
)

// PostgresDiscountRepository resolves codes from the discount_codes table.
type PostgresDiscountRepository struct {
	db *sql.DB
}

const getDiscountQuery = `
	SELECT code, amount, kind
	FROM discount_codes
	WHERE code = $1
`

func NewPostgresDiscountRepository(db *sql.DB) *PostgresDiscountRepository {
	return &PostgresDiscountRepository{db: db}
}

func (r *PostgresDiscountRepository) GetByCode(ctx context.Context, code string) (Discount, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var d Discount
	var kind string
	err := r.db.QueryRowContext(ctx, getDiscountQuery, normalized).Scan(&d.Code, &d.Amount, &kind)
	if err != nil {
		if err == sql.ErrNoRows {
			return Discount{}, ErrCodeNotFound
		}
		return Discount{}, err
	}

	d.Type = DiscountType(kind)
	return d, nil
}
