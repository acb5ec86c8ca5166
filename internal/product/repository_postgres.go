package product

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT product_id, name, description, price, image, variant, max_quantity
		FROM products
		ORDER BY product_id
	`
	getProductByIDQuery = `
		SELECT product_id, name, description, price, image, variant, max_quantity
		FROM products
		WHERE product_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}

	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var desc, image, variant sql.NullString

	if err := scanner.Scan(&p.ID, &p.Name, &desc, &p.Price, &image, &variant, &p.MaxQuantity); err != nil {
		return Product{}, err
	}

	if desc.Valid {
		p.Description = desc.String
	}
	if image.Valid {
		p.Image = image.String
	}
	if variant.Valid {
		p.Variant = variant.String
	}

	return p, nil
}
