package order

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `id, user_id, product_name, quantity, price, total,
	fullname, phone, address, alternate_address, city, state, zip_code,
	payment_method, status, tracking_number, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	_, err := r.db.Exec(`INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		ord.ID, ord.UserID, ord.ProductName, ord.Quantity, ord.Price, ord.Total,
		ord.FullName, ord.Phone, ord.Address, nullable(ord.AlternateAddress),
		nullable(ord.City), nullable(ord.State), nullable(ord.Zip),
		nullable(ord.PaymentMethod), string(ord.Status), nullable(ord.TrackingNumber),
		ord.CreatedAt, ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) List(f Filter) ([]Order, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if f.UserID != 0 {
		args = append(args, f.UserID)
		where = append(where, `user_id = $`+strconv.Itoa(len(args)))
	}
	if f.TrackingNumber != "" {
		args = append(args, f.TrackingNumber)
		where = append(where, `tracking_number = $`+strconv.Itoa(len(args)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		where = append(where, `status = ANY($`+strconv.Itoa(len(args))+`::text[])`)
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) Update(ord Order) (Order, error) {
	result, err := r.db.Exec(`UPDATE orders
		SET product_name = $1, quantity = $2, price = $3, total = $4,
			fullname = $5, phone = $6, address = $7, alternate_address = $8,
			city = $9, state = $10, zip_code = $11, payment_method = $12,
			status = $13, tracking_number = $14, updated_at = $15
		WHERE id = $16`,
		ord.ProductName, ord.Quantity, ord.Price, ord.Total,
		ord.FullName, ord.Phone, ord.Address, nullable(ord.AlternateAddress),
		nullable(ord.City), nullable(ord.State), nullable(ord.Zip),
		nullable(ord.PaymentMethod), string(ord.Status), nullable(ord.TrackingNumber),
		ord.UpdatedAt, ord.ID)
	if err != nil {
		return Order{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}

	return ord, nil
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	ord := Order{}
	var status string
	var altAddress, city, state, zip, payment, tracking sql.NullString

	if err := scanner.Scan(
		&ord.ID, &ord.UserID, &ord.ProductName, &ord.Quantity, &ord.Price, &ord.Total,
		&ord.FullName, &ord.Phone, &ord.Address, &altAddress,
		&city, &state, &zip, &payment, &status, &tracking,
		&ord.CreatedAt, &ord.UpdatedAt,
	); err != nil {
		return Order{}, err
	}

	ord.Status = Status(status)
	ord.AlternateAddress = altAddress.String
	ord.City = city.String
	ord.State = state.String
	ord.Zip = zip.String
	ord.PaymentMethod = payment.String
	ord.TrackingNumber = tracking.String
	return ord, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
