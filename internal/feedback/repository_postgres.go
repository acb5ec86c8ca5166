package feedback

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(name, email string, rating int, message, createdAt string) (Entry, error) {
	var id int
	err := r.db.QueryRow(`INSERT INTO feedback (name, email, rating, message, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING feedback_id`,
		name, nullableEmail(email), rating, message, createdAt).Scan(&id)
	if err != nil {
		return Entry{}, err
	}

	return Entry{ID: id, Name: name, Email: email, Rating: rating, Message: message, CreatedAt: createdAt}, nil
}

func (r *PostgresRepository) List() ([]Entry, error) {
	rows, err := r.db.Query(`SELECT feedback_id, name, email, rating, message, created_at
		FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var email sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &email, &e.Rating, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Email = email.String
		out = append(out, e)
	}

	return out, rows.Err()
}

func nullableEmail(s string) any {
	if s == "" {
		return nil
	}
	return s
}
