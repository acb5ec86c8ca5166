package cart

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresDiscountLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresDiscountRepository(db)

	rows := sqlmock.NewRows([]string{"code", "amount", "kind"}).
		AddRow("SAVE10", 10.0, "percentage")
	// code reaches the query upper-cased and trimmed
	mock.ExpectQuery("FROM discount_codes").WithArgs("SAVE10").WillReturnRows(rows)

	d, err := repo.GetByCode(context.Background(), "  save10 ")
	if err != nil {
		t.Fatal(err)
	}
	if d.Type != DiscountPercentage || d.Amount != 10 {
		t.Fatalf("unexpected discount %+v", d)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDiscountUnknownCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresDiscountRepository(db)

	mock.ExpectQuery("FROM discount_codes").WithArgs("BOGUS").
		WillReturnRows(sqlmock.NewRows([]string{"code", "amount", "kind"}))

	if _, err := repo.GetByCode(context.Background(), "bogus"); err != ErrCodeNotFound {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
