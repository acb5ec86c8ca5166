package cart

import (
	"context"
	"errors"
	"strings"
)

var ErrCodeNotFound = errors.New("discount code not found")

// DiscountRepository resolves promotion codes. Lookups are
// case-insensitive.
type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (Discount, error)
}

// StaticDiscountRepository holds a fixed code table. It is the fallback
// when no database is wired and the seed source for the discount_codes
// table.
type StaticDiscountRepository struct {
	codes map[string]Discount
}

// DefaultDiscounts returns the launch promotion set.
func DefaultDiscounts() []Discount {
	return []Discount{
		{Code: "SAVE10", Amount: 10, Type: DiscountPercentage},
		{Code: "SAVE50", Amount: 50, Type: DiscountFixed},
		{Code: "WELCOME20", Amount: 20, Type: DiscountPercentage},
	}
}

func NewStaticDiscountRepository(discounts []Discount) *StaticDiscountRepository {
	codes := make(map[string]Discount, len(discounts))
	for _, d := range discounts {
		codes[strings.ToUpper(d.Code)] = d
	}
	return &StaticDiscountRepository{codes: codes}
}

func (r *StaticDiscountRepository) GetByCode(_ context.Context, code string) (Discount, error) {
	if d, ok := r.codes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return d, nil
	}
	return Discount{}, ErrCodeNotFound
}
