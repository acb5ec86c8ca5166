package product

// Product is one sellable variant of the herbal oil. The catalog is tiny
// (one product, a few sizes) but the API keeps the usual list/get shape.
type Product struct {
	ID          int     `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Variant     string  `json:"variant,omitempty"`
	// MaxQuantity caps how many units a single cart may hold. Zero means
	// no cap.
	MaxQuantity int `json:"maxQuantity,omitempty"`
}

// Seed is the catalog loaded on first boot when the table is empty.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Sasya Mantra Herbal Hair Oil", Variant: "100ml", Price: 100, MaxQuantity: 5, Image: "/products/herbal-oil-100ml.jpg", Description: "Cold-pressed herbal hair oil with bhringraj and amla."},
		{ID: 2, Name: "Sasya Mantra Herbal Hair Oil", Variant: "200ml", Price: 180, MaxQuantity: 5, Image: "/products/herbal-oil-200ml.jpg", Description: "Cold-pressed herbal hair oil, family size."},
	}
}
