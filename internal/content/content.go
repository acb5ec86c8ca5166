package content

// Page is a marketing page rendered by the storefront (about, benefits,
// usage instructions and the like).
type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Ord   int    `json:"ord"`
}

// Seed returns the pages every fresh deployment ships with.
func Seed() []Page {
	return []Page{
		{
			Slug:  "about",
			Title: "About Sasya Mantra",
			Body:  "Sasya Mantra herbal oil is prepared from a traditional blend of medicinal herbs, cold-pressed and bottled in small batches.",
			Ord:   1,
		},
		{
			Slug:  "benefits",
			Title: "Benefits",
			Body:  "Regular application supports joint comfort, healthy skin and relief from everyday aches.",
			Ord:   2,
		},
		{
			Slug:  "how-to-use",
			Title: "How To Use",
			Body:  "Warm a few drops between your palms and massage gently into the affected area twice a day.",
			Ord:   3,
		},
		{
			Slug:  "ingredients",
			Title: "Ingredients",
			Body:  "A blend of sesame oil, ashwagandha, turmeric and eucalyptus extracts. No artificial additives.",
			Ord:   4,
		},
	}
}
