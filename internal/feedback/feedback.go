package feedback

// Entry is a piece of customer feedback left through the public form.
type Entry struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}
