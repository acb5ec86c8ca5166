package order

import (
	"crypto/rand"
	"errors"
)

// Status is the order lifecycle tag. The canonical set is
// pending -> processing -> shipped -> completed, with cancelled reachable
// from pending or processing. Admin writes are not transition-checked;
// the enumeration only gates what values are accepted at all.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether the order can no longer change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is a member of the canonical enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is a durable record of a checkout submission. Once created it is
// owned by the store; clients hold only a possibly-stale copy.
type Order struct {
	ID               string  `json:"id"`
	UserID           int     `json:"userId"`
	ProductName      string  `json:"productName"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	Total            float64 `json:"total"`
	FullName         string  `json:"fullname"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	AlternateAddress string  `json:"alternateAddress,omitempty"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Zip              string  `json:"zip,omitempty"`
	PaymentMethod    string  `json:"paymentMethod,omitempty"`
	Status           Status  `json:"status"`
	TrackingNumber   string  `json:"trackingNumber,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ValidateForCreate reports the first missing or invalid field, matching
// the inline form errors the storefront shows. A nil return means the
// order may be submitted.
func (o Order) ValidateForCreate() error {
	switch {
	case o.ProductName == "":
		return errors.New("product name is required")
	case o.FullName == "":
		return errors.New("fullname is required")
	case o.Phone == "":
		return errors.New("phone is required")
	case o.Address == "":
		return errors.New("address is required")
	case o.Quantity <= 0:
		return errors.New("quantity must be positive")
	case o.Price <= 0:
		return errors.New("price must be positive")
	}
	return nil
}

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTrackingNumber returns a 10 character opaque token usable to look an
// order up without authentication.
func NewTrackingNumber() string {
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		// rand.Read on supported platforms does not fail; keep the
		// signature simple for callers
		panic(err)
	}
	for i := range b {
		b[i] = trackingAlphabet[int(b[i])%len(trackingAlphabet)]
	}
	return string(b)
}
