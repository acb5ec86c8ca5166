package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sasyamantra/storefront-backend/internal/user"
)

var (
	ErrTrackingMismatch = errors.New("order id and phone do not match")
	ErrNotEditable      = errors.New("order can no longer be edited")
)

// Service owns all order business rules, including authorization. The
// handler only translates HTTP to calls and errors back to statuses.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the submission and persists it with a generated id,
// tracking number and pending status. The total is always derived from
// price and quantity, never trusted from the client.
func (s *Service) Create(ord Order, userID int) (Order, error) {
	if err := ord.ValidateForCreate(); err != nil {
		return Order{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord.ID = uuid.NewString()
	ord.UserID = userID
	ord.Total = ord.Price * float64(ord.Quantity)
	ord.Status = StatusPending
	ord.TrackingNumber = NewTrackingNumber()
	ord.CreatedAt = now
	ord.UpdatedAt = now
	if ord.PaymentMethod == "" {
		ord.PaymentMethod = "cod"
	}

	return s.repo.Create(ord)
}

// List scopes the filter to what the requester may see: admins see
// everything, everyone else only their own orders. Asking for another
// user's orders without the admin role is refused rather than silently
// narrowed.
func (s *Service) List(requester user.Role, requesterID int, f Filter) ([]Order, error) {
	if requester != user.RoleAdmin {
		if f.UserID != 0 && f.UserID != requesterID {
			return nil, ErrForbidden
		}
		f.UserID = requesterID
	}
	return s.repo.List(f)
}

// Track is the unauthenticated lookup: either a tracking number, or an
// order id paired with the phone it was placed under.
func (s *Service) Track(id, phone, trackingNumber string) (Order, error) {
	if trackingNumber != "" {
		orders, err := s.repo.List(Filter{TrackingNumber: trackingNumber})
		if err != nil {
			return Order{}, err
		}
		if len(orders) == 0 {
			return Order{}, ErrNotFound
		}
		return orders[0], nil
	}

	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if phone == "" || ord.Phone != phone {
		return Order{}, ErrTrackingMismatch
	}
	return ord, nil
}

// Update is a partial edit keyed by Update.ID. Status and tracking
// changes need the admin role; owners may fix shipping details while the
// order is still pending. Writes are last-write-wins, matching the rest
// of the system.
type Update struct {
	ID               string  `json:"id"`
	Status           *string `json:"status,omitempty"`
	TrackingNumber   *string `json:"trackingNumber,omitempty"`
	FullName         *string `json:"fullname,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	AlternateAddress *string `json:"alternateAddress,omitempty"`
	City             *string `json:"city,omitempty"`
	State            *string `json:"state,omitempty"`
	Zip              *string `json:"zip,omitempty"`
	PaymentMethod    *string `json:"paymentMethod,omitempty"`
}

func (u Update) touchesAdminFields() bool {
	return u.Status != nil || u.TrackingNumber != nil
}

func (s *Service) Apply(requester user.Role, requesterID int, upd Update) (Order, error) {
	ord, err := s.repo.GetByID(upd.ID)
	if err != nil {
		return Order{}, err
	}

	isAdmin := requester == user.RoleAdmin
	if upd.touchesAdminFields() && !isAdmin {
		return Order{}, ErrForbidden
	}
	if !isAdmin {
		if ord.UserID != requesterID {
			return Order{}, ErrForbidden
		}
		if ord.Status != StatusPending {
			return Order{}, ErrNotEditable
		}
	}

	if upd.Status != nil {
		next := Status(*upd.Status)
		if !next.Valid() {
			return Order{}, errors.New("unknown status " + *upd.Status)
		}
		// admins may set any valid status, there is no transition check
		ord.Status = next
	}
	if upd.TrackingNumber != nil {
		ord.TrackingNumber = *upd.TrackingNumber
	}
	if upd.FullName != nil {
		ord.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		ord.Phone = *upd.Phone
	}
	if upd.Address != nil {
		ord.Address = *upd.Address
	}
	if upd.AlternateAddress != nil {
		ord.AlternateAddress = *upd.AlternateAddress
	}
	if upd.City != nil {
		ord.City = *upd.City
	}
	if upd.State != nil {
		ord.State = *upd.State
	}
	if upd.Zip != nil {
		ord.Zip = *upd.Zip
	}
	if upd.PaymentMethod != nil {
		ord.PaymentMethod = *upd.PaymentMethod
	}
	ord.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	return s.repo.Update(ord)
}

func (s *Service) Delete(requester user.Role, id string) error {
	if requester != user.RoleAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}

// GetByID returns one order without scoping. Callers that serve it to a
// non-admin must check ownership themselves.
func (s *Service) GetByID(id string) (Order, error) {
	return s.repo.GetByID(id)
}
