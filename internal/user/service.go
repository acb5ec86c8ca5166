package user

import "golang.org/x/crypto/bcrypt"

// ServiceInterface lets other packages depend on user operations without
// pulling in the concrete service.
type ServiceInterface interface {
	GetByID(id int) (User, error)
	Register(user User) (User, error)
	Authenticate(email, password string) (User, error)
	UpdateProfile(id int, update User) (User, error)
	ListUsers(requester Role) ([]User, error)
	GetUser(requester Role, id int) (User, error)
	UpdateUser(requester Role, id int, update User) (User, error)
	DeleteUser(requester Role, id int) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u.Password = string(hashed)
	// registration never grants admin
	u.Role = RoleUser
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// UpdateProfile applies the caller's own edits. Role changes are stripped
// here; only the admin path may touch them.
func (s *Service) UpdateProfile(id int, update User) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}

	if update.Email != "" {
		existing.Email = update.Email
	}
	if update.FullName != "" {
		existing.FullName = update.FullName
	}
	if update.Phone != "" {
		existing.Phone = update.Phone
	}
	if update.UpdatedAt != "" {
		existing.UpdatedAt = update.UpdatedAt
	}

	return s.repo.Update(id, existing)
}

// Admin-scoped operations. Authorization lives here, nowhere else, so the
// handler and repository never have to agree on who may do what.

func (s *Service) ListUsers(requester Role) ([]User, error) {
	if requester != RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.List(), nil
}

func (s *Service) GetUser(requester Role, id int) (User, error) {
	if requester != RoleAdmin {
		return User{}, ErrForbidden
	}
	return s.repo.GetByID(id)
}

func (s *Service) UpdateUser(requester Role, id int, update User) (User, error) {
	if requester != RoleAdmin {
		return User{}, ErrForbidden
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}

	if update.Email != "" {
		existing.Email = update.Email
	}
	if update.FullName != "" {
		existing.FullName = update.FullName
	}
	if update.Phone != "" {
		existing.Phone = update.Phone
	}
	if update.Role != "" {
		existing.Role = update.Role
	}
	if update.UpdatedAt != "" {
		existing.UpdatedAt = update.UpdatedAt
	}

	return s.repo.Update(id, existing)
}

func (s *Service) DeleteUser(requester Role, id int) error {
	if requester != RoleAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}
