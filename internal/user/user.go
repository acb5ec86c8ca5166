package user

// Role is the coarse access tag attached to every account. Promotion to
// admin happens out-of-band; there is no self-service path.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// IsAdmin reports whether the user may perform admin-scoped operations.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
