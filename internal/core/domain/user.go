package domain

import "time"

// Role is the backend's account role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the roles the backend knows.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// Permission names carried in a profile's permissions map.
const (
	PermManageUsers    = "can_manage_users"
	PermManageProducts = "can_manage_products"
	PermViewAnalytics  = "can_view_analytics"
)

// Permissions is the optional capability map attached to a profile.
// Missing keys read as false.
type Permissions map[string]bool

func (p Permissions) CanManageUsers() bool    { return p[PermManageUsers] }
func (p Permissions) CanManageProducts() bool { return p[PermManageProducts] }
func (p Permissions) CanViewAnalytics() bool  { return p[PermViewAnalytics] }

// UserProfile is the identity returned by login and verify.
type UserProfile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name"`
	Role        Role        `json:"role"`
	IsActive    bool        `json:"is_active"`
	Permissions Permissions `json:"permissions,omitempty"`
}

// IsAdmin reports whether the profile may use the console.
func (u *UserProfile) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// User is an account row managed from the users screen.
type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// UserDraft is the users form. Password is never pre-filled.
type UserDraft struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}
