package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Role is the coarse access tier of an identity.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVeterinarian Role = "veterinarian"
	RoleReceptionist Role = "receptionist"
	RoleClient       Role = "client"
)

// Roles returns the closed set of roles in declaration order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleVeterinarian, RoleReceptionist, RoleClient}
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVeterinarian, RoleReceptionist, RoleClient:
		return true
	}
	return false
}

// ParseRole normalises s and returns the matching Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Identity is the role-tagged profile of an authenticated user. Its JSON form
// is also the persisted representation of a session.
type Identity struct {
	ID       string `json:"id"                 validate:"required"`
	Name     string `json:"name"               validate:"required"`
	Email    string `json:"email"              validate:"required"`
	Role     Role   `json:"role"               validate:"required,oneof=admin veterinarian receptionist client"`
	ImageURL string `json:"imageUrl,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the required fields and the role.
func (i *Identity) Validate() error {
	if i == nil {
		return ErrMalformedIdentity
	}
	if err := validate.Struct(i); err != nil {
		return &ValidationError{Err: ErrMalformedIdentity, Cause: err}
	}
	return nil
}

// Clone returns a copy that callers may keep after the source changes.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Credentials is what a caller submits to log in.
type Credentials struct {
	Email    string
	Password string
}

// Session is a point-in-time view of who is logged in.
// A nil Identity means unauthenticated.
type Session struct {
	Identity *Identity `json:"user,omitempty"`
	Loading  bool      `json:"loading"`
}

// Authenticated reports whether an identity is present.
func (s Session) Authenticated() bool {
	return s.Identity != nil
}
