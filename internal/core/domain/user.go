package domain

import (
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether s is one of the assignable roles.
func ValidRole(s string) bool {
	return s == RoleCustomer || s == RoleVendor || s == RoleAdmin
}

// User models a marketplace account, keyed by verified email. The role
// defaults to customer on first login sync and only changes through an
// admin action.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	Image        string    `json:"image,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoggedIn time.Time `json:"last_loggedIn"`
}
