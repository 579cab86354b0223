package ports

import (
	"context"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

// SyncLoginInput is the profile pushed by the client after an identity
// provider login.
type SyncLoginInput struct {
	Email string
	Name  string
	Image string
}

// SyncLoginResult reports whether the login sync created a new user or
// refreshed an existing one.
type SyncLoginResult struct {
	Created bool
	UserID  string
}

// UserService defines account and role operations.
type UserService interface {
	// SyncLogin upserts the user by email: first call creates the record
	// with role customer; later calls update only the last-login timestamp.
	SyncLogin(ctx context.Context, in SyncLoginInput) (*SyncLoginResult, error)
	Role(ctx context.Context, email string) (string, error)
	// Authorize returns nil iff a user record exists for email and its role
	// equals required; otherwise domain.ErrForbidden.
	Authorize(ctx context.Context, email, required string) error
	ListOthers(ctx context.Context, email string) ([]domain.User, error)
	// UpdateRole assigns a role and removes any pending vendor request for
	// that email.
	UpdateRole(ctx context.Context, email, role string) error
}

// VendorService manages the vendor-onboarding request lifecycle.
type VendorService interface {
	// Request records a pending vendor application; a duplicate while one
	// is pending yields domain.ErrDuplicateVendorRequest.
	Request(ctx context.Context, email string) (string, error)
	ListRequests(ctx context.Context) ([]domain.VendorRequest, error)
}
