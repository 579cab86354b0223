package ports

import (
	"context"
	"time"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for users, keyed by email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) (string, error)
	// TouchLastLogin updates only the last_loggedIn timestamp.
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
	UpdateRole(ctx context.Context, email, role string) error
	// ListOthers returns every user except the one with the given email.
	ListOthers(ctx context.Context, email string) ([]domain.User, error)
}

// VendorRequestRepository manages pending vendor-role applications.
type VendorRequestRepository interface {
	// Insert stores a pending request; a request already pending for the
	// same email is reported as domain.ErrDuplicateVendorRequest.
	Insert(ctx context.Context, r *domain.VendorRequest) (string, error)
	List(ctx context.Context) ([]domain.VendorRequest, error)
	DeleteByEmail(ctx context.Context, email string) error
}
