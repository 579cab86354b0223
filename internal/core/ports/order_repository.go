package ports

import (
	"context"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
//
// Insert must be guarded by a uniqueness constraint on transactionId and
// report a collision as domain.ErrDuplicateOrder, so the confirmation flow
// can insert first and fall back to a lookup instead of check-then-act.
type OrderRepository interface {
	Insert(ctx context.Context, o *domain.Order) (string, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error)
	FindByCustomer(ctx context.Context, email string) ([]domain.Order, error)
	FindByVendorEmail(ctx context.Context, email string) ([]domain.Order, error)
}
