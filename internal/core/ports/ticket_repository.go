package ports

import (
	"context"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

// TicketRepository defines persistence operations for tickets.
type TicketRepository interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	// FindByID retrieves a ticket by its hex object id. A malformed id is
	// reported as domain.ErrTicketNotFound, same as a missing document.
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	FindByVendorEmail(ctx context.Context, email string) ([]domain.Ticket, error)
	Insert(ctx context.Context, t *domain.Ticket) (string, error)
	// DecrementQuantity subtracts one from the ticket's remaining quantity.
	// No floor is applied; a sold-out ticket can go negative (documented
	// source behavior).
	DecrementQuantity(ctx context.Context, id string) error
}
