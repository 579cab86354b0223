package ports

import (
	"context"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

// CreateTicketInput carries the fields a vendor submits when listing a ticket.
type CreateTicketInput struct {
	Name        string
	Category    string
	Price       float64
	Quantity    int64
	Image       string
	VendorID    string
	VendorEmail string
}

// TicketService defines use-case operations for tickets.
type TicketService interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, in CreateTicketInput) (string, error)
	// Inventory lists the tickets owned by the given vendor email.
	Inventory(ctx context.Context, vendorEmail string) ([]domain.Ticket, error)
}

// OrderQueryService exposes read access to orders for customers and vendors.
type OrderQueryService interface {
	OrdersForCustomer(ctx context.Context, email string) ([]domain.Order, error)
	OrdersForVendor(ctx context.Context, email string) ([]domain.Order, error)
}
