package ports

import "context"

// CreateSessionInput is the cart description submitted by the client.
// Price is the unit price in decimal currency units; the service converts
// it to integral cents before it reaches the gateway.
type CreateSessionInput struct {
	TicketID      string
	Name          string
	Image         string
	Description   string
	Price         float64
	Quantity      int64
	CustomerEmail string
}

// ConfirmResult is the outcome of confirming a checkout session.
// AlreadyExisted is true when the session had been materialized before
// (replayed confirmation or lost race to a concurrent one).
type ConfirmResult struct {
	TransactionID  string
	OrderID        string
	AlreadyExisted bool
}

// CheckoutService creates gateway sessions and materializes completed ones
// into orders.
type CheckoutService interface {
	// CreateSession opens a checkout session and returns its redirect URL.
	CreateSession(ctx context.Context, in CreateSessionInput) (string, error)
	// Confirm turns a completed session into at most one order, decrementing
	// the ticket quantity exactly once. An incomplete session, or a complete
	// one whose ticket vanished with no prior order recorded, yields
	// domain.ErrSessionUnprocessable.
	Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error)
}
