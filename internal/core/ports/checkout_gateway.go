package ports

import "context"

// GatewaySessionInput carries everything the payment gateway needs to open
// a checkout session. UnitAmount is in the smallest currency unit (cents).
// TicketID and CustomerEmail travel as opaque session metadata so the
// confirmation flow can recover them without a separate lookup.
type GatewaySessionInput struct {
	Name          string
	Image         string
	Description   string
	UnitAmount    int64
	Quantity      int64
	CustomerEmail string
	TicketID      string
	SuccessURL    string
	CancelURL     string
}

// GatewaySession is a freshly created checkout session.
type GatewaySession struct {
	ID  string
	URL string
}

// SessionStatusComplete is the gateway status of a paid session.
const SessionStatusComplete = "complete"

// GatewaySessionState is the current state of an existing session as
// reported by the gateway.
type GatewaySessionState struct {
	ID            string
	Status        string
	TransactionID string // payment identifier; empty until payment starts
	TicketID      string // recovered from session metadata
	CustomerEmail string // recovered from session metadata
	AmountTotal   int64  // total charged, in cents
}

// CheckoutGateway abstracts the third-party payment provider.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, in GatewaySessionInput) (*GatewaySession, error)
	GetSession(ctx context.Context, sessionID string) (*GatewaySessionState, error)
}
