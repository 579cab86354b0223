package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// ErrDuplicateOrder is returned when an order already exists for the same
// transaction id. The confirmation flow treats it as "already materialized"
// and looks up the winner instead of inserting.
var ErrDuplicateOrder = errors.New("order already exists for transaction")

// ErrSessionUnprocessable covers a checkout session that cannot be turned
// into an order: the session is not complete, or the referenced ticket no
// longer exists and no prior order was recorded.
var ErrSessionUnprocessable = errors.New("checkout session cannot be processed")

const OrderStatusPending = "pending"

// Order records exactly one completed purchase, linked to a single payment
// transaction. Orders are never updated or deleted.
type Order struct {
	ID            string    `json:"id"`
	TicketID      string    `json:"ticketId"`
	TransactionID string    `json:"transactionId"`
	Customer      string    `json:"customer"`
	Status        string    `json:"status"`
	Vendor        Vendor    `json:"vendor"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Quantity      int64     `json:"quantity"`
	Price         float64   `json:"price"`
	Image         string    `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
}
