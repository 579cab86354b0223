package domain

import "errors"

var ErrTicketNotFound = errors.New("ticket not found")

// Vendor identifies the owner of a ticket, embedded in both tickets and
// the orders placed against them.
type Vendor struct {
	ID    string `json:"id" bson:"id"`
	Email string `json:"email" bson:"email"`
}

// Ticket is a purchasable inventory item. Quantity is the remaining count
// and is decremented by the order-materialization flow; it is deliberately
// not clamped at zero.
type Ticket struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Vendor   Vendor  `json:"vendor"`
	Image    string  `json:"image"`
}
