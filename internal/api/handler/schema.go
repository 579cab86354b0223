package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// insertResponse reports the id of a newly inserted record.
type insertResponse struct {
	InsertedID string `json:"insertedId"`
}

// --- Tickets ---

type createTicketRequest struct {
	Name        string  `json:"name"         validate:"required"`
	Category    string  `json:"category"     validate:"required"`
	Price       float64 `json:"price"        validate:"required,gt=0"`
	Quantity    int64   `json:"quantity"     validate:"gte=0"`
	Image       string  `json:"image"`
	VendorID    string  `json:"vendorId"`
	VendorEmail string  `json:"vendorEmail"  validate:"required,email"`
}

// --- Checkout / payment ---

type createCheckoutSessionRequest struct {
	TicketID    string  `json:"ticketId"    validate:"required"`
	Name        string  `json:"name"        validate:"required"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Quantity    int64   `json:"quantity"    validate:"required,gt=0"`
	Customer    struct {
		Email string `json:"email" validate:"required,email"`
	} `json:"customer" validate:"required"`
}

type checkoutSessionResponse struct {
	URL string `json:"url"`
}

type paymentSuccessRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type paymentSuccessResponse struct {
	TransactionID string `json:"transactionId"`
	OrderID       string `json:"orderId"`
}

// --- Users ---

type syncUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type syncUserResponse struct {
	InsertedID string `json:"insertedId,omitempty"`
	Created    bool   `json:"created"`
}

type roleResponse struct {
	Role string `json:"role"`
}

type updateRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=customer vendor admin"`
}
