package domain

import (
	"errors"
	"time"
)

// ErrDuplicateVendorRequest is returned when a vendor request is already
// pending for the same email.
var ErrDuplicateVendorRequest = errors.New("vendor request already pending")

// VendorRequest is a customer's pending application for the vendor role.
// It is purely advisory: deleted on admin approval, never granting a role
// by itself.
type VendorRequest struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	RequestedAt time.Time `json:"requested_at"`
}
