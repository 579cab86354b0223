package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

func TestTicketCreate_AttachesVendor(t *testing.T) {
	repo := newStubTicketRepo()
	svc := NewTicketService(repo, zerolog.Nop())

	id, err := svc.Create(context.Background(), ports.CreateTicketInput{
		Name:        "Dhaka to Sylhet",
		Category:    "bus",
		Price:       19.95,
		Quantity:    40,
		VendorID:    "v1",
		VendorEmail: "vendor@example.com",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("ticket not persisted: %v", err)
	}
	if stored.Vendor.Email != "vendor@example.com" || stored.Vendor.ID != "v1" {
		t.Fatalf("vendor not attached: %+v", stored.Vendor)
	}
	if stored.Quantity != 40 {
		t.Fatalf("unexpected quantity: %d", stored.Quantity)
	}
}

func TestTicketGet_Unknown(t *testing.T) {
	svc := NewTicketService(newStubTicketRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}
