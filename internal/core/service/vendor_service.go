package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// VendorService manages vendor-onboarding requests.
type VendorService struct {
	requests ports.VendorRequestRepository
	log      zerolog.Logger
}

func NewVendorService(requests ports.VendorRequestRepository, log zerolog.Logger) *VendorService {
	return &VendorService{requests: requests, log: log}
}

// Request records a pending vendor application for the email. A request
// already pending yields domain.ErrDuplicateVendorRequest; after an admin
// approval removes the record, a fresh request succeeds again.
func (s *VendorService) Request(ctx context.Context, email string) (string, error) {
	id, err := s.requests.Insert(ctx, &domain.VendorRequest{
		Email:       email,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	s.log.Info().Str("email", email).Msg("vendor request submitted")
	return id, nil
}

func (s *VendorService) ListRequests(ctx context.Context) ([]domain.VendorRequest, error) {
	return s.requests.List(ctx)
}
