package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// TicketService implements ticket browsing and vendor inventory management.
type TicketService struct {
	repo ports.TicketRepository
	log  zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, log zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, log: log}
}

func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.repo.List(ctx)
}

func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.repo.FindByID(ctx, id)
}

// Create lists a new ticket for the vendor identified in the input.
func (s *TicketService) Create(ctx context.Context, in ports.CreateTicketInput) (string, error) {
	ticket := &domain.Ticket{
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price,
		Quantity: in.Quantity,
		Image:    in.Image,
		Vendor: domain.Vendor{
			ID:    in.VendorID,
			Email: in.VendorEmail,
		},
	}

	id, err := s.repo.Insert(ctx, ticket)
	if err != nil {
		s.log.Error().Err(err).Str("vendor", in.VendorEmail).Msg("failed to insert ticket")
		return "", err
	}

	s.log.Info().Str("ticket_id", id).Str("vendor", in.VendorEmail).Msg("ticket listed")
	return id, nil
}

func (s *TicketService) Inventory(ctx context.Context, vendorEmail string) ([]domain.Ticket, error) {
	return s.repo.FindByVendorEmail(ctx, vendorEmail)
}
