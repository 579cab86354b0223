package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/easyjatra/marketplace-api/internal/api/metrics"
	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// ConfirmationCache abstracts the replay cache (Redis). A hit returns the
// result of a previous confirmation for the same session id; a miss is
// (nil, nil).
type ConfirmationCache interface {
	Get(ctx context.Context, sessionID string) (*ports.ConfirmResult, error)
	Put(ctx context.Context, sessionID string, res ports.ConfirmResult) error
}

// CheckoutService implements session creation and order materialization.
type CheckoutService struct {
	gateway      ports.CheckoutGateway
	tickets      ports.TicketRepository
	orders       ports.OrderRepository
	cache        ConfirmationCache
	clientOrigin string
	log          zerolog.Logger
}

func NewCheckoutService(
	gateway ports.CheckoutGateway,
	tickets ports.TicketRepository,
	orders ports.OrderRepository,
	cache ConfirmationCache,
	clientOrigin string,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		gateway:      gateway,
		tickets:      tickets,
		orders:       orders,
		cache:        cache,
		clientOrigin: clientOrigin,
		log:          log,
	}
}

// CreateSession opens a gateway checkout session for the submitted cart and
// returns the redirect URL. No local state is written.
func (s *CheckoutService) CreateSession(ctx context.Context, in ports.CreateSessionInput) (string, error) {
	session, err := s.gateway.CreateSession(ctx, ports.GatewaySessionInput{
		Name:          in.Name,
		Image:         in.Image,
		Description:   in.Description,
		UnitAmount:    PriceToCents(in.Price),
		Quantity:      in.Quantity,
		CustomerEmail: in.CustomerEmail,
		TicketID:      in.TicketID,
		SuccessURL:    s.clientOrigin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.clientOrigin + "/ticket/" + in.TicketID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("ticket_id", in.TicketID).Msg("failed to create checkout session")
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	metrics.CheckoutSessionsCreatedTotal.Inc()
	s.log.Info().
		Str("session_id", session.ID).
		Str("ticket_id", in.TicketID).
		Str("customer", in.CustomerEmail).
		Msg("checkout session created")

	return session.URL, nil
}

// Confirm materializes a completed checkout session into at most one order.
//
// The insert is guarded by a unique index on transactionId: two concurrent
// confirmations for the same session both reach Insert, but only one wins;
// the loser observes ErrDuplicateOrder, fetches the winner's order, and
// skips the quantity decrement. The decrement therefore runs exactly once
// per transaction.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string) (*ports.ConfirmResult, error) {
	// Replay fast path. Cache errors degrade to a miss.
	if cached, err := s.cache.Get(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("confirmation cache lookup failed, continuing")
	} else if cached != nil {
		metrics.ConfirmationCacheTotal.WithLabelValues("hit").Inc()
		cached.AlreadyExisted = true
		return cached, nil
	}
	metrics.ConfirmationCacheTotal.WithLabelValues("miss").Inc()

	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("confirm session: %w", err)
	}

	// An order recorded for this payment id settles the request regardless
	// of the session's current state. A session with no payment identifier
	// yet cannot have one.
	if session.TransactionID != "" {
		existing, err := s.orders.FindByTransactionID(ctx, session.TransactionID)
		if err == nil {
			metrics.OrdersMaterializedTotal.WithLabelValues("replayed").Inc()
			return s.cacheAndReturn(ctx, sessionID, ports.ConfirmResult{
				TransactionID:  session.TransactionID,
				OrderID:        existing.ID,
				AlreadyExisted: true,
			}), nil
		}
		if !errors.Is(err, domain.ErrOrderNotFound) {
			return nil, fmt.Errorf("confirm session: lookup order: %w", err)
		}
	}

	if session.Status != ports.SessionStatusComplete {
		metrics.OrdersMaterializedTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("confirm session %s: status %q: %w", sessionID, session.Status, domain.ErrSessionUnprocessable)
	}

	ticket, err := s.tickets.FindByID(ctx, session.TicketID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			metrics.OrdersMaterializedTotal.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("confirm session %s: ticket %s gone: %w", sessionID, session.TicketID, domain.ErrSessionUnprocessable)
		}
		return nil, fmt.Errorf("confirm session: lookup ticket: %w", err)
	}

	order := &domain.Order{
		TicketID:      session.TicketID,
		TransactionID: session.TransactionID,
		Customer:      session.CustomerEmail,
		Status:        domain.OrderStatusPending,
		Vendor:        ticket.Vendor,
		Name:          ticket.Name,
		Category:      ticket.Category,
		Quantity:      1,
		Price:         CentsToPrice(session.AmountTotal),
		Image:         ticket.Image,
		CreatedAt:     time.Now().UTC(),
	}

	orderID, err := s.orders.Insert(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateOrder) {
			// Lost the race to a concurrent confirmation; hand back its order.
			winner, findErr := s.orders.FindByTransactionID(ctx, session.TransactionID)
			if findErr != nil {
				return nil, fmt.Errorf("confirm session: duplicate insert, lookup winner: %w", findErr)
			}
			metrics.OrdersMaterializedTotal.WithLabelValues("replayed").Inc()
			return s.cacheAndReturn(ctx, sessionID, ports.ConfirmResult{
				TransactionID:  session.TransactionID,
				OrderID:        winner.ID,
				AlreadyExisted: true,
			}), nil
		}
		return nil, fmt.Errorf("confirm session: insert order: %w", err)
	}

	if err := s.tickets.DecrementQuantity(ctx, session.TicketID); err != nil {
		// The order is already persisted; surface the inconsistency loudly
		// but do not fail the confirmation.
		s.log.Error().Err(err).
			Str("order_id", orderID).
			Str("ticket_id", session.TicketID).
			Msg("order inserted but quantity decrement failed")
	}

	metrics.OrdersMaterializedTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Str("order_id", orderID).
		Str("transaction_id", session.TransactionID).
		Str("ticket_id", session.TicketID).
		Str("customer", session.CustomerEmail).
		Msg("order materialized")

	return s.cacheAndReturn(ctx, sessionID, ports.ConfirmResult{
		TransactionID: session.TransactionID,
		OrderID:       orderID,
	}), nil
}

func (s *CheckoutService) cacheAndReturn(ctx context.Context, sessionID string, res ports.ConfirmResult) *ports.ConfirmResult {
	if err := s.cache.Put(ctx, sessionID, res); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to cache confirmation result")
	}
	return &res
}

// OrdersForCustomer lists the orders placed by a customer email.
func (s *CheckoutService) OrdersForCustomer(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orders.FindByCustomer(ctx, email)
}

// OrdersForVendor lists the orders placed against a vendor's tickets.
func (s *CheckoutService) OrdersForVendor(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orders.FindByVendorEmail(ctx, email)
}

// PriceToCents converts a decimal unit price to the integral smallest
// currency unit the gateway expects. decimal arithmetic keeps the result
// exact for prices like 19.95 where float multiplication drifts.
func PriceToCents(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CentsToPrice converts an integral cents amount back to decimal units.
func CentsToPrice(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return f
}
