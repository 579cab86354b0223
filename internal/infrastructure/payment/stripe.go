// Package payment adapts Stripe Checkout to the ports.CheckoutGateway
// interface. The ticket id and buyer email travel as session metadata so
// confirmation can recover them without a separate lookup.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

const (
	metaTicketID = "ticketId"
	metaCustomer = "customer"
)

type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a gateway bound to the given secret key. The
// client is safe for concurrent use and carries no other process state.
func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateSession(ctx context.Context, in ports.GatewaySessionInput) (*ports.GatewaySession, error) {
	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(in.Name),
	}
	if in.Description != "" {
		product.Description = stripe.String(in.Description)
	}
	if in.Image != "" {
		product.Images = stripe.StringSlice([]string{in.Image})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(in.CustomerEmail),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount:  stripe.Int64(in.UnitAmount),
					ProductData: product,
				},
				Quantity: stripe.Int64(in.Quantity),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(metaTicketID, in.TicketID)
	params.AddMetadata(metaCustomer, in.CustomerEmail)

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}

	return &ports.GatewaySession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*ports.GatewaySessionState, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get session: %w", err)
	}

	state := &ports.GatewaySessionState{
		ID:            s.ID,
		Status:        string(s.Status),
		TicketID:      s.Metadata[metaTicketID],
		CustomerEmail: s.Metadata[metaCustomer],
		AmountTotal:   s.AmountTotal,
	}
	if s.PaymentIntent != nil {
		state.TransactionID = s.PaymentIntent.ID
	}
	return state, nil
}
