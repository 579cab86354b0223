package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

const confirmationTTL = time.Hour

// ConfirmationCache stores confirmation results keyed by checkout session
// id so replayed confirmations skip the gateway round trip.
// Key format: confirm:<session_id>
type ConfirmationCache struct {
	client *redis.Client
}

// NewConfirmationCache creates a ConfirmationCache wrapping the given Redis client.
func NewConfirmationCache(client *redis.Client) *ConfirmationCache {
	return &ConfirmationCache{client: client}
}

type cachedConfirmation struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
}

// Get returns the cached result for a session id, or (nil, nil) on a miss.
func (c *ConfirmationCache) Get(ctx context.Context, sessionID string) (*ports.ConfirmResult, error) {
	raw, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("confirmation cache get: %w", err)
	}

	var cached cachedConfirmation
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("confirmation cache decode: %w", err)
	}

	return &ports.ConfirmResult{
		TransactionID: cached.TransactionID,
		OrderID:       cached.OrderID,
	}, nil
}

// Put records a confirmation result (expires after confirmationTTL).
func (c *ConfirmationCache) Put(ctx context.Context, sessionID string, res ports.ConfirmResult) error {
	raw, err := json.Marshal(cachedConfirmation{
		TransactionID: res.TransactionID,
		OrderID:       res.OrderID,
	})
	if err != nil {
		return fmt.Errorf("confirmation cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(sessionID), raw, confirmationTTL).Err()
}

func (c *ConfirmationCache) key(sessionID string) string {
	return "confirm:" + sessionID
}
