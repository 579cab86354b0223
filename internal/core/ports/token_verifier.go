package ports

import "context"

// TokenVerifier validates a bearer credential and yields the verified
// email address it was issued for. Implementations wrap an external
// identity provider; failures map to domain.ErrUnauthorized.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (email string, err error)
}
