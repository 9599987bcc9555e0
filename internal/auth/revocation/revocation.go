// Package revocation keeps the token revocation list consulted by the auth
// middleware. Logout adds the token's jti until the token would have expired
// anyway, so the list never grows beyond the set of live tokens.
package revocation

import (
	"context"
	"fmt"
	"time"

	"hrcc/pkg/platform/sentinel"
)

// Clock returns the current time.
type Clock func() time.Time

// TokenRevocationList is satisfied by the memory and Redis implementations.
type TokenRevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Checker adapts a TokenRevocationList to the middleware's checker interface.
type Checker struct {
	trl TokenRevocationList
}

func NewChecker(trl TokenRevocationList) *Checker {
	return &Checker{trl: trl}
}

func (c *Checker) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return c.trl.IsRevoked(ctx, jti)
}

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
