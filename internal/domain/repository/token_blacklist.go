package repository

import (
	"context"
	"time"
)

// TokenBlacklist is the revocation set consulted on every authenticated
// request. Revoking an already-revoked token is a no-op. Entries expire
// with the token they revoke so the set stays bounded.
//
// Implementations must be safe for concurrent use; the set is shared by
// every request a service instance handles.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
