// Package redisstore backs the token blacklist with Redis so that every
// service instance behind a load balancer sees the same revocations and a
// restart does not silently un-revoke tokens.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neurocare/neurocare-api/internal/domain/repository"
)

func revokedKey(token string) string {
	return "session:revoked:" + token
}

type Blacklist struct {
	rdb *redis.Client
}

func NewBlacklist(rdb *redis.Client) *Blacklist {
	return &Blacklist{rdb: rdb}
}

func (b *Blacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	// SET is naturally idempotent; re-revoking just refreshes the TTL.
	return b.rdb.Set(ctx, revokedKey(token), "1", ttl).Err()
}

func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.rdb.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ repository.TokenBlacklist = (*Blacklist)(nil)
