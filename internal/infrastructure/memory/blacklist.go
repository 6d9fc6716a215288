// Package memory holds process-local implementations of the domain's
// storage interfaces. The blacklist here is the single-instance default;
// restarting the process forgets every revocation, and multiple instances
// behind a load balancer do not see each other's logouts. Deployments that
// need either property use the redis-backed implementation instead.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/neurocare/neurocare-api/internal/domain/repository"
)

const sweepInterval = 5 * time.Minute

// Blacklist is a concurrent-safe, lifetime-scoped revocation set. Entries
// carry the expiry of the token they revoke; a janitor evicts them once the
// token could no longer be accepted anyway, keeping the set bounded.
type Blacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	done    chan struct{}
	once    sync.Once
}

func NewBlacklist() *Blacklist {
	b := &Blacklist{
		revoked: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go b.janitor()
	return b
}

func (b *Blacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp := time.Now().Add(ttl)
	// Re-revoking keeps the later expiry so a no-op stays a no-op.
	if cur, ok := b.revoked[token]; ok && cur.After(exp) {
		return nil
	}
	b.revoked[token] = exp
	return nil
}

func (b *Blacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	exp, ok := b.revoked[token]
	b.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		b.mu.Lock()
		delete(b.revoked, token)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// Len reports the current number of revoked entries.
func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.revoked)
}

// Close stops the janitor. The set remains usable afterwards but no longer
// self-evicts.
func (b *Blacklist) Close() {
	b.once.Do(func() { close(b.done) })
}

func (b *Blacklist) janitor() {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case now := <-t.C:
			b.mu.Lock()
			for tok, exp := range b.revoked {
				if now.After(exp) {
					delete(b.revoked, tok)
				}
			}
			b.mu.Unlock()
		}
	}
}

var _ repository.TokenBlacklist = (*Blacklist)(nil)
