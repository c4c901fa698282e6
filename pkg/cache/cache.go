package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BalanceCache caches the coin balance column per user so that read-heavy
// balance endpoints do not hit the users table on every request. Entries are
// invalidated on every balance mutation; a miss falls through to the store.
type BalanceCache interface {
	// Get returns the cached balance for the user and whether it was present.
	Get(ctx context.Context, userID uuid.UUID) (int, bool, error)
	// Set stores the balance for the user with the given TTL.
	Set(ctx context.Context, userID uuid.UUID, coins int, ttl time.Duration) error
	// Invalidate drops the cached balance for the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
