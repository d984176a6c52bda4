package contract

import (
	"context"
	"errors"

	"github.com/mihretgbr/applaud/internal/domain/entity"
)

// ErrCounterUnavailable is returned when no counter store is configured.
var ErrCounterUnavailable = errors.New("counter store not configured")

// ICounterStore is the low-latency counter and membership store. It is the
// authoritative read/write path for like counts whenever it is reachable.
// All mutating operations must be atomic per item; correctness under
// concurrent toggles is delegated to the store, not to application locks.
type ICounterStore interface {
	Ping(ctx context.Context) error

	// Count returns the counter value and whether the counter exists.
	Count(ctx context.Context, itemID string) (int64, bool, error)

	// InitCount seeds a counter only if it is absent, so a concurrent
	// toggle's value is never clobbered by a lazy initialization.
	InitCount(ctx context.Context, itemID string, count int64) error

	// SetCount overwrites the counter unconditionally (reconciliation).
	SetCount(ctx context.Context, itemID string, count int64) error

	// Toggle atomically flips like state for (item, identity): membership
	// check, increment/decrement clamped at zero, and both set updates in
	// one step. Returns the resulting liked flag and count.
	Toggle(ctx context.Context, itemID string, ident entity.Identity) (bool, int64, error)

	// Counts batch-reads counters, returning the values found and the ids
	// whose counters are absent.
	Counts(ctx context.Context, itemIDs []string) (map[string]int64, []string, error)

	// Statuses batch-checks liked-by membership for one identity.
	Statuses(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error)

	// AddMembership inserts into the liked-by set and the identity's
	// reverse set without touching the counter (reconciliation rebuild).
	AddMembership(ctx context.Context, itemID string, ident entity.Identity) error

	// ReplaceMembership re-keys a membership from one identity to another
	// without touching the counter (identity migration).
	ReplaceMembership(ctx context.Context, itemID string, from, to entity.Identity) error

	// PurgeMembership deletes every liked-by set and reverse set so a full
	// reconciliation can rebuild them from the durable store.
	PurgeMembership(ctx context.Context) error
}
