package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
)

// CounterStore is the Redis implementation of the fast counter and
// membership store. Per-item atomicity comes from Redis itself: the toggle
// is one Lua script, so concurrent toggles on the same (item, identity)
// pair serialize inside the store with no application locks.
type CounterStore struct {
	rdb *redis.Client
}

// NewCounterStore wraps an explicitly constructed Redis client. The client
// is injected and owned by the caller; there is no package-level handle.
func NewCounterStore(rdb *redis.Client) *CounterStore {
	return &CounterStore{rdb: rdb}
}

func countKey(itemID string) string { return fmt.Sprintf("likes:count:%s", itemID) }
func itemSetKey(itemID string) string { return fmt.Sprintf("likes:item:%s", itemID) }
func identSetKey(ident entity.Identity) string {
	return fmt.Sprintf("likes:ident:%s", ident.Key())
}

// toggleScript flips membership and the counter in one atomic step. The
// decrement clamps at zero so the counter can never go negative even if
// membership and count have drifted.
var toggleScript = redis.NewScript(`
local count_key = KEYS[1]
local item_set = KEYS[2]
local ident_set = KEYS[3]
local ident = ARGV[1]
local item = ARGV[2]
if redis.call('SISMEMBER', item_set, ident) == 1 then
	redis.call('SREM', item_set, ident)
	redis.call('SREM', ident_set, item)
	local current = tonumber(redis.call('GET', count_key) or '0')
	local new_val = math.max(0, current - 1)
	redis.call('SET', count_key, new_val)
	return {0, new_val}
else
	redis.call('SADD', item_set, ident)
	redis.call('SADD', ident_set, item)
	local new_val = redis.call('INCR', count_key)
	return {1, new_val}
end
`)

// Ping checks store health.
func (s *CounterStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Count returns the counter value and whether the counter exists.
func (s *CounterStore) Count(ctx context.Context, itemID string) (int64, bool, error) {
	val, err := s.rdb.Get(ctx, countKey(itemID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read counter: %w", err)
	}
	return val, true, nil
}

// InitCount seeds the counter only when absent so a lazy initialization
// cannot overwrite a concurrent toggle's value.
func (s *CounterStore) InitCount(ctx context.Context, itemID string, count int64) error {
	return s.rdb.SetNX(ctx, countKey(itemID), count, 0).Err()
}

// SetCount overwrites the counter unconditionally. Reconciliation only.
func (s *CounterStore) SetCount(ctx context.Context, itemID string, count int64) error {
	return s.rdb.Set(ctx, countKey(itemID), count, 0).Err()
}

// Toggle atomically flips like state for (item, identity).
func (s *CounterStore) Toggle(ctx context.Context, itemID string, ident entity.Identity) (bool, int64, error) {
	keys := []string{countKey(itemID), itemSetKey(itemID), identSetKey(ident)}
	res, err := toggleScript.Run(ctx, s.rdb, keys, ident.Key(), itemID).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}
	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return false, 0, fmt.Errorf("unexpected toggle script reply: %v", res)
	}
	liked := vals[0].(int64) == 1
	newCount := vals[1].(int64)
	return liked, newCount, nil
}

// Counts batch-reads counters with a pipeline, returning found values and
// the ids whose counters are absent.
func (s *CounterStore) Counts(ctx context.Context, itemIDs []string) (map[string]int64, []string, error) {
	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.StringCmd, len(itemIDs))
	for i, id := range itemIDs {
		cmds[i] = pipe.Get(ctx, countKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, nil, fmt.Errorf("failed to read counters: %w", err)
	}

	found := make(map[string]int64, len(itemIDs))
	var missing []string
	for i, cmd := range cmds {
		val, err := cmd.Int64()
		if err != nil {
			missing = append(missing, itemIDs[i])
			continue
		}
		found[itemIDs[i]] = val
	}
	return found, missing, nil
}

// Statuses batch-checks liked-by membership for one identity.
func (s *CounterStore) Statuses(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.BoolCmd, len(itemIDs))
	for i, id := range itemIDs {
		cmds[i] = pipe.SIsMember(ctx, itemSetKey(id), ident.Key())
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read liked statuses: %w", err)
	}

	statuses := make(map[string]bool, len(itemIDs))
	for i, cmd := range cmds {
		statuses[itemIDs[i]] = cmd.Val()
	}
	return statuses, nil
}

// AddMembership inserts into both sets without touching the counter.
func (s *CounterStore) AddMembership(ctx context.Context, itemID string, ident entity.Identity) error {
	pipe := s.rdb.Pipeline()
	pipe.SAdd(ctx, itemSetKey(itemID), ident.Key())
	pipe.SAdd(ctx, identSetKey(ident), itemID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// ReplaceMembership re-keys a membership from one identity to another.
// The counter is untouched: migration is not a like/unlike event.
func (s *CounterStore) ReplaceMembership(ctx context.Context, itemID string, from, to entity.Identity) error {
	pipe := s.rdb.Pipeline()
	pipe.SRem(ctx, itemSetKey(itemID), from.Key())
	pipe.SAdd(ctx, itemSetKey(itemID), to.Key())
	pipe.SRem(ctx, identSetKey(from), itemID)
	pipe.SAdd(ctx, identSetKey(to), itemID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace membership: %w", err)
	}
	return nil
}

// PurgeMembership deletes every liked-by set and reverse set so a full
// reconciliation can rebuild them from the durable store.
func (s *CounterStore) PurgeMembership(ctx context.Context) error {
	for _, pattern := range []string{"likes:item:*", "likes:ident:*"} {
		iter := s.rdb.Scan(ctx, 0, pattern, 1000).Iterator()
		pipe := s.rdb.Pipeline()
		n := 0
		for iter.Next(ctx) {
			pipe.Del(ctx, iter.Val())
			n++
			if n%200 == 0 {
				if _, err := pipe.Exec(ctx); err != nil {
					return fmt.Errorf("failed to purge membership keys: %w", err)
				}
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to scan membership keys: %w", err)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to purge membership keys: %w", err)
		}
	}
	return nil
}

// Ensure CounterStore implements the contract.
var _ contract.ICounterStore = (*CounterStore)(nil)
