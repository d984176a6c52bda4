package store

import (
	"context"
	"fmt"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
)

// CountLoader is the slice of the durable store the fast path needs:
// reading authoritative counts to lazily seed missing counters.
type CountLoader interface {
	ItemCount(ctx context.Context, itemID string) (int64, error)
	ItemCounts(ctx context.Context, itemIDs []string) (map[string]int64, error)
}

// CounterLikeStore is the fast-path ILikeStore implementation: counters and
// membership live in the counter store, lazily initialized from the durable
// count column on first access.
type CounterLikeStore struct {
	counter contract.ICounterStore
	loader  CountLoader
}

// NewCounterLikeStore builds the fast-path store.
func NewCounterLikeStore(counter contract.ICounterStore, loader CountLoader) *CounterLikeStore {
	return &CounterLikeStore{counter: counter, loader: loader}
}

// Toggle flips like state in the counter store, seeding the counter from
// the durable count column when it does not exist yet.
func (s *CounterLikeStore) Toggle(ctx context.Context, itemID string, ident entity.Identity) (*entity.ToggleOutcome, error) {
	if err := s.ensureCounter(ctx, itemID); err != nil {
		return nil, err
	}
	liked, newCount, err := s.counter.Toggle(ctx, itemID, ident)
	if err != nil {
		return nil, err
	}
	return &entity.ToggleOutcome{IsLiked: liked, NewCount: newCount}, nil
}

// Counts batch-reads counters, backfilling missing ones from the durable
// store. The backfill uses InitCount so a toggle racing this read wins.
func (s *CounterLikeStore) Counts(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	found, missing, err := s.counter.Counts(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return found, nil
	}

	durable, err := s.loader.ItemCounts(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to backfill counts: %w", err)
	}
	for _, id := range missing {
		count := durable[id]
		found[id] = count
		if err := s.counter.InitCount(ctx, id, count); err != nil {
			return nil, err
		}
	}
	return found, nil
}

// LikedStatuses batch-checks membership for the identity.
func (s *CounterLikeStore) LikedStatuses(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	return s.counter.Statuses(ctx, itemIDs, ident)
}

func (s *CounterLikeStore) ensureCounter(ctx context.Context, itemID string) error {
	_, exists, err := s.counter.Count(ctx, itemID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	count, err := s.loader.ItemCount(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to load durable count: %w", err)
	}
	return s.counter.InitCount(ctx, itemID, count)
}

// Ensure CounterLikeStore implements the contract.
var _ contract.ILikeStore = (*CounterLikeStore)(nil)
