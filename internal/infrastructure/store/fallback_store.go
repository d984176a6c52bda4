package store

import (
	"context"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
	"github.com/mihretgbr/applaud/internal/infrastructure/metrics"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// FallbackStore composes the fast-path store with the durable one: every
// operation tries the primary and falls through to the durable store on any
// error, or immediately when no primary is configured. Callers cannot tell
// which path served them.
type FallbackStore struct {
	primary contract.ILikeStore // nil when the counter store is unconfigured
	durable contract.ILikeStore
	logger  usecasecontract.IAppLogger
}

// NewFallbackStore builds the decorator. primary may be nil.
func NewFallbackStore(primary, durable contract.ILikeStore, logger usecasecontract.IAppLogger) *FallbackStore {
	return &FallbackStore{primary: primary, durable: durable, logger: logger}
}

// Toggle flips like state, preferring the fast path.
func (s *FallbackStore) Toggle(ctx context.Context, itemID string, ident entity.Identity) (*entity.ToggleOutcome, error) {
	if s.primary != nil {
		outcome, err := s.primary.Toggle(ctx, itemID, ident)
		if err == nil {
			return outcome, nil
		}
		s.fellBack("toggle", err)
	}
	return s.durable.Toggle(ctx, itemID, ident)
}

// Counts batch-reads like counts, preferring the fast path.
func (s *FallbackStore) Counts(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	if s.primary != nil {
		counts, err := s.primary.Counts(ctx, itemIDs)
		if err == nil {
			return counts, nil
		}
		s.fellBack("counts", err)
	}
	return s.durable.Counts(ctx, itemIDs)
}

// LikedStatuses batch-checks membership, preferring the fast path.
func (s *FallbackStore) LikedStatuses(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	if s.primary != nil {
		statuses, err := s.primary.LikedStatuses(ctx, itemIDs, ident)
		if err == nil {
			return statuses, nil
		}
		s.fellBack("statuses", err)
	}
	return s.durable.LikedStatuses(ctx, itemIDs, ident)
}

func (s *FallbackStore) fellBack(op string, err error) {
	metrics.FallbacksTotal.Inc()
	s.logger.Warnf("counter store %s failed, falling back to durable store: %v", op, err)
}

// Ensure FallbackStore implements the contract.
var _ contract.ILikeStore = (*FallbackStore)(nil)
