package usecase

import (
	"context"
	"fmt"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/infrastructure/metrics"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// ReconcileUsecase rebuilds counter store state from the durable store. It
// is idempotent and safe to run under live traffic, with the caveat that a
// run may overwrite a toggle that has not yet synced; it is an operator
// recovery action, not a steady-state process.
type ReconcileUsecase struct {
	repo    contract.IRatingRepository
	counter contract.ICounterStore
	logger  usecasecontract.IAppLogger
}

// NewReconcileUsecase creates and returns a new ReconcileUsecase instance.
// counter may be nil when the counter store is unconfigured.
func NewReconcileUsecase(repo contract.IRatingRepository, counter contract.ICounterStore,
	logger usecasecontract.IAppLogger) *ReconcileUsecase {
	return &ReconcileUsecase{repo: repo, counter: counter, logger: logger}
}

// ReconcileOne overwrites one item's counter with the durable count.
func (u *ReconcileUsecase) ReconcileOne(ctx context.Context, itemID string) error {
	if u.counter == nil {
		return contract.ErrCounterUnavailable
	}
	count, err := u.repo.ItemCount(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to read durable count: %w", err)
	}
	if err := u.counter.SetCount(ctx, itemID, count); err != nil {
		return fmt.Errorf("failed to overwrite counter: %w", err)
	}
	metrics.ReconcileRunsTotal.WithLabelValues("one").Inc()
	u.logger.Infof("reconciled item %s to count %d", itemID, count)
	return nil
}

// ReconcileAll overwrites every counter with its durable count, then
// rebuilds every liked-by set and reverse set from the rating rows.
func (u *ReconcileUsecase) ReconcileAll(ctx context.Context) error {
	if u.counter == nil {
		return contract.ErrCounterUnavailable
	}

	itemIDs, err := u.repo.AllItemIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}
	counts, err := u.repo.ItemCounts(ctx, itemIDs)
	if err != nil {
		return fmt.Errorf("failed to read durable counts: %w", err)
	}
	for _, itemID := range itemIDs {
		if err := u.counter.SetCount(ctx, itemID, counts[itemID]); err != nil {
			return fmt.Errorf("failed to overwrite counter for %s: %w", itemID, err)
		}
	}

	if err := u.counter.PurgeMembership(ctx); err != nil {
		return fmt.Errorf("failed to purge membership sets: %w", err)
	}
	ratings, err := u.repo.AllRatings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list ratings: %w", err)
	}
	rebuilt := 0
	for _, rating := range ratings {
		if err := u.counter.AddMembership(ctx, rating.ItemID, rating.Identity()); err != nil {
			u.logger.Errorf("failed to rebuild membership for item %s: %v", rating.ItemID, err)
			continue
		}
		rebuilt++
	}

	metrics.ReconcileRunsTotal.WithLabelValues("all").Inc()
	u.logger.Infof("reconciled %d items, rebuilt %d of %d memberships",
		len(itemIDs), rebuilt, len(ratings))
	return nil
}

// Ensure ReconcileUsecase implements the contract.
var _ usecasecontract.IReconcileUseCase = (*ReconcileUsecase)(nil)
