package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
	"github.com/mihretgbr/applaud/internal/usecase"
)

func TestReconcileOne_OverwritesDriftedCounter(t *testing.T) {
	repo := newMemRatingRepo()
	counter := newMemCounterStore()
	ctx := context.Background()
	repo.SetItemCount(ctx, "post-1", 9)
	counter.SetCount(ctx, "post-1", 3)

	uc := usecase.NewReconcileUsecase(repo, counter, stubLogger{})
	assert.NoError(t, uc.ReconcileOne(ctx, "post-1"))

	count, exists, err := counter.Count(ctx, "post-1")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(9), count)
}

func TestReconcileAll_ConvergesCountsAndMemberships(t *testing.T) {
	repo := newMemRatingRepo()
	counter := newMemCounterStore()
	ctx := context.Background()

	s1 := entity.SessionIdentity("sess-1")
	u1 := entity.ProfileIdentity("user-1")
	repo.ToggleTx(ctx, "post-1", s1)
	repo.ToggleTx(ctx, "post-1", u1)
	repo.ToggleTx(ctx, "post-2", u1)

	// Drift the counter store: wrong counts, bogus membership.
	counter.SetCount(ctx, "post-1", 99)
	counter.SetCount(ctx, "post-3", 5)
	counter.AddMembership(ctx, "post-1", entity.SessionIdentity("ghost"))

	uc := usecase.NewReconcileUsecase(repo, counter, stubLogger{})
	assert.NoError(t, uc.ReconcileAll(ctx))

	count, _, _ := counter.Count(ctx, "post-1")
	assert.Equal(t, int64(2), count)
	count, _, _ = counter.Count(ctx, "post-2")
	assert.Equal(t, int64(1), count)

	statuses, err := counter.Statuses(ctx, []string{"post-1", "post-2"}, s1)
	assert.NoError(t, err)
	assert.True(t, statuses["post-1"])
	assert.False(t, statuses["post-2"])

	statuses, err = counter.Statuses(ctx, []string{"post-1", "post-2"}, u1)
	assert.NoError(t, err)
	assert.True(t, statuses["post-1"])
	assert.True(t, statuses["post-2"])

	statuses, err = counter.Statuses(ctx, []string{"post-1"}, entity.SessionIdentity("ghost"))
	assert.NoError(t, err)
	assert.False(t, statuses["post-1"])
}

func TestReconcile_WithoutCounterStore(t *testing.T) {
	uc := usecase.NewReconcileUsecase(newMemRatingRepo(), nil, stubLogger{})

	err := uc.ReconcileOne(context.Background(), "post-1")
	assert.ErrorIs(t, err, contract.ErrCounterUnavailable)

	err = uc.ReconcileAll(context.Background())
	assert.ErrorIs(t, err, contract.ErrCounterUnavailable)
}
