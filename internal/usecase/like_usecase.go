package usecase

import (
	"context"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
	"github.com/mihretgbr/applaud/internal/infrastructure/metrics"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// LikeUsecase orchestrates a single like/unlike operation. Writes go
// through the composed like store (counter store first, durable store on
// failure); fast-path results are handed to the sync worker for durable
// catch-up, fire-and-forget.
type LikeUsecase struct {
	store     contract.ILikeStore
	sync      usecasecontract.ISyncWorker
	validator usecasecontract.IValidator
	logger    usecasecontract.IAppLogger
}

// NewLikeUsecase creates and returns a new LikeUsecase instance.
func NewLikeUsecase(store contract.ILikeStore, sync usecasecontract.ISyncWorker,
	validator usecasecontract.IValidator, logger usecasecontract.IAppLogger) *LikeUsecase {
	return &LikeUsecase{
		store:     store,
		sync:      sync,
		validator: validator,
		logger:    logger,
	}
}

// Toggle flips like state for (item, identity). A missing session id is
// rejected with no mutation. Store failures come back as a structured
// failure result, never as an error or panic.
func (u *LikeUsecase) Toggle(ctx context.Context, itemID, sessionID, profileID string) usecasecontract.ToggleResult {
	if err := u.validator.ValidateID("item id", itemID); err != nil {
		metrics.TogglesTotal.WithLabelValues("rejected").Inc()
		return usecasecontract.ToggleResult{Success: false, Error: err.Error()}
	}
	if err := u.validator.ValidateID("session id", sessionID); err != nil {
		metrics.TogglesTotal.WithLabelValues("rejected").Inc()
		return usecasecontract.ToggleResult{Success: false, Error: err.Error()}
	}

	ident := entity.PickIdentity(sessionID, profileID)
	outcome, err := u.store.Toggle(ctx, itemID, ident)
	if err != nil {
		u.logger.Errorf("toggle failed for item %s: %v", itemID, err)
		metrics.TogglesTotal.WithLabelValues("rejected").Inc()
		return usecasecontract.ToggleResult{Success: false, Error: "like toggle failed"}
	}

	// Fast-path toggles still owe a durable write; fallback toggles
	// already committed durably inside the store.
	if !outcome.Durable {
		u.sync.Enqueue(usecasecontract.SyncJob{
			ItemID:   itemID,
			Identity: ident,
			IsLiked:  outcome.IsLiked,
			NewCount: outcome.NewCount,
		})
	}

	if outcome.IsLiked {
		metrics.TogglesTotal.WithLabelValues("liked").Inc()
	} else {
		metrics.TogglesTotal.WithLabelValues("unliked").Inc()
	}
	return usecasecontract.ToggleResult{
		Success:  true,
		IsLiked:  outcome.IsLiked,
		NewCount: outcome.NewCount,
	}
}

// GetCounts batch-reads like counts. Counters missing from the fast store
// are backfilled from the durable store inside the composed like store.
func (u *LikeUsecase) GetCounts(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	if err := u.validator.ValidateIDs("item ids", itemIDs); err != nil {
		return nil, err
	}
	return u.store.Counts(ctx, itemIDs)
}

// GetLikedStatuses reports, per item, whether the acting identity likes it.
func (u *LikeUsecase) GetLikedStatuses(ctx context.Context, itemIDs []string, sessionID, profileID string) (map[string]bool, error) {
	if err := u.validator.ValidateIDs("item ids", itemIDs); err != nil {
		return nil, err
	}
	if err := u.validator.ValidateID("session id", sessionID); err != nil {
		return nil, err
	}
	ident := entity.PickIdentity(sessionID, profileID)
	return u.store.LikedStatuses(ctx, itemIDs, ident)
}

// Ensure LikeUsecase implements the contract.
var _ usecasecontract.ILikeUseCase = (*LikeUsecase)(nil)
