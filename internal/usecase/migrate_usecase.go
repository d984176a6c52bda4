package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// MigrateUsecase re-keys a session's likes to an authenticated profile,
// typically once at login. The durable store drives the decisions; the
// counter store mirrors them. No counter value changes: migration re-keys
// identity, it is not a like/unlike event.
type MigrateUsecase struct {
	repo    contract.IRatingRepository
	counter contract.ICounterStore
	logger  usecasecontract.IAppLogger
}

// NewMigrateUsecase creates and returns a new MigrateUsecase instance.
// counter may be nil when the counter store is unconfigured; the durable
// re-key still proceeds.
func NewMigrateUsecase(repo contract.IRatingRepository, counter contract.ICounterStore,
	logger usecasecontract.IAppLogger) *MigrateUsecase {
	return &MigrateUsecase{repo: repo, counter: counter, logger: logger}
}

// Migrate rewrites every rating the session holds. Rows the profile already
// rated are deleted instead of re-keyed, preserving the per-item-per-profile
// uniqueness constraint. Each row is processed independently; one failure
// does not abort the rest.
func (u *MigrateUsecase) Migrate(ctx context.Context, sessionID, profileID string) error {
	if sessionID == "" || profileID == "" {
		return errors.New("both session id and profile id are required")
	}

	ratings, err := u.repo.RatingsBySession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to list session ratings: %w", err)
	}

	from := entity.SessionIdentity(sessionID)
	to := entity.ProfileIdentity(profileID)
	migrated := 0
	for _, rating := range ratings {
		if err := u.migrateOne(ctx, rating, profileID, from, to); err != nil {
			u.logger.Errorf("failed to migrate rating %s (item %s): %v", rating.ID, rating.ItemID, err)
			continue
		}
		migrated++
	}

	u.logger.Infof("migrated %d of %d likes from session %s to profile %s",
		migrated, len(ratings), sessionID, profileID)
	return nil
}

func (u *MigrateUsecase) migrateOne(ctx context.Context, rating entity.Rating,
	profileID string, from, to entity.Identity) error {
	exists, err := u.repo.HasRating(ctx, rating.ItemID, to)
	if err != nil {
		return fmt.Errorf("failed to check profile rating: %w", err)
	}

	if exists {
		// The profile already likes this item; the session row would
		// violate uniqueness, so it is dropped.
		if err := u.repo.DeleteRatingByID(ctx, rating.ID); err != nil {
			return fmt.Errorf("failed to drop duplicate session rating: %w", err)
		}
	} else {
		err := u.repo.RekeyRatingToProfile(ctx, rating.ID, profileID)
		if errors.Is(err, contract.ErrDuplicateRating) {
			// A concurrent write beat the re-key; degrade to the dedupe.
			err = u.repo.DeleteRatingByID(ctx, rating.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to rekey rating: %w", err)
		}
	}

	if u.counter != nil {
		if err := u.counter.ReplaceMembership(ctx, rating.ItemID, from, to); err != nil {
			// Counter sets lag until reconciliation; the durable re-key
			// already succeeded.
			u.logger.Warnf("failed to mirror migration in counter store for item %s: %v",
				rating.ItemID, err)
		}
	}
	return nil
}

// Ensure MigrateUsecase implements the contract.
var _ usecasecontract.IMigrateUseCase = (*MigrateUsecase)(nil)
