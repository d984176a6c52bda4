package contract

import (
	"context"
	"errors"

	"github.com/mihretgbr/applaud/internal/domain/entity"
)

// ErrRatingNotFound is returned when a rating row does not exist.
var ErrRatingNotFound = errors.New("rating not found")

// ErrDuplicateRating is returned when an insert or re-key would violate the
// one-rating-per-item-per-identity uniqueness constraint.
var ErrDuplicateRating = errors.New("rating already exists")

// IRatingRepository is the durable system of record: one ratings row per
// (item, identity) plus a denormalized count column per item. The count
// column is always written with an absolute SET, never a delta, so the two
// stores cannot compound drift.
type IRatingRepository interface {
	// EnsureItem inserts a zero-count item row if none exists yet.
	EnsureItem(ctx context.Context, itemID string) error

	ItemCount(ctx context.Context, itemID string) (int64, error)
	ItemCounts(ctx context.Context, itemIDs []string) (map[string]int64, error)
	SetItemCount(ctx context.Context, itemID string, count int64) error
	AllItemIDs(ctx context.Context) ([]string, error)

	UpsertRating(ctx context.Context, itemID string, ident entity.Identity) error
	DeleteRating(ctx context.Context, itemID string, ident entity.Identity) error
	HasRating(ctx context.Context, itemID string, ident entity.Identity) (bool, error)

	// ToggleTx flips like state in a single durable transaction: the
	// rating row insert-or-delete and the count column update commit
	// together. This is the fallback path when the counter store is down.
	ToggleTx(ctx context.Context, itemID string, ident entity.Identity) (bool, int64, error)

	AllRatings(ctx context.Context) ([]entity.Rating, error)
	RatingsBySession(ctx context.Context, sessionID string) ([]entity.Rating, error)

	// RekeyRatingToProfile rewrites a session row's identity to a profile.
	// Returns ErrDuplicateRating if the profile already rated the item.
	RekeyRatingToProfile(ctx context.Context, ratingID, profileID string) error
	DeleteRatingByID(ctx context.Context, ratingID string) error

	// LikedItemIDs reports which of the given items the identity has rated.
	LikedItemIDs(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error)
}
