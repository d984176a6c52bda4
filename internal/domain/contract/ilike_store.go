package contract

import (
	"context"

	"github.com/mihretgbr/applaud/internal/domain/entity"
)

// ILikeStore is the one surface the toggle path talks to. It has two
// implementations, the counter-store-backed fast path and the durable
// transactional path, composed by a single fallback decorator so the
// try-primary-then-secondary flow lives in exactly one place.
type ILikeStore interface {
	Toggle(ctx context.Context, itemID string, ident entity.Identity) (*entity.ToggleOutcome, error)
	Counts(ctx context.Context, itemIDs []string) (map[string]int64, error)
	LikedStatuses(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error)
}
