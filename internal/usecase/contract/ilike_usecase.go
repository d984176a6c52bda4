package usecasecontract

import "context"

// ToggleResult is the caller-facing outcome of a toggle. Store-level
// failures never escape as errors; they surface as Success=false with a
// short explanation, so nothing throws across the public boundary.
type ToggleResult struct {
	Success  bool   `json:"success"`
	IsLiked  bool   `json:"is_liked"`
	NewCount int64  `json:"new_count"`
	Error    string `json:"error,omitempty"`
}

// ILikeUseCase is the public surface of the like subsystem's request path.
type ILikeUseCase interface {
	// Toggle flips like state for the item. The session id is mandatory;
	// the profile id, when present, takes precedence as the identity.
	Toggle(ctx context.Context, itemID, sessionID, profileID string) ToggleResult

	// GetCounts batch-reads like counts, transparently backfilling any
	// counter missing from the fast store out of the durable store.
	GetCounts(ctx context.Context, itemIDs []string) (map[string]int64, error)

	// GetLikedStatuses reports, per item, whether the acting identity
	// currently likes it.
	GetLikedStatuses(ctx context.Context, itemIDs []string, sessionID, profileID string) (map[string]bool, error)
}

// IReconcileUseCase rebuilds fast-store state from the durable store.
// Operator-triggered recovery, not a steady-state process.
type IReconcileUseCase interface {
	ReconcileOne(ctx context.Context, itemID string) error
	ReconcileAll(ctx context.Context) error
}

// IMigrateUseCase re-keys a session's likes to an authenticated profile.
type IMigrateUseCase interface {
	Migrate(ctx context.Context, sessionID, profileID string) error
}
