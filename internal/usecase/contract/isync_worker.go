package usecasecontract

import "github.com/mihretgbr/applaud/internal/domain/entity"

// SyncJob carries one fast-path toggle result to the durable store.
type SyncJob struct {
	ItemID   string
	Identity entity.Identity
	IsLiked  bool
	NewCount int64
}

// ISyncWorker accepts fire-and-forget durable catch-up jobs. Enqueue must
// never block the request path that serves a toggle.
type ISyncWorker interface {
	Enqueue(job SyncJob)
}
