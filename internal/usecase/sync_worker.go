package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/infrastructure/metrics"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// SyncWorker propagates fast-path toggle results into the durable store in
// the background. Jobs are fire-and-forget: the request path never waits,
// failures are logged and left for reconciliation, and nothing is retried.
// Two syncs for the same item racing each other may land out of order;
// reconciliation self-heals that.
type SyncWorker struct {
	repo   contract.IRatingRepository
	logger usecasecontract.IAppLogger
	jobs   chan usecasecontract.SyncJob
	wg     sync.WaitGroup
}

// NewSyncWorker starts the background writer with the given buffer size.
func NewSyncWorker(repo contract.IRatingRepository, logger usecasecontract.IAppLogger, buffer int) *SyncWorker {
	if buffer <= 0 {
		buffer = 256
	}
	w := &SyncWorker{
		repo:   repo,
		logger: logger,
		jobs:   make(chan usecasecontract.SyncJob, buffer),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Enqueue hands a job to the worker without blocking. A full buffer drops
// the job; the durable store stays behind until a reconciliation run.
func (w *SyncWorker) Enqueue(job usecasecontract.SyncJob) {
	select {
	case w.jobs <- job:
	default:
		metrics.SyncDroppedTotal.Inc()
		w.logger.Warnf("sync buffer full, dropping job for item %s", job.ItemID)
	}
}

// Shutdown stops accepting jobs and waits for the queue to drain.
func (w *SyncWorker) Shutdown() {
	close(w.jobs)
	w.wg.Wait()
}

func (w *SyncWorker) run() {
	defer w.wg.Done()
	for job := range w.jobs {
		w.apply(context.Background(), job)
	}
}

// apply writes one toggle result durably: insert or delete the rating row,
// then SET the count column to the value the fast store reported. Absolute
// SET, never a delta, so repeated or reordered syncs converge instead of
// compounding.
func (w *SyncWorker) apply(ctx context.Context, job usecasecontract.SyncJob) {
	var err error
	if job.IsLiked {
		err = w.repo.UpsertRating(ctx, job.ItemID, job.Identity)
	} else {
		err = w.repo.DeleteRating(ctx, job.ItemID, job.Identity)
		if errors.Is(err, contract.ErrRatingNotFound) {
			// The row never made it durable in the first place.
			err = nil
		}
	}
	if err != nil {
		metrics.SyncFailuresTotal.Inc()
		w.logger.Errorf("durable sync of rating failed for item %s: %v", job.ItemID, err)
		return
	}

	if err := w.repo.SetItemCount(ctx, job.ItemID, job.NewCount); err != nil {
		metrics.SyncFailuresTotal.Inc()
		w.logger.Errorf("durable sync of count failed for item %s: %v", job.ItemID, err)
	}
}

// Ensure SyncWorker implements the contract.
var _ usecasecontract.ISyncWorker = (*SyncWorker)(nil)
