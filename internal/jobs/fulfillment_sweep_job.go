package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// PendingRetrier re-attempts fulfillment for every queued order. Satisfied
// by the allocator.
type PendingRetrier interface {
	RetryPending(ctx context.Context)
}

// FulfillmentSweepJob periodically walks the pending queue and re-attempts
// fulfillment against current stock. Restocks already trigger immediate
// re-attempts; the sweep is a safety net for stock freed by out-of-band
// corrections or a failed commit from an earlier pass.
type FulfillmentSweepJob struct {
	retrier PendingRetrier
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewFulfillmentSweepJob creates a sweep job with the given cron spec
// (seconds-granularity, e.g. "0 * * * * *" for once a minute).
func NewFulfillmentSweepJob(retrier PendingRetrier, spec string, logger *slog.Logger) *FulfillmentSweepJob {
	return &FulfillmentSweepJob{
		retrier: retrier,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "fulfillment_sweep_job"),
	}
}

// Start schedules the sweep. Returns an error if the cron spec is invalid.
func (j *FulfillmentSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		j.retrier.RetryPending(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fulfillment sweep job started", "spec", j.spec)
	return nil
}

// Stop stops the sweep job.
func (j *FulfillmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Fulfillment sweep job stopped")
}
