package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRetrier struct {
	calls atomic.Int32
}

func (r *countingRetrier) RetryPending(_ context.Context) {
	r.calls.Add(1)
}

func TestFulfillmentSweepJob_RunsOnSchedule(t *testing.T) {
	retrier := &countingRetrier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	job := jobs.NewFulfillmentSweepJob(retrier, "* * * * * *", logger)
	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return retrier.calls.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond)
}

func TestFulfillmentSweepJob_InvalidSpec(t *testing.T) {
	retrier := &countingRetrier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	job := jobs.NewFulfillmentSweepJob(retrier, "not a cron spec", logger)
	require.Error(t, job.Start())
}
