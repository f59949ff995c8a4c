// Package jobs provides scheduled background tasks for the fulfillment
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. FulfillmentSweepJob - periodically re-attempts fulfillment for every
// queued order against current stock.
//
// # Usage
//
//	job := jobs.NewFulfillmentSweepJob(allocator, "0 * * * * *", logger)
//	if err := job.Start(); err != nil {
//		log.Fatal("Failed to start sweep job:", err)
//	}
//	defer job.Stop()
//
// # Scheduling
//
// The cron spec uses seconds granularity. The sweep exists as a safety net:
// order submission and restocks already run fulfillment inline, so the
// sweep only picks up work left behind by failed commits or out-of-band
// stock corrections.
package jobs
