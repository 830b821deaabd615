// Package jobs provides scheduled background tasks for the fulfillment
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// The single job, ReconciliationJob, runs the batch reconciliation pass on a
// configurable cadence (hourly by default).
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "0 0 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses cron.SkipIfStillRunning, so a pass that
// outlives its interval suppresses the next tick instead of running two
// passes concurrently. Failed passes perform no writes and are retried by
// the next tick; there is no immediate re-queue, which keeps the carrier API
// from being hammered during an outage.
package jobs
