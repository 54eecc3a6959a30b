// Package jobs provides scheduled background tasks for the notification
// pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to run the periodic operations of the service.
//
// # Available Jobs
//
// 1. ConfirmationJob - Runs one notification pass per interval: fetch rows,
// aggregate pending customers, send one message each, mark the rows
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the pass handler and its settings
//	jobManager := jobs.NewJobManager(notifyHandler, sendPoll, attachmentPath, interval, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The confirmation job uses an "@every" cron descriptor with the configured
// pass interval (five minutes unless overridden). One pass also runs
// immediately at startup so a fresh backlog is worked off without waiting a
// full interval.
//
// # Error Handling
//
//   - A failed fetch fails the whole pass and is logged; nothing is sent
//   - Per-customer dispatch failures are absorbed by the pass itself and
//     surface in the pass summary, not as job errors
//   - Ticks that fire while a pass is still running are skipped
package jobs
