// Package jobs provides scheduled background tasks for the scheduling
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic dispatch work the service requires.
//
// # Available Jobs
//
// 1. DigestDispatchJob - Runs three passes a day (morning, midday, evening)
// sending technicians their route digests
// 2. NotificationPollJob - Runs on a fixed interval to drain the customer
// notification queue
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(
//		digestHandler, notificationHandler,
//		jobs.DefaultDigestSchedule(), 2*time.Minute, loc, logger)
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
// The digest passes are cron expressions evaluated in the service time zone,
// so "0 7 * * *" fires at 07:00 local regardless of the host clock. The
// notification poll uses an @every interval.
//
// # Error Handling
//
// - Digest passes ignore the expected empty-day case (nothing to dispatch)
// - A digest pass firing while a previous pass still runs is skipped
// - Notification ticks ignore the expected empty-queue case
// - Failed job starts will stop any already running jobs
package jobs
