// Package jobs provides scheduled background tasks for the logistics system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Every scheduler runs with second precision and skips a tick while the
// previous run is still in progress, so runs of the same job never overlap.
//
// # Available Jobs
//
// 1. DispatcherJob - drains the task queue every DispatchInterval (default 10s)
// 2. Overdue check ProducerJob - enqueues check_overdue every OverdueCheckInterval (default 15m)
// 3. Daily reminder ProducerJob - enqueues send_daily_reminder at 08:00
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatcher, createTaskHandler, jobs.Config{
//		DispatchInterval: 10 * time.Second,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Failed cycles and failed enqueues are logged and retried on the next tick
// - Panics inside a run are recovered and logged
// - Failed job starts will stop any already running jobs
package jobs
