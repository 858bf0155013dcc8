package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds the schedules of every job.
type Config struct {
	DispatchInterval      time.Duration
	OverdueCheckInterval  time.Duration
	DailyReminderSchedule string
}

// job is anything the manager can start and stop.
type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  job
}

// NewJobManager creates the dispatcher job and the task producers.
func NewJobManager(runner CycleRunner, enqueue TaskEnqueuer, cfg Config, logger *slog.Logger) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{"dispatcher", NewDispatcherJob(runner, cfg.DispatchInterval, logger)},
			{"overdue check", NewOverdueCheckJob(enqueue, cfg.OverdueCheckInterval, logger)},
			{"daily reminder", NewDailyReminderJob(enqueue, cfg.DailyReminderSchedule, logger)},
		},
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully, waiting for running ones.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
