package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/task"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultOverdueCheckInterval is how often a check_overdue task is enqueued.
	DefaultOverdueCheckInterval = 15 * time.Minute
	// DefaultDailyReminderSchedule enqueues send_daily_reminder at 08:00 every day.
	DefaultDailyReminderSchedule = "0 0 8 * * *"
)

// TaskEnqueuer adds a task to the queue.
type TaskEnqueuer interface {
	Handle(ctx context.Context, cmd commands.CreateTaskCommand) (*task.Task, error)
}

// ProducerJob enqueues the same task on a schedule so the dispatcher picks it
// up on its next cycle.
type ProducerJob struct {
	name     string
	schedule string
	spec     func(now time.Time) task.Spec
	enqueue  TaskEnqueuer
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueCheckJob enqueues check_overdue every interval. A non-positive
// interval means DefaultOverdueCheckInterval.
func NewOverdueCheckJob(enqueue TaskEnqueuer, interval time.Duration, logger *slog.Logger) *ProducerJob {
	if interval <= 0 {
		interval = DefaultOverdueCheckInterval
	}
	return newProducerJob("overdue_check_job", every(interval), enqueue, logger, func(now time.Time) task.Spec {
		return task.Spec{
			Title:    "Check overdue orders",
			Type:     task.CheckOverdue,
			Priority: task.High,
			Deadline: now,
		}
	})
}

// NewDailyReminderJob enqueues send_daily_reminder on a cron schedule with
// seconds. An empty schedule means DefaultDailyReminderSchedule.
func NewDailyReminderJob(enqueue TaskEnqueuer, schedule string, logger *slog.Logger) *ProducerJob {
	if schedule == "" {
		schedule = DefaultDailyReminderSchedule
	}
	return newProducerJob("daily_reminder_job", schedule, enqueue, logger, func(now time.Time) task.Spec {
		return task.Spec{
			Title:    fmt.Sprintf("Daily driver reminder %s", now.Format(time.DateOnly)),
			Type:     task.SendDailyReminder,
			Priority: task.Normal,
			Deadline: now.Add(time.Hour),
		}
	})
}

func newProducerJob(
	name, schedule string,
	enqueue TaskEnqueuer,
	logger *slog.Logger,
	spec func(now time.Time) task.Spec,
) *ProducerJob {
	logger = logger.With("component", name)
	return &ProducerJob{
		name:     name,
		schedule: schedule,
		spec:     spec,
		enqueue:  enqueue,
		cron:     newCron(logger),
		logger:   logger,
	}
}

// Start schedules the producer.
func (j *ProducerJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Produce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Producer job started", "schedule", j.schedule)
	return nil
}

// Produce enqueues one task immediately.
func (j *ProducerJob) Produce() {
	ctx := context.Background()
	cmd, err := commands.NewCreateTaskCommand(j.spec(time.Now().UTC()))
	if err != nil {
		j.logger.ErrorContext(ctx, "Producer job built an invalid task", "error", err)
		return
	}

	t, err := j.enqueue.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Producer job failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Task enqueued", "task_id", t.ID().Int64(), "task_type", t.Type().String())
}

// Stop stops the producer and waits for a running enqueue.
func (j *ProducerJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Producer job stopped")
}
