package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/workflow"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchInterval is how often the task queue is drained.
const DefaultDispatchInterval = 10 * time.Second

// CycleRunner runs one dispatcher cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) (workflow.CycleReport, error)
}

// DispatcherJob drains the task queue on a fixed interval. A tick that fires
// while the previous cycle is still running is skipped.
type DispatcherJob struct {
	runner   CycleRunner
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDispatcherJob creates the job. A non-positive interval means
// DefaultDispatchInterval.
func NewDispatcherJob(runner CycleRunner, interval time.Duration, logger *slog.Logger) *DispatcherJob {
	if interval <= 0 {
		interval = DefaultDispatchInterval
	}
	logger = logger.With("component", "dispatcher_job")
	ctx, cancel := context.WithCancel(context.Background())
	return &DispatcherJob{
		runner:   runner,
		interval: interval,
		cron:     newCron(logger),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the dispatcher.
func (j *DispatcherJob) Start() error {
	_, err := j.cron.AddFunc(every(j.interval), j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Dispatcher job started", "interval", j.interval.String())
	return nil
}

func (j *DispatcherJob) run() {
	report, err := j.runner.RunCycle(j.ctx)
	if err != nil {
		if j.ctx.Err() == nil {
			j.logger.ErrorContext(j.ctx, "Dispatcher cycle failed", "error", err)
		}
		return
	}
	if report.Failed > 0 {
		j.logger.WarnContext(j.ctx, "Dispatcher cycle finished with failures",
			"pending", report.Pending, "failed", report.Failed)
	}
}

// Stop cancels the running cycle and waits for it to return.
func (j *DispatcherJob) Stop() {
	stopped := j.cron.Stop()
	j.cancel()
	<-stopped.Done()
	j.logger.Info("Dispatcher job stopped")
}
