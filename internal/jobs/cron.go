package jobs

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// newCron builds a scheduler with second precision that never overlaps runs
// and logs recovered panics through slog.
func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cronLogger{logger: logger}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		),
	)
}

func every(d time.Duration) string {
	return "@every " + d.String()
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
