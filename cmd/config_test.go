package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"logistics/cmd"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DISPATCH_INTERVAL", "OVERDUE_CHECK_INTERVAL",
		"DAILY_REMINDER_SCHEDULE", "AUTO_ACKNOWLEDGE", "INVOICE_DEDUP_POLICY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, jobs.DefaultDispatchInterval, cfg.DispatchInterval)
	assert.Equal(t, jobs.DefaultOverdueCheckInterval, cfg.OverdueCheckInterval)
	assert.Equal(t, jobs.DefaultDailyReminderSchedule, cfg.DailyReminderSchedule)
	assert.True(t, cfg.AutoAcknowledge)
	assert.Equal(t, commands.DedupNone, cfg.InvoiceDedupPolicy)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DISPATCH_INTERVAL", "2s")
	t.Setenv("AUTO_ACKNOWLEDGE", "false")
	t.Setenv("INVOICE_DEDUP_POLICY", "per_order")
	t.Setenv("MESSENGER_BURST", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.DispatchInterval)
	assert.False(t, cfg.AutoAcknowledge)
	assert.Equal(t, commands.DedupPerOrder, cfg.InvoiceDedupPolicy)
	assert.Equal(t, 3, cfg.MessengerBurst)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.JobsConfig().DispatchInterval)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=fleet\nDRIVER_WAGE_RATE=7.5\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("DB_NAME")
		_ = os.Unsetenv("DRIVER_WAGE_RATE")
	})

	cfg, err := cmd.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "fleet", cfg.DBName)
	assert.InDelta(t, 7.5, cfg.DriverWageRate, 1e-9)
	assert.Contains(t, cfg.DSN(), "dbname=fleet")
}

func TestLoadConfig_ReportsEveryInvalidVariable(t *testing.T) {
	t.Setenv("DISPATCH_INTERVAL", "often")
	t.Setenv("MESSENGER_BURST", "many")
	t.Setenv("INVOICE_DEDUP_POLICY", "sometimes")

	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISPATCH_INTERVAL")
	assert.Contains(t, err.Error(), "MESSENGER_BURST")
	assert.Contains(t, err.Error(), "invoice dedup policy")
}
