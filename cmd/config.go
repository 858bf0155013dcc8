package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"logistics/internal/adapters/out/messaging/rabbitmq"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	// Messaging. Without a RabbitMQ URL notifications are only logged.
	RabbitMQURL            string
	RabbitMQExchange       string
	MessengerRatePerSecond float64
	MessengerBurst         int

	// Workflow.
	DispatchInterval      time.Duration
	OverdueCheckInterval  time.Duration
	DailyReminderSchedule string
	AutoAcknowledge       bool
	InvoiceDedupPolicy    commands.DedupPolicy
	DriverWageRate        float64
}

// DSN is the connection string for the postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads envFile when it exists and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	env := envReader{}
	cfg := Config{
		HTTPPort:   env.getString("HTTP_PORT", "8080"),
		DBHost:     env.getString("DB_HOST", "localhost"),
		DBPort:     env.getString("DB_PORT", "5432"),
		DBUser:     env.getString("DB_USER", "postgres"),
		DBPassword: env.getString("DB_PASSWORD", ""),
		DBName:     env.getString("DB_NAME", "logistics"),
		DBSslMode:  env.getString("DB_SSLMODE", "disable"),
		LogLevel:   env.getLevel("LOG_LEVEL", slog.LevelInfo),

		RabbitMQURL:            env.getString("RABBITMQ_URL", ""),
		RabbitMQExchange:       env.getString("RABBITMQ_EXCHANGE", rabbitmq.DefaultExchange),
		MessengerRatePerSecond: env.getFloat("MESSENGER_RATE_PER_SECOND", 10),
		MessengerBurst:         env.getInt("MESSENGER_BURST", 5),

		DispatchInterval:      env.getDuration("DISPATCH_INTERVAL", jobs.DefaultDispatchInterval),
		OverdueCheckInterval:  env.getDuration("OVERDUE_CHECK_INTERVAL", jobs.DefaultOverdueCheckInterval),
		DailyReminderSchedule: env.getString("DAILY_REMINDER_SCHEDULE", jobs.DefaultDailyReminderSchedule),
		AutoAcknowledge:       env.getBool("AUTO_ACKNOWLEDGE", true),
		DriverWageRate:        env.getFloat("DRIVER_WAGE_RATE", 0),
	}

	policy, err := commands.ParseDedupPolicy(os.Getenv("INVOICE_DEDUP_POLICY"))
	if err != nil {
		env.errs = append(env.errs, err)
	}
	cfg.InvoiceDedupPolicy = policy

	if err = errors.Join(env.errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// JobsConfig returns the schedules of the background jobs.
func (c Config) JobsConfig() jobs.Config {
	return jobs.Config{
		DispatchInterval:      c.DispatchInterval,
		OverdueCheckInterval:  c.OverdueCheckInterval,
		DailyReminderSchedule: c.DailyReminderSchedule,
	}
}

// envReader collects parse errors so every bad variable is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (r *envReader) parse(key string, parse func(string) error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if err := parse(v); err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
}

func (r *envReader) getInt(key string, fallback int) int {
	out := fallback
	r.parse(key, func(v string) (err error) {
		out, err = strconv.Atoi(v)
		return err
	})
	return out
}

func (r *envReader) getFloat(key string, fallback float64) float64 {
	out := fallback
	r.parse(key, func(v string) (err error) {
		out, err = strconv.ParseFloat(v, 64)
		return err
	})
	return out
}

func (r *envReader) getBool(key string, fallback bool) bool {
	out := fallback
	r.parse(key, func(v string) (err error) {
		out, err = strconv.ParseBool(v)
		return err
	})
	return out
}

func (r *envReader) getDuration(key string, fallback time.Duration) time.Duration {
	out := fallback
	r.parse(key, func(v string) (err error) {
		out, err = time.ParseDuration(v)
		return err
	})
	return out
}

func (r *envReader) getLevel(key string, fallback slog.Level) slog.Level {
	out := fallback
	r.parse(key, func(v string) error {
		return out.UnmarshalText([]byte(v))
	})
	return out
}
