package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort          = "8080"
	defaultJWTAccessTTL  = "24h"
	defaultCacheTTL      = "10m"
	defaultPollInterval  = "5s"
	defaultPollDeadline  = "10m"
	defaultPresignedTTL  = "15m"
	defaultGatewayURL    = "https://api.paymongo.com/v1"
	defaultLoginAttempts = 3
	defaultLoginTimeout  = "10s"
	defaultPendingTTL    = "24h"
	defaultCancelCutoff  = "1h"
)

type Config struct {
	AppEnv     string
	Port       string
	AppBaseURL string

	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	// Payment gateway
	GatewaySecretKey string
	GatewayBaseURL   string
	PollInterval     time.Duration
	PollDeadline     time.Duration

	// Redis profile cache
	RedisAddr       string
	RedisPassword   string
	ProfileCacheTTL time.Duration

	// Object storage (S3-compatible)
	S3Endpoint   string
	S3Region     string
	S3AccessKey  string
	S3SecretKey  string
	PresignedTTL time.Duration

	// Email
	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string

	// Login retry policy
	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration

	// Unpaid bookings older than this are cancelled by the scheduler.
	PendingBookingTTL time.Duration

	// Renters may self-cancel only up to this long before the rental starts.
	CancelCutoff time.Duration

	Scheduler SchedulerConfig
}

// SchedulerConfig holds cron specs for the background jobs.
type SchedulerConfig struct {
	ExpirePendingBookings string
	ApplyMaintenance      string
	BackfillCommissions   string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:           envOrDefault("APP_ENV", "dev"),
		Port:             envOrDefault("PORT", defaultPort),
		AppBaseURL:       strings.TrimRight(os.Getenv("APP_BASE_URL"), "/"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GatewaySecretKey: os.Getenv("PAYMONGO_SECRET_KEY"),
		GatewayBaseURL:   envOrDefault("PAYMONGO_BASE_URL", defaultGatewayURL),
		RedisAddr:        envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3Region:         envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("S3_SECRET_KEY"),
		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:        envOrDefault("EMAIL_FROM", "noreply@juanride.ph"),
		EmailFromName:    envOrDefault("EMAIL_FROM_NAME", "JuanRide"),
		LoginMaxAttempts: defaultLoginAttempts,
		Scheduler: SchedulerConfig{
			ExpirePendingBookings: envOrDefault("CRON_EXPIRE_PENDING", "0 */15 * * * *"),
			ApplyMaintenance:      envOrDefault("CRON_APPLY_MAINTENANCE", "0 0 * * * *"),
			BackfillCommissions:   envOrDefault("CRON_BACKFILL_COMMISSIONS", "0 0 3 * * *"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.ProfileCacheTTL, err = parseDurationEnv("PROFILE_CACHE_TTL", defaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = parseDurationEnv("PAYMENT_POLL_INTERVAL", defaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.PollDeadline, err = parseDurationEnv("PAYMENT_POLL_DEADLINE", defaultPollDeadline); err != nil {
		return nil, err
	}
	if cfg.PresignedTTL, err = parseDurationEnv("PRESIGNED_URL_TTL", defaultPresignedTTL); err != nil {
		return nil, err
	}
	if cfg.LoginAttemptWindow, err = parseDurationEnv("LOGIN_ATTEMPT_TIMEOUT", defaultLoginTimeout); err != nil {
		return nil, err
	}
	if cfg.PendingBookingTTL, err = parseDurationEnv("PENDING_BOOKING_TTL", defaultPendingTTL); err != nil {
		return nil, err
	}
	if cfg.CancelCutoff, err = parseDurationEnv("BOOKING_CANCEL_CUTOFF", defaultCancelCutoff); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOrDefault(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := envOrDefault(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, raw)
	}
	return d, nil
}
