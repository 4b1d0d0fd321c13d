package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from .env, environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	BaseURL         string
	LogLevel        string
	SessionSecret   string
	SessionTTL      time.Duration
	AdminSessionTTL time.Duration
	ShutdownTimeout time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayAPIURL    string

	ShiprocketAPIURL         string
	ShiprocketEmail          string
	ShiprocketPassword       string
	ShiprocketPickupLocation string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	AMQPURL   string
	AMQPQueue string

	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration

	GoogleClientID     string
	GoogleClientSecret string

	AdminEmail    string
	AdminPassword string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	WorkerPoolSize     int
}

const (
	defaultRunAddress         = ":8080"
	defaultBaseURL            = "http://localhost:8080"
	defaultLogLevel           = "info"
	defaultSessionSecret      = "change-me-in-production"
	defaultSessionTTL         = 7 * 24 * time.Hour
	defaultAdminSessionTTL    = 12 * time.Hour
	defaultShutdownTimeout    = 10 * time.Second
	defaultRazorpayAPIURL     = "https://api.razorpay.com"
	defaultShiprocketAPIURL   = "https://apiv2.shiprocket.in"
	defaultPickupLocation     = "Primary"
	defaultSMTPPort           = 587
	defaultSMTPFrom           = "no-reply@mysticmart.local"
	defaultAMQPQueue          = "mysticmart.events"
	defaultCatalogCacheTTL    = 5 * time.Minute
	defaultOutboxPollInterval = 2 * time.Second
	defaultOutboxBatchSize    = 16
	defaultOutboxMaxAttempts  = 8
	defaultWorkerPoolSize     = 4
	defaultEnvFile            = ".env"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := loadEnvFile(os.LookupEnv); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

// loadEnvFile populates the process environment without overriding variables that are already set.
func loadEnvFile(lookup envLookup) error {
	path := getString(lookup, "ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		BaseURL:         getString(lookup, "BASE_URL", defaultBaseURL),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		SessionSecret:   getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		AdminSessionTTL: getDuration(lookup, "ADMIN_SESSION_TTL", defaultAdminSessionTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),

		RazorpayKeyID:     getString(lookup, "RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getString(lookup, "RAZORPAY_KEY_SECRET", ""),
		RazorpayAPIURL:    getString(lookup, "RAZORPAY_API_URL", defaultRazorpayAPIURL),

		ShiprocketAPIURL:         getString(lookup, "SHIPROCKET_API_URL", defaultShiprocketAPIURL),
		ShiprocketEmail:          getString(lookup, "SHIPROCKET_EMAIL", ""),
		ShiprocketPassword:       getString(lookup, "SHIPROCKET_PASSWORD", ""),
		ShiprocketPickupLocation: getString(lookup, "SHIPROCKET_PICKUP_LOCATION", defaultPickupLocation),

		SMTPHost:     getString(lookup, "SMTP_HOST", ""),
		SMTPPort:     getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername: getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword: getString(lookup, "SMTP_PASSWORD", ""),
		SMTPFrom:     getString(lookup, "SMTP_FROM", defaultSMTPFrom),

		AMQPURL:   getString(lookup, "AMQP_URL", ""),
		AMQPQueue: getString(lookup, "AMQP_QUEUE", defaultAMQPQueue),

		RedisAddr:       getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:   getString(lookup, "REDIS_PASSWORD", ""),
		CatalogCacheTTL: getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),

		GoogleClientID:     getString(lookup, "GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getString(lookup, "GOOGLE_CLIENT_SECRET", ""),

		AdminEmail:    getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword: getString(lookup, "ADMIN_PASSWORD", ""),

		OutboxPollInterval: getDuration(lookup, "OUTBOX_POLL_INTERVAL", defaultOutboxPollInterval),
		OutboxBatchSize:    getInt(lookup, "OUTBOX_BATCH_SIZE", defaultOutboxBatchSize),
		OutboxMaxAttempts:  getInt(lookup, "OUTBOX_MAX_ATTEMPTS", defaultOutboxMaxAttempts),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
	}

	flags := flag.NewFlagSet("mysticmart", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.OutboxPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		sessionTTLStr      = cfg.SessionTTL.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public base URL used in links")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Customer session lifetime")
	flags.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent outbox workers")
	flags.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between outbox polls")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.IntVar(&cfg.OutboxBatchSize, "poll-batch", cfg.OutboxBatchSize, "Maximum outbox events per polling batch")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OutboxPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	normalize(cfg)

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be provided together")
	}

	if cfg.UsesDefaultSessionSecret() && strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("SESSION_SECRET must be set when BASE_URL is https")
	}

	return cfg, nil
}

// UsesDefaultSessionSecret reports whether tokens are signed with the built-in development secret.
func (c *Config) UsesDefaultSessionSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

func normalize(cfg *Config) {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = defaultOutboxBatchSize
	}
	if cfg.OutboxMaxAttempts <= 0 {
		cfg.OutboxMaxAttempts = defaultOutboxMaxAttempts
	}
	if cfg.OutboxPollInterval <= 0 {
		cfg.OutboxPollInterval = defaultOutboxPollInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.AdminSessionTTL <= 0 {
		cfg.AdminSessionTTL = defaultAdminSessionTTL
	}
	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}
	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = defaultSMTPPort
	}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
