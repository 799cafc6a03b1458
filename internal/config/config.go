package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	TokenSecret     string
	LogLevel        string
	PublicBaseURL   string
	ShutdownTimeout time.Duration
	ImportWorkers   int
	ImportQueueSize int

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

const (
	defaultRunAddress      = ":8080"
	defaultTokenSecret     = "change-me-in-production"
	defaultLogLevel        = "info"
	defaultPublicBaseURL   = "http://localhost:8080"
	defaultShutdownTimeout = 10 * time.Second
	defaultImportWorkers   = 2
	defaultImportQueue     = 8
	defaultSMTPPort        = 587
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		TokenSecret:     getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PublicBaseURL:   getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ImportWorkers:   getInt(lookup, "IMPORT_WORKERS", defaultImportWorkers),
		ImportQueueSize: getInt(lookup, "IMPORT_QUEUE_SIZE", defaultImportQueue),
		SMTPHost:        getString(lookup, "SMTP_HOST", ""),
		SMTPPort:        getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPFrom:        getString(lookup, "SMTP_FROM", ""),
		SMTPUsername:    getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:    getString(lookup, "SMTP_PASSWORD", ""),
	}

	fs := flag.NewFlagSet("laadscan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", cfg.PublicBaseURL, "Public base URL used in reset links")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.ImportWorkers, "import-workers", cfg.ImportWorkers, "Number of concurrent import workers")
	fs.IntVar(&cfg.ImportQueueSize, "import-queue", cfg.ImportQueueSize, "Pending import job queue size")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.ImportWorkers <= 0 {
		cfg.ImportWorkers = defaultImportWorkers
	}
	if cfg.ImportQueueSize <= 0 {
		cfg.ImportQueueSize = defaultImportQueue
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
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
