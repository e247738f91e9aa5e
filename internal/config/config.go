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

	"github.com/polkiloo/foodorders/internal/domain/model"
)

// Notifier drivers understood by the notification dispatcher.
const (
	NotifierHTTP = "http"
	NotifierAMQP = "amqp"
	NotifierNone = "none"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	JWTSecret         string
	LogLevel          string
	ShutdownTimeout   time.Duration
	OrdersListLimit   int
	StreamRetry       time.Duration
	StreamHeartbeat   time.Duration
	StreamBuffer      int
	StreamOrigins     []string
	Notifier          string
	NotificationsBase string
	AMQPURL           string
	NotifyWorkers     int
	NotifyQueueSize   int
	NotifyRate        float64
	PaymentsEnabled   bool
	PaymentsBaseURL   string
	WebhookSecrets    map[string]string
}

const (
	defaultRunAddress        = ":3006"
	defaultJWTSecret         = "dev_secret"
	defaultLogLevel          = "info"
	defaultShutdownTimeout   = 10 * time.Second
	defaultOrdersListLimit   = 50
	defaultStreamRetry       = 5 * time.Second
	defaultStreamHeartbeat   = 25 * time.Second
	defaultStreamBuffer      = 16
	defaultNotifier          = NotifierHTTP
	defaultNotificationsBase = "http://notifications-service:3007"
	defaultNotifyWorkers     = 2
	defaultNotifyQueueSize   = 256
	defaultNotifyRate        = 20
	defaultPaymentsBaseURL   = "https://payments.example"
	defaultEnvFile           = ".env"
)

// Load parses configuration from flags, environment variables and an optional env file.
func Load() (*Config, error) {
	lookup, err := withEnvFile(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withEnvFile layers values from ENV_FILE (or ./.env) underneath the process
// environment. A missing default file is ignored; a missing explicit file is not.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path, explicit := lookup("ENV_FILE")
	if path == "" {
		path, explicit = defaultEnvFile, false
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URL", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		OrdersListLimit:   getInt(lookup, "ORDERS_LIST_LIMIT", defaultOrdersListLimit),
		StreamRetry:       getDuration(lookup, "STREAM_RETRY", defaultStreamRetry),
		StreamHeartbeat:   getDuration(lookup, "STREAM_HEARTBEAT", defaultStreamHeartbeat),
		StreamBuffer:      getInt(lookup, "STREAM_BUFFER", defaultStreamBuffer),
		StreamOrigins:     getList(lookup, "STREAM_ALLOWED_ORIGINS"),
		Notifier:          strings.ToLower(getString(lookup, "NOTIFIER", defaultNotifier)),
		NotificationsBase: getString(lookup, "NOTIFICATIONS_BASE", defaultNotificationsBase),
		AMQPURL:           getString(lookup, "AMQP_URL", ""),
		NotifyWorkers:     getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize:   getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		NotifyRate:        getFloat(lookup, "NOTIFY_RATE", defaultNotifyRate),
		PaymentsEnabled:   getString(lookup, "ENABLE_PAYMENTS", "true") == "true",
		PaymentsBaseURL:   getString(lookup, "PAYMENTS_BASE_URL", defaultPaymentsBaseURL),
		WebhookSecrets:    make(map[string]string),
	}

	if port, ok := lookup("PORT"); ok && port != "" && !hasKey(lookup, "RUN_ADDRESS") {
		cfg.RunAddress = ":" + port
	}

	for _, provider := range model.SupportedPaymentProviders {
		key := strings.ToUpper(string(provider)) + "_WEBHOOK_SECRET"
		if secret := getString(lookup, key, ""); secret != "" {
			cfg.WebhookSecrets[string(provider)] = secret
		}
	}

	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		heartbeatStr       = cfg.StreamHeartbeat.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Notifier, "notifier", cfg.Notifier, "Notification driver (http, amqp, none)")
	fs.StringVar(&cfg.NotificationsBase, "notifications", cfg.NotificationsBase, "Notifications service base URL")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "AMQP broker URL")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&heartbeatStr, "stream-heartbeat", heartbeatStr, "Interval between live stream heartbeats")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.StreamHeartbeat, err = time.ParseDuration(heartbeatStr); err != nil {
		return nil, fmt.Errorf("invalid stream heartbeat: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.OrdersListLimit <= 0 {
		cfg.OrdersListLimit = defaultOrdersListLimit
	}
	if cfg.StreamRetry <= 0 {
		cfg.StreamRetry = defaultStreamRetry
	}
	if cfg.StreamHeartbeat <= 0 {
		cfg.StreamHeartbeat = defaultStreamHeartbeat
	}
	if cfg.StreamBuffer <= 0 {
		cfg.StreamBuffer = defaultStreamBuffer
	}
	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}
	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}
	if cfg.NotifyRate <= 0 {
		cfg.NotifyRate = defaultNotifyRate
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URL must be provided")
	}

	switch cfg.Notifier {
	case NotifierHTTP:
		if cfg.NotificationsBase == "" {
			return nil, fmt.Errorf("notifications base URL must be provided for http notifier")
		}
	case NotifierAMQP:
		if cfg.AMQPURL == "" {
			return nil, fmt.Errorf("AMQP URL must be provided for amqp notifier")
		}
	case NotifierNone:
	default:
		return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}

	return cfg, nil
}

func hasKey(lookup envLookup, key string) bool {
	v, ok := lookup(key)
	return ok && v != ""
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

// getList splits a comma separated value, dropping blanks.
func getList(lookup envLookup, key string) []string {
	var out []string
	for _, part := range strings.Split(getString(lookup, key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
