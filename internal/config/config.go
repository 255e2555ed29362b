package config

import (
	"os"
	"strconv"
	"time"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

// Split backends. The local backend runs the engine in process; the nats
// backend forwards split requests to workers.
const (
	SplitBackendLocal = "local"
	SplitBackendNATS  = "nats"
)

type Config struct {
	APIPort  string
	LogLevel string

	NATSURL              string
	NATSSubject          string
	NATSQueueGroup       string
	NATSRequestTimeoutMS int
	NATSConnectTimeoutMS int
	NATSReconnectWaitMS  int
	NATSMaxReconnects    int
	NATSRetryMaxAttempts int
	NATSBreakerEnabled   bool

	SplitTrimSentence     bool
	SplitMaxRowLength     int
	SplitMaxRows          int
	SplitFulfillEmptyRows bool
	SplitProfilesPath     string
	SplitBackend          string

	APIMaxBodyBytes       int64
	APIRateLimitRPS       float64
	APIRateLimitBurst     int
	APIMaxInFlight        int
	APIBackpressureWaitMS int

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		NATSURL:              mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:          mustEnv("NATS_SUBJECT", "text.split"),
		NATSQueueGroup:       mustEnv("NATS_QUEUE_GROUP", "splitters"),
		NATSRequestTimeoutMS: mustEnvInt("NATS_REQUEST_TIMEOUT_MS", 2000),
		NATSConnectTimeoutMS: mustEnvInt("NATS_CONNECT_TIMEOUT_MS", 2000),
		NATSReconnectWaitMS:  mustEnvInt("NATS_RECONNECT_WAIT_MS", 2000),
		NATSMaxReconnects:    mustEnvInt("NATS_MAX_RECONNECTS", 60),
		NATSRetryMaxAttempts: mustEnvInt("NATS_RETRY_MAX_ATTEMPTS", 3),
		NATSBreakerEnabled:   mustEnvBool("NATS_BREAKER_ENABLED", true),

		SplitTrimSentence:     mustEnvBool("SPLIT_TRIM_SENTENCE", false),
		SplitMaxRowLength:     mustEnvInt("SPLIT_MAX_ROW_LENGTH", domain.DefaultMaxRowLength),
		SplitMaxRows:          mustEnvInt("SPLIT_MAX_ROWS", domain.DefaultMaxRows),
		SplitFulfillEmptyRows: mustEnvBool("SPLIT_FULFILL_EMPTY_ROWS", false),
		SplitProfilesPath:     mustEnv("SPLIT_PROFILES_PATH", ""),
		SplitBackend:          mustEnv("SPLIT_BACKEND", SplitBackendLocal),

		APIMaxBodyBytes:       int64(mustEnvInt("API_MAX_BODY_BYTES", 4<<20)),
		APIRateLimitRPS:       mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst:     mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:        mustEnvInt("API_MAX_IN_FLIGHT", 64),
		APIBackpressureWaitMS: mustEnvInt("API_BACKPRESSURE_WAIT_MS", 250),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

// DefaultSplitOptions projects the SPLIT_* settings. The result is not
// validated here; splitters reject non-positive bounds on construction.
func (c Config) DefaultSplitOptions() domain.SplitOptions {
	return domain.SplitOptions{
		TrimSentence:     c.SplitTrimSentence,
		MaxRowLength:     c.SplitMaxRowLength,
		MaxRows:          c.SplitMaxRows,
		FulfillEmptyRows: c.SplitFulfillEmptyRows,
	}
}

func (c Config) NATSRequestTimeout() time.Duration {
	return time.Duration(c.NATSRequestTimeoutMS) * time.Millisecond
}

func (c Config) NATSConnectTimeout() time.Duration {
	return time.Duration(c.NATSConnectTimeoutMS) * time.Millisecond
}

func (c Config) NATSReconnectWait() time.Duration {
	return time.Duration(c.NATSReconnectWaitMS) * time.Millisecond
}

func (c Config) APIBackpressureWait() time.Duration {
	return time.Duration(c.APIBackpressureWaitMS) * time.Millisecond
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
