// internal/config/config.go
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every startup parameter of the forwarder.
// All values are resolved once by Load() and never change afterwards.
type Config struct {

	// ---------------------------
	// InfluxDB sink
	// ---------------------------

	InfluxURL    string // InfluxDB v2 base URL (e.g. http://localhost:8086)
	InfluxToken  string // API token
	InfluxOrg    string // organization name or ID
	InfluxBucket string // bucket receiving netflow measurements

	// ---------------------------
	// Input
	// ---------------------------

	// InputFile is the path to the goflow2 JSON output. "/dev/stdin"
	// (the default) and "-" select standard input. Files ending in .gz
	// are decompressed transparently.
	InputFile string

	// ---------------------------
	// Batching / dispatch
	// ---------------------------

	BatchSize     int           // flush once this many points accumulate
	FlushInterval time.Duration // pause inserted after every flush
	RetryAttempts int           // write attempts per batch before giving up
	RetryDelay    time.Duration // fixed delay between write attempts

	// ---------------------------
	// Identity / logging
	// ---------------------------

	ServiceName string // constant "service" field on every log line
	InstanceID  string // hostname-based process identifier
	LogLevel    string // zerolog level name ("debug", "info", ...)
	LogPretty   bool   // console writer instead of JSON
	LogSampleN  uint32 // keep 1/N of debug+info logs (0 or 1 = keep all)
}

// Load resolves the configuration from the environment. The four
// INFLUXDB_* settings are required; everything else has a default.
// Malformed or out-of-range values are reported as errors so the
// process can fail before any input is read.
func Load() (Config, error) {
	cfg := Config{
		InputFile:   envOr("GOFLOW2_INPUT_FILE", "/dev/stdin"),
		ServiceName: envOr("SERVICE_NAME", "netflow-ingest"),
		InstanceID:  fallbackInstanceID(),
		LogLevel:    envOr("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.InfluxURL, err = must("INFLUXDB_URL"); err != nil {
		return Config{}, err
	}
	if cfg.InfluxToken, err = must("INFLUXDB_TOKEN"); err != nil {
		return Config{}, err
	}
	if cfg.InfluxOrg, err = must("INFLUXDB_ORG"); err != nil {
		return Config{}, err
	}
	if cfg.InfluxBucket, err = must("INFLUXDB_BUCKET"); err != nil {
		return Config{}, err
	}

	if cfg.BatchSize, err = envIntOr("BATCH_SIZE", 100); err != nil {
		return Config{}, err
	}
	if cfg.BatchSize <= 0 {
		return Config{}, fmt.Errorf("BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}

	flushSec, err := envIntOr("FLUSH_INTERVAL_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	if flushSec < 0 {
		return Config{}, fmt.Errorf("FLUSH_INTERVAL_SECONDS must not be negative, got %d", flushSec)
	}
	cfg.FlushInterval = time.Duration(flushSec) * time.Second

	if cfg.RetryAttempts, err = envIntOr("RETRY_ATTEMPTS", 3); err != nil {
		return Config{}, err
	}
	if cfg.RetryAttempts < 1 {
		return Config{}, fmt.Errorf("RETRY_ATTEMPTS must be at least 1, got %d", cfg.RetryAttempts)
	}

	delayMS, err := envIntOr("RETRY_DELAY_MS", 1000)
	if err != nil {
		return Config{}, err
	}
	if delayMS < 0 {
		return Config{}, fmt.Errorf("RETRY_DELAY_MS must not be negative, got %d", delayMS)
	}
	cfg.RetryDelay = time.Duration(delayMS) * time.Millisecond

	sampleN, err := envIntOr("LOG_SAMPLE_N", 0)
	if err != nil {
		return Config{}, err
	}
	if sampleN < 0 {
		return Config{}, fmt.Errorf("LOG_SAMPLE_N must not be negative, got %d", sampleN)
	}
	cfg.LogSampleN = uint32(sampleN)

	cfg.LogPretty = envBool("LOG_PRETTY")

	return cfg, nil
}

// must reports missing required env vars so startup fails
// before any input is consumed.
func must(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("missing required env: %s", key)
	}
	return v, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int env %s=%q: %w", key, v, err)
	}
	return n, nil
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

// fallbackInstanceID identifies this forwarder process in log output.
//   - default: hostname
//   - fallback: 12-char random hex
func fallbackInstanceID() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	var b [6]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
