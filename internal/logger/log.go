// internal/logger/log.go
package logger

import (
	"io"
	"os"
	"strings"

	"netflow-ingest/internal/config"

	stdlog "log"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger once at startup.
//
//   - LOG_PRETTY=true: human-readable console output for local runs.
//   - otherwise: plain JSON on stdout for log shippers.
//
// Every line carries constant "service" and "instance" fields so output
// from several forwarder processes can be told apart. With LOG_SAMPLE_N
// set, debug/info lines are sampled 1-in-N; warn/error are never
// sampled.
func Init(cfg config.Config) {
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel))); err == nil {
		level = l
	}

	zerolog.SetGlobalLevel(level)

	var w io.Writer
	if cfg.LogPretty {
		w = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	} else {
		w = os.Stdout
	}

	base := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("instance", cfg.InstanceID).
		Logger()

	logger := base
	if cfg.LogSampleN > 1 {
		logger = base.Sample(&zerolog.LevelSampler{
			DebugSampler: &zerolog.BasicSampler{N: cfg.LogSampleN},
			InfoSampler:  &zerolog.BasicSampler{N: cfg.LogSampleN},
			// warn/error stay unsampled
		})
	}

	zlog.Logger = logger

	// route stdlib log through zerolog as well
	stdlog.SetFlags(0)
	stdlog.SetOutput(zlog.Logger)
}
