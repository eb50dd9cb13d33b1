package main

import (
	"context"
	stdlog "log"
	"os/signal"
	"syscall"

	"netflow-ingest/internal/batch"
	"netflow-ingest/internal/config"
	"netflow-ingest/internal/logger"
	"netflow-ingest/internal/metrics"
	"netflow-ingest/internal/pipeline"
	"netflow-ingest/internal/sink"
	"netflow-ingest/internal/source"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Config errors are fatal before any input is read. The zerolog
	// setup needs the config, so these go through stdlib log.
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("[FATAL] config: %v", err)
	}

	logger.Init(cfg)
	m := metrics.New()

	log.Info().
		Str("influx_url", cfg.InfluxURL).
		Str("org", cfg.InfluxOrg).
		Str("bucket", cfg.InfluxBucket).
		Str("input", cfg.InputFile).
		Int("batch_size", cfg.BatchSize).
		Dur("flush_interval", cfg.FlushInterval).
		Int("retry_attempts", cfg.RetryAttempts).
		Dur("retry_delay", cfg.RetryDelay).
		Msg("starting netflow-ingest")

	// An unavailable input source is fatal, same as bad config.
	src, err := source.Open(cfg.InputFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.InputFile).Msg("cannot open input source")
	}
	defer src.Close()

	influx := sink.NewInflux(cfg)
	defer influx.Close()

	disp := sink.NewDispatcher(influx, cfg.RetryAttempts, cfg.RetryDelay, m)

	acc, err := batch.New(cfg.BatchSize)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid batch configuration")
	}

	// SIGINT/SIGTERM stop the read loop; the in-flight batch gets one
	// final flush before exit.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(src, disp, acc, cfg.FlushInterval, m)
	st, runErr := p.Run(ctx)

	log.Debug().Str("counters", m.String()).Msg("final counters")
	log.Info().
		Uint64("processed", st.Processed).
		Uint64("parse_failures", st.ParseFailures).
		Uint64("filtered", st.FilteredOut).
		Uint64("accepted", st.Accepted).
		Uint64("batches_written", st.BatchesFlushed).
		Uint64("batches_failed", st.BatchesFailed).
		Uint64("points_written", st.PointsWritten).
		Msg("processing completed")

	// A mid-stream read error is reported but, like individual batch
	// failures, does not change the exit status: everything readable
	// was processed.
	if runErr != nil {
		log.Error().Err(runErr).Msg("input ended with error")
	}
}
