// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"netflow-ingest/internal/batch"
	"netflow-ingest/internal/metrics"
	"netflow-ingest/internal/model"
	"netflow-ingest/internal/scope"
	"netflow-ingest/internal/sink"
	"netflow-ingest/internal/source"
	"netflow-ingest/internal/transform"

	"github.com/rs/zerolog/log"
)

// progressEvery controls the periodic progress summary.
const progressEvery = 1000

// Stats is the counter set one Run accumulates. It is a plain value
// threaded through the loop and returned to the caller; nothing global.
type Stats struct {
	Processed      uint64 // lines that decoded into a flow record
	ParseFailures  uint64 // malformed lines skipped
	FilteredOut    uint64 // records excluded by the scope filter
	Accepted       uint64 // records transformed and batched
	BatchesFlushed uint64 // batches the dispatcher wrote
	BatchesFailed  uint64 // batches dropped after retry exhaustion
	PointsWritten  uint64 // points in successfully written batches
}

// Pipeline drives the whole ingest flow on a single goroutine:
//
//	read line -> parse -> scope filter -> transform -> accumulate
//	-> flush on full batch -> pace -> repeat
//
// with a final drain of the partial batch at end of stream. The only
// mutable state is the current batch and the counters, both owned here;
// nothing runs concurrently, so write order always matches the arrival
// order of in-scope records.
type Pipeline struct {
	src     source.Source
	disp    *sink.Dispatcher
	acc     *batch.Accumulator
	pace    time.Duration
	metrics *metrics.Metrics
}

func New(src source.Source, disp *sink.Dispatcher, acc *batch.Accumulator, pace time.Duration, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		src:     src,
		disp:    disp,
		acc:     acc,
		pace:    pace,
		metrics: m,
	}
}

// Run consumes the source until end of stream (or until ctx is
// cancelled), then drains the remaining partial batch once, without a
// pacing delay, and returns the final counters. No per-record error is
// ever fatal: malformed lines and exhausted batches are logged and
// counted, and the loop keeps going. The returned error is only
// non-nil when the source itself failed mid-stream.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	var st Stats

	log.Info().Msg("starting to process flow data")

	for p.src.Scan() {
		if ctx.Err() != nil {
			log.Info().Msg("shutdown requested, draining current batch")
			break
		}

		line := p.src.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := model.ParseLine(line)
		if err != nil {
			st.ParseFailures++
			atomic.AddInt64(&p.metrics.ParseErrorsTotal, 1)
			log.Warn().Err(err).Str("line", line).Msg("failed to parse JSON line")
			continue
		}

		st.Processed++
		atomic.AddInt64(&p.metrics.FlowsProcessedTotal, 1)

		if !scope.PrivateIPv4(rec.SrcAddr) {
			st.FilteredOut++
			atomic.AddInt64(&p.metrics.FlowsFilteredTotal, 1)
			continue
		}

		st.Accepted++
		atomic.AddInt64(&p.metrics.FlowsAcceptedTotal, 1)
		p.acc.Append(transform.Point(rec))

		if p.acc.Full() {
			p.flush(ctx, &st)
			p.pause(ctx)
		}

		if st.Processed%progressEvery == 0 {
			log.Info().
				Uint64("processed", st.Processed).
				Uint64("filtered", st.FilteredOut).
				Int("pending", p.acc.Len()).
				Msg("progress")
		}
	}

	// End of stream: one final flush for the partial batch, no pacing.
	// Detached from ctx so a shutdown signal still gets its drain; the
	// retry budget bounds how long this can take.
	p.flush(context.Background(), &st)

	err := p.src.Err()
	if err != nil {
		log.Error().Err(err).Msg("input stream error")
	}
	return st, err
}

// flush drains the current batch and hands it to the dispatcher. A
// dispatch failure after retry exhaustion is logged and counted, never
// propagated: the batch's data is dropped and ingestion continues.
func (p *Pipeline) flush(ctx context.Context, st *Stats) {
	points := p.acc.Drain()
	if len(points) == 0 {
		return
	}

	if err := p.disp.Flush(ctx, points); err != nil {
		st.BatchesFailed++
		atomic.AddInt64(&p.metrics.BatchesFailedTotal, 1)
		log.Error().Err(err).Msg("failed to write batch to InfluxDB")
		return
	}

	st.BatchesFlushed++
	st.PointsWritten += uint64(len(points))
	atomic.AddInt64(&p.metrics.BatchesWrittenTotal, 1)
	atomic.AddInt64(&p.metrics.PointsWrittenTotal, int64(len(points)))
}

// pause inserts the configured delay after a flush. A self-imposed rate
// limit on sink write frequency, independent of any backpressure the
// sink itself applies.
func (p *Pipeline) pause(ctx context.Context) {
	if p.pace <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(p.pace):
	}
}
