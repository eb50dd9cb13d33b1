// internal/sink/dispatcher.go
package sink

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"netflow-ingest/internal/metrics"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog/log"
)

// DispatchError reports a batch whose retry budget is exhausted. The
// batch itself is not carried along: its data is dropped, and the
// caller only learns how much was lost and why the last attempt failed.
type DispatchError struct {
	BatchSize int   // points in the abandoned batch
	Attempts  int   // write attempts made
	Last      error // error from the final attempt
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to write batch of %d points after %d attempts: %v",
		e.BatchSize, e.Attempts, e.Last)
}

func (e *DispatchError) Unwrap() error {
	return e.Last
}

// Dispatcher flushes batches to a Sink with a bounded, fixed-delay
// retry policy. All attempts for one batch run sequentially; no second
// batch is ever in flight at the same time.
//
// The delay is constant across attempts. No exponential backoff, no
// jitter: correlated outages can produce synchronized retries, a known
// trade for predictable flush latency.
type Dispatcher struct {
	sink     Sink
	attempts int
	delay    time.Duration
	metrics  *metrics.Metrics
}

// NewDispatcher wires a dispatcher over the given sink. attempts must
// be at least 1 (enforced by config validation at startup).
func NewDispatcher(s Sink, attempts int, delay time.Duration, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		sink:     s,
		attempts: attempts,
		delay:    delay,
		metrics:  m,
	}
}

// Flush attempts to write the batch, retrying up to the attempt budget.
// On success it returns nil immediately. Once the budget is spent it
// returns a *DispatchError wrapping the last sink error. The points
// slice is passed to every attempt untouched: order preserved, nothing
// duplicated or dropped by the dispatcher itself.
//
// Context cancellation is honored before each attempt and during the
// inter-attempt delay.
func (d *Dispatcher) Flush(ctx context.Context, points []*write.Point) error {
	if len(points) == 0 {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.sink.WriteBatch(ctx, points); err == nil {
			log.Info().
				Int("points", len(points)).
				Msg("successfully wrote batch to InfluxDB")
			return nil
		} else {
			lastErr = err
			atomic.AddInt64(&d.metrics.WriteErrorsTotal, 1)
		}

		if attempt == d.attempts {
			break
		}

		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", d.attempts).
			Dur("retry_delay", d.delay).
			Msg("batch write failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.delay):
		}
	}

	return &DispatchError{
		BatchSize: len(points),
		Attempts:  d.attempts,
		Last:      lastErr,
	}
}
