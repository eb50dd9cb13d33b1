package sink

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"netflow-ingest/internal/metrics"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSink fails its first failUntil calls, then succeeds, recording
// every batch it was offered.
type stubSink struct {
	calls     int
	failUntil int
	err       error
	batches   [][]*write.Point
}

func (s *stubSink) WriteBatch(_ context.Context, points []*write.Point) error {
	s.calls++
	s.batches = append(s.batches, points)
	if s.calls <= s.failUntil {
		return s.err
	}
	return nil
}

func testPoints(n int) []*write.Point {
	points := make([]*write.Point, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, write.NewPoint("netflow",
			map[string]string{"src_addr": fmt.Sprintf("10.0.0.%d", i)},
			map[string]interface{}{"bytes": int64(i)},
			time.Unix(0, int64(i))))
	}
	return points
}

func TestFlushSucceedsFirstAttempt(t *testing.T) {
	s := &stubSink{}
	d := NewDispatcher(s, 3, time.Millisecond, metrics.New())

	err := d.Flush(context.Background(), testPoints(5))
	require.NoError(t, err)
	assert.Equal(t, 1, s.calls)
}

func TestFlushRecoversWithinBudget(t *testing.T) {
	// fails twice, succeeds on the third call; budget is exactly 3
	s := &stubSink{failUntil: 2, err: errors.New("sink unavailable")}
	m := metrics.New()
	d := NewDispatcher(s, 3, time.Millisecond, m)

	err := d.Flush(context.Background(), testPoints(4))
	require.NoError(t, err)
	assert.Equal(t, 3, s.calls)
	assert.Equal(t, int64(2), m.WriteErrorsTotal)
}

func TestFlushExhaustsBudget(t *testing.T) {
	last := errors.New("connection refused")
	s := &stubSink{failUntil: 100, err: last}
	m := metrics.New()
	d := NewDispatcher(s, 3, time.Millisecond, m)

	err := d.Flush(context.Background(), testPoints(7))
	require.Error(t, err)
	assert.Equal(t, 3, s.calls)
	assert.Equal(t, int64(3), m.WriteErrorsTotal)

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 7, de.BatchSize)
	assert.Equal(t, 3, de.Attempts)
	assert.ErrorIs(t, err, last)
	assert.Contains(t, err.Error(), "7 points")
	assert.Contains(t, err.Error(), "3 attempts")
}

func TestFlushPreservesBatchAcrossRetries(t *testing.T) {
	s := &stubSink{failUntil: 2, err: errors.New("boom")}
	d := NewDispatcher(s, 3, time.Millisecond, metrics.New())

	points := testPoints(3)
	require.NoError(t, d.Flush(context.Background(), points))

	// the very same slice, same order, every attempt
	require.Len(t, s.batches, 3)
	for _, got := range s.batches {
		require.Len(t, got, 3)
		for i := range points {
			assert.Same(t, points[i], got[i])
		}
	}
}

func TestFlushWaitsBetweenAttempts(t *testing.T) {
	s := &stubSink{failUntil: 2, err: errors.New("boom")}
	d := NewDispatcher(s, 3, 30*time.Millisecond, metrics.New())

	start := time.Now()
	require.NoError(t, d.Flush(context.Background(), testPoints(1)))
	// two failed attempts -> two fixed delays before the third call
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestFlushEmptyBatchIsNoop(t *testing.T) {
	s := &stubSink{}
	d := NewDispatcher(s, 3, time.Millisecond, metrics.New())

	require.NoError(t, d.Flush(context.Background(), nil))
	assert.Equal(t, 0, s.calls)
}

func TestFlushHonorsCancellation(t *testing.T) {
	s := &stubSink{failUntil: 100, err: errors.New("boom")}
	d := NewDispatcher(s, 5, time.Hour, metrics.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Flush(ctx, testPoints(2))
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not return after cancellation")
	}
	assert.LessOrEqual(t, s.calls, 1)
}
