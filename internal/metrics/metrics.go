package metrics

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics is the set of running counters the forwarder maintains for
// observability. All fields are updated with atomic adds and mirror the
// pipeline's own Stats; they exist so the final summary (and a debug
// dump at any point) reads from one place.
type Metrics struct {
	// FlowsProcessedTotal counts lines that decoded into a valid flow
	// record, regardless of scope.
	FlowsProcessedTotal int64

	// ParseErrorsTotal counts malformed lines that were skipped. Blank
	// lines are ignored silently and counted nowhere.
	ParseErrorsTotal int64

	// FlowsFilteredTotal counts valid records excluded by the
	// private-address scope filter.
	FlowsFilteredTotal int64

	// FlowsAcceptedTotal counts records that passed the filter and were
	// turned into points.
	FlowsAcceptedTotal int64

	// BatchesWrittenTotal / BatchesFailedTotal count batch dispatch
	// outcomes after the retry budget is spent.
	BatchesWrittenTotal int64
	BatchesFailedTotal  int64

	// PointsWrittenTotal counts points in successfully written batches.
	// Points in a failed batch are gone and show up nowhere else.
	PointsWrittenTotal int64

	// WriteErrorsTotal counts individual failed write attempts. With
	// retries this can rise by several per batch.
	WriteErrorsTotal int64
}

func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) String() string {
	var sb strings.Builder
	sb.Grow(256)

	fmt.Fprintf(&sb, "flows_processed_total=%d\n", atomic.LoadInt64(&m.FlowsProcessedTotal))
	fmt.Fprintf(&sb, "parse_errors_total=%d\n", atomic.LoadInt64(&m.ParseErrorsTotal))
	fmt.Fprintf(&sb, "flows_filtered_total=%d\n", atomic.LoadInt64(&m.FlowsFilteredTotal))
	fmt.Fprintf(&sb, "flows_accepted_total=%d\n", atomic.LoadInt64(&m.FlowsAcceptedTotal))

	fmt.Fprintf(&sb, "batches_written_total=%d\n", atomic.LoadInt64(&m.BatchesWrittenTotal))
	fmt.Fprintf(&sb, "batches_failed_total=%d\n", atomic.LoadInt64(&m.BatchesFailedTotal))
	fmt.Fprintf(&sb, "points_written_total=%d\n", atomic.LoadInt64(&m.PointsWrittenTotal))
	fmt.Fprintf(&sb, "write_errors_total=%d\n", atomic.LoadInt64(&m.WriteErrorsTotal))

	return sb.String()
}
