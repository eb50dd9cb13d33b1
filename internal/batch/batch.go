// internal/batch/batch.go
package batch

import (
	"fmt"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Accumulator collects points up to a fixed capacity. It never flushes
// on its own: the ingestion loop checks Full after each Append and
// decides when to Drain. Not safe for concurrent use; the loop is the
// only owner.
type Accumulator struct {
	capacity int
	points   []*write.Point
}

// New returns an accumulator with the given capacity. Capacity must be
// positive; a zero or negative value is a configuration mistake and is
// rejected here rather than surfacing mid-stream.
func New(capacity int) (*Accumulator, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("batch capacity must be positive, got %d", capacity)
	}
	return &Accumulator{
		capacity: capacity,
		points:   make([]*write.Point, 0, capacity),
	}, nil
}

// Append adds a point at the tail. Insertion order is arrival order.
func (a *Accumulator) Append(p *write.Point) {
	a.points = append(a.points, p)
}

// Full reports whether the accumulator has reached capacity.
func (a *Accumulator) Full() bool {
	return len(a.points) >= a.capacity
}

// Len returns the number of pending points.
func (a *Accumulator) Len() int {
	return len(a.points)
}

// Drain hands over the accumulated points and resets to empty. The
// returned slice is owned by the caller; a fresh slice backs the next
// batch so a retried write can never see later appends.
func (a *Accumulator) Drain() []*write.Point {
	out := a.points
	a.points = make([]*write.Point, 0, a.capacity)
	return out
}
