package batch

import (
	"fmt"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(i int) *write.Point {
	return write.NewPoint("netflow",
		map[string]string{"src_addr": fmt.Sprintf("10.0.0.%d", i)},
		map[string]interface{}{"bytes": int64(i)},
		time.Unix(0, int64(i)))
}

func TestNewRejectsBadCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		acc, err := New(capacity)
		assert.Error(t, err, "capacity=%d", capacity)
		assert.Nil(t, acc)
	}
}

func TestAppendFullDrain(t *testing.T) {
	acc, err := New(3)
	require.NoError(t, err)

	assert.False(t, acc.Full())
	assert.Equal(t, 0, acc.Len())

	acc.Append(point(1))
	acc.Append(point(2))
	assert.False(t, acc.Full())
	assert.Equal(t, 2, acc.Len())

	acc.Append(point(3))
	assert.True(t, acc.Full())
	assert.Equal(t, 3, acc.Len())

	got := acc.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, 0, acc.Len())
	assert.False(t, acc.Full())

	// insertion order preserved
	for i, p := range got {
		assert.Equal(t, time.Unix(0, int64(i+1)), p.Time())
	}
}

func TestDrainEmpty(t *testing.T) {
	acc, err := New(5)
	require.NoError(t, err)
	assert.Empty(t, acc.Drain())
}

func TestDrainDetachesBatch(t *testing.T) {
	acc, err := New(2)
	require.NoError(t, err)

	acc.Append(point(1))
	acc.Append(point(2))
	first := acc.Drain()

	// appends after a drain must not leak into the drained slice
	acc.Append(point(3))
	require.Len(t, first, 2)
	assert.Equal(t, time.Unix(0, 1), first[0].Time())
	assert.Equal(t, time.Unix(0, 2), first[1].Time())
	assert.Equal(t, 1, acc.Len())
}
