// internal/sink/sink.go
package sink

import (
	"context"

	"netflow-ingest/internal/config"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Sink is the single capability the pipeline needs from the storage
// backend: write one batch of points, synchronously, or say why not.
// No dedup guarantee is expected of implementations; a retried write
// that later succeeds may leave duplicates.
type Sink interface {
	WriteBatch(ctx context.Context, points []*write.Point) error
}

// InfluxSink writes batches to an InfluxDB v2 bucket over the blocking
// write API. One write call per batch; the client's own batching and
// background retry stay disabled so the dispatcher keeps full control
// of the retry policy.
type InfluxSink struct {
	client influxdb2.Client
	api    api.WriteAPIBlocking
}

// NewInflux builds the client from the validated startup config. The
// client is lazy: a bad URL or token surfaces on the first write, not
// here.
func NewInflux(cfg config.Config) *InfluxSink {
	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	return &InfluxSink{
		client: client,
		api:    client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
	}
}

func (s *InfluxSink) WriteBatch(ctx context.Context, points []*write.Point) error {
	return s.api.WritePoint(ctx, points...)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
