// internal/transform/transform.go
package transform

import (
	"time"

	"netflow-ingest/internal/model"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement is the InfluxDB measurement name all flow points share.
const Measurement = "netflow"

// Point maps one in-scope flow record to its InfluxDB point.
//
// Tags carry the dimensions worth indexing (flow type, endpoints,
// protocol, sampler); the numeric observations go into fields. The
// point timestamp is the collector's receipt time, not the flow's own
// start/end time, so points land in arrival order and retried writes
// dedup cleanly in the sink.
//
// The mapping is total: any well-formed record yields exactly one
// point, with no validation or clamping of the numeric values.
func Point(rec *model.FlowRecord) *write.Point {
	return write.NewPoint(
		Measurement,
		map[string]string{
			"flow_type":       rec.Type,
			"src_addr":        rec.SrcAddr,
			"dst_addr":        rec.DstAddr,
			"proto":           rec.Proto,
			"sampler_address": rec.SamplerAddress,
		},
		map[string]interface{}{
			"bytes":              int64(rec.Bytes),
			"packets":            int64(rec.Packets),
			"src_port":           int64(rec.SrcPort),
			"dst_port":           int64(rec.DstPort),
			"sequence_num":       int64(rec.SequenceNum),
			"sampling_rate":      int64(rec.SamplingRate),
			"time_flow_start_ns": int64(rec.TimeFlowStartNs),
			"time_flow_end_ns":   int64(rec.TimeFlowEndNs),
			"in_if":              int64(rec.InIf),
			"out_if":             int64(rec.OutIf),
		},
		time.Unix(0, int64(rec.TimeReceivedNs)),
	)
}
