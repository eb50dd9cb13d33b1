// internal/model/flow.go
package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// FlowRecord is one flow observation as emitted by goflow2 in JSON
// format, one object per line. It is the basic unit of the whole
// pipeline: parse -> scope filter -> transform -> batch -> InfluxDB.
//
// The core fields below always appear in goflow2 output; the pointer
// fields are optional and pass through untouched. No range validation
// happens here: whatever the collector emitted is what gets forwarded.
type FlowRecord struct {
	Type            string `json:"type"` // "SFLOW_5", "NETFLOW_V9", "IPFIX", ...
	TimeReceivedNs  uint64 `json:"time_received_ns"`
	SequenceNum     uint32 `json:"sequence_num"`
	SamplingRate    uint32 `json:"sampling_rate"`
	SamplerAddress  string `json:"sampler_address"`
	TimeFlowStartNs uint64 `json:"time_flow_start_ns"`
	TimeFlowEndNs   uint64 `json:"time_flow_end_ns"`
	Bytes           uint64 `json:"bytes"`
	Packets         uint64 `json:"packets"`
	SrcAddr         string `json:"src_addr"`
	DstAddr         string `json:"dst_addr"`
	Etype           string `json:"etype"`
	Proto           string `json:"proto"`
	SrcPort         uint16 `json:"src_port"`
	DstPort         uint16 `json:"dst_port"`
	InIf            uint32 `json:"in_if"`
	OutIf           uint32 `json:"out_if"`

	SrcMac              *string  `json:"src_mac,omitempty"`
	DstMac              *string  `json:"dst_mac,omitempty"`
	SrcVlan             *uint16  `json:"src_vlan,omitempty"`
	DstVlan             *uint16  `json:"dst_vlan,omitempty"`
	VlanID              *uint16  `json:"vlan_id,omitempty"`
	IPTos               *uint8   `json:"ip_tos,omitempty"`
	ForwardingStatus    *uint8   `json:"forwarding_status,omitempty"`
	IPTTL               *uint8   `json:"ip_ttl,omitempty"`
	IPFlags             *uint16  `json:"ip_flags,omitempty"`
	TCPFlags            *uint16  `json:"tcp_flags,omitempty"`
	ICMPType            *uint8   `json:"icmp_type,omitempty"`
	ICMPCode            *uint8   `json:"icmp_code,omitempty"`
	IPv6FlowLabel       *uint32  `json:"ipv6_flow_label,omitempty"`
	FragmentID          *uint32  `json:"fragment_id,omitempty"`
	FragmentOffset      *uint32  `json:"fragment_offset,omitempty"`
	SrcAS               *uint32  `json:"src_as,omitempty"`
	DstAS               *uint32  `json:"dst_as,omitempty"`
	NextHop             *string  `json:"next_hop,omitempty"`
	NextHopAS           *uint32  `json:"next_hop_as,omitempty"`
	SrcNet              *string  `json:"src_net,omitempty"`
	DstNet              *string  `json:"dst_net,omitempty"`
	BGPNextHop          *string  `json:"bgp_next_hop,omitempty"`
	BGPCommunities      []string `json:"bgp_communities,omitempty"`
	ASPath              []uint32 `json:"as_path,omitempty"`
	MPLSTTL             []uint8  `json:"mpls_ttl,omitempty"`
	MPLSLabel           []uint32 `json:"mpls_label,omitempty"`
	MPLSIP              []string `json:"mpls_ip,omitempty"`
	ObservationDomainID *uint32  `json:"observation_domain_id,omitempty"`
	ObservationPointID  *uint32  `json:"observation_point_id,omitempty"`
}

// ParseLine decodes one input line into a FlowRecord. A malformed line
// yields an error, never a partial record; callers skip the line and
// keep reading. Blank-line filtering is the caller's job.
func ParseLine(line string) (*FlowRecord, error) {
	var rec FlowRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, fmt.Errorf("decode flow record: %w", err)
	}
	return &rec, nil
}
