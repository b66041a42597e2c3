// Package l4ntp detects an NTP packet by its leading LI/VN/Mode byte and
// minimum packet length.
package l4ntp

import "github.com/divyam234/protosniff/layer7"

const minPacketLen = 48

// Detector recognizes an NTP packet header.
type Detector struct{}

// New returns an NTP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.NTP }
func (*Detector) Transports() layer7.TransportSet { return layer7.UDPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < 1 {
		return layer7.NeedMoreData()
	}
	b := buf[0]
	vn := (b >> 3) & 0x07
	mode := b & 0x07
	if vn < 1 || vn > 4 {
		return layer7.NoMatch()
	}
	if mode < 1 || mode > 5 {
		return layer7.NoMatch()
	}
	if len(buf) < minPacketLen {
		return layer7.NeedMoreData()
	}
	return layer7.Matched(layer7.NTP, layer7.Unversioned)
}
