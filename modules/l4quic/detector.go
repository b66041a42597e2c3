// Package l4quic detects QUIC Initial packets by their long-header form,
// fixed bit, packet type, and version.
package l4quic

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const (
	// longHeaderMask isolates header-form (bit 7), fixed-bit (bit 6) and
	// packet-type (bits 5-4) from the first byte.
	longHeaderMask            = 0xF0
	longHeaderInitialPattern  = 0xC0 // 1 1 00 xxxx: long header, fixed bit set, Initial
	maxDCIDLen                = 20
	versionFieldOff           = 1
	dcidLenOff                = 5

	quicV1            = 0x00000001
	quicV2DraftFinal  = 0x6b3343cf
)

// Detector recognizes QUIC Initial packets on UDP.
type Detector struct{}

// New returns a QUIC Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.QUIC }
func (*Detector) Transports() layer7.TransportSet { return layer7.UDPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) == 0 {
		return layer7.NeedMoreData()
	}
	if buf[0]&longHeaderMask != longHeaderInitialPattern {
		return layer7.NoMatch()
	}
	if len(buf) < versionFieldOff+4 {
		return layer7.NeedMoreData()
	}
	version, _ := byteview.Uint32(buf, versionFieldOff)
	if version == 0 || !isKnownVersion(version) {
		return layer7.NoMatch()
	}
	if len(buf) < dcidLenOff+1 {
		return layer7.NeedMoreData()
	}
	if buf[dcidLenOff] > maxDCIDLen {
		return layer7.NoMatch()
	}
	return layer7.Matched(layer7.QUIC, layer7.Unversioned)
}

func isKnownVersion(v uint32) bool {
	switch v {
	case quicV1, quicV2DraftFinal:
		return true
	}
	// IETF draft family: 0xff000000 | draft-number.
	return v>>24 == 0xff
}
