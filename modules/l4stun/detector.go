// Package l4stun detects a STUN message by its leading zero bits, length
// field, and magic cookie.
package l4stun

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const magicCookie = 0x2112A442

// Detector recognizes a STUN message header.
type Detector struct{}

// New returns a STUN Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.STUN }
func (*Detector) Transports() layer7.TransportSet { return layer7.UDPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < 1 {
		return layer7.NeedMoreData()
	}
	if buf[0]&0xC0 != 0 {
		return layer7.NoMatch()
	}
	if len(buf) < 4 {
		return layer7.NeedMoreData()
	}
	length, _ := byteview.Uint16(buf, 2)
	if length%4 != 0 {
		return layer7.NoMatch()
	}
	if len(buf) < 8 {
		return layer7.NeedMoreData()
	}
	cookie, _ := byteview.Uint32(buf, 4)
	if cookie != magicCookie {
		return layer7.NoMatch()
	}
	return layer7.Matched(layer7.STUN, layer7.Unversioned)
}
