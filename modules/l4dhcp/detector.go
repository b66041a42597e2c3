// Package l4dhcp detects a DHCP/BOOTP message by its op/htype/hlen sanity
// fields and, once the full fixed header is visible, the magic cookie.
package l4dhcp

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const (
	fixedHeaderLen = 240
	magicCookie    = 0x63825363
	maxHardwareLen = 16
)

// Detector recognizes a DHCP/BOOTP message.
type Detector struct{}

// New returns a DHCP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.DHCP }
func (*Detector) Transports() layer7.TransportSet { return layer7.UDPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < 1 {
		return layer7.NeedMoreData()
	}
	op := buf[0]
	if op != 1 && op != 2 {
		return layer7.NoMatch()
	}
	if len(buf) < 2 {
		return layer7.NeedMoreData()
	}
	if !validHType(buf[1]) {
		return layer7.NoMatch()
	}
	if len(buf) < 3 {
		return layer7.NeedMoreData()
	}
	if buf[2] > maxHardwareLen {
		return layer7.NoMatch()
	}

	if len(buf) < fixedHeaderLen {
		return layer7.NeedMoreData()
	}
	cookie, _ := byteview.Uint32(buf, fixedHeaderLen-4)
	if cookie != magicCookie {
		return layer7.NoMatch()
	}
	return layer7.Matched(layer7.DHCP, layer7.Unversioned)
}

// validHType checks the hardware-type byte against the ARP hardware types
// DHCP traffic is overwhelmingly seen with (Ethernet, IEEE 802).
func validHType(h byte) bool {
	switch h {
	case 1, 6:
		return true
	default:
		return false
	}
}
