// Package l4mysql detects a MySQL server's initial handshake packet:
// 3-byte little-endian payload length, 1-byte sequence ID, a protocol
// version byte, and a NUL-terminated server version string.
package l4mysql

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const (
	protoVersion10 = 10 // classic protocol
	protoVersion9  = 9  // legacy protocol
)

// Detector recognizes the MySQL server handshake packet.
type Detector struct{}

// New returns a MySQL Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.MySQL }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < 5 {
		return layer7.NeedMoreData()
	}
	payloadLen, _ := byteview.LEUint24(buf, 0)
	// buf[3] is the sequence ID; conventionally 0, but any value is valid.
	protoVer := buf[4]
	if protoVer != protoVersion10 && protoVer != protoVersion9 {
		return layer7.NoMatch()
	}
	if payloadLen < 1 {
		return layer7.NoMatch()
	}

	payloadEnd := 4 + int(payloadLen)
	searchEnd := payloadEnd
	truncated := false
	if searchEnd > len(buf) {
		searchEnd = len(buf)
		truncated = true
	}

	versionBytes, ok := byteview.Slice(buf, 5, searchEnd)
	if !ok {
		return layer7.NeedMoreData()
	}
	if byteview.IndexByte(versionBytes, 0) >= 0 {
		return layer7.Matched(layer7.MySQL, layer7.Unversioned)
	}
	if truncated {
		return layer7.NeedMoreData()
	}
	return layer7.NoMatch()
}
