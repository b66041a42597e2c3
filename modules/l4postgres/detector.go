// Package l4postgres detects PostgreSQL's client-to-server StartupMessage
// and SSLRequest preambles.
//
// Adapted from the connection-oriented matcher this module started from:
// the original walked the full StartupMessage parameter list byte by byte
// off an io.Reader. Detection here only needs the two fixed-offset fields
// the wire protocol guarantees are present before any parameter appears
// (spec §4.3), read from a borrowed slice with no allocation.
package l4postgres

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const (
	// sslRequestCode is the SSLRequest magic, 80877103 decimal / 0x04D2162F.
	sslRequestCode = 0x04D2162F
	// startupProtocolVersion is PostgreSQL protocol 3.0.
	startupProtocolVersion = 0x00030000

	minMessageLength    = 8
	maxStartupMsgLength = 10000
)

// Detector recognizes a PostgreSQL StartupMessage or SSLRequest.
type Detector struct{}

// New returns a PostgreSQL Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.PostgreSQL }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < 4 {
		return layer7.NeedMoreData()
	}
	length, _ := byteview.Uint32(buf, 0)
	if length < minMessageLength || length > maxStartupMsgLength {
		return layer7.NoMatch()
	}
	if len(buf) < 8 {
		return layer7.NeedMoreData()
	}
	code, _ := byteview.Uint32(buf, 4)

	if length == minMessageLength && code == sslRequestCode {
		return layer7.Matched(layer7.PostgreSQL, layer7.Unversioned)
	}
	if code == startupProtocolVersion {
		return layer7.Matched(layer7.PostgreSQL, layer7.Unversioned)
	}
	return layer7.NoMatch()
}
