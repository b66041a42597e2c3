// Package l4sip detects a SIP request or status line. SIP methods overlap
// with HTTP's (OPTIONS) and with RTSP's shape, so a match is only decided
// by the trailing "SIP/2.0" version token, never by the method alone.
package l4sip

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var statusPrefix = []byte("SIP/2.0 ")
var versionToken = []byte("SIP/2.0")

var methods = [][]byte{
	[]byte("INVITE"),
	[]byte("ACK"),
	[]byte("BYE"),
	[]byte("CANCEL"),
	[]byte("OPTIONS"),
	[]byte("REGISTER"),
	[]byte("SUBSCRIBE"),
	[]byte("NOTIFY"),
	[]byte("MESSAGE"),
	[]byte("INFO"),
	[]byte("REFER"),
	[]byte("UPDATE"),
	[]byte("PRACK"),
	[]byte("PUBLISH"),
}

// Detector recognizes a SIP request or status line.
type Detector struct{}

// New returns a SIP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.SIP }
func (*Detector) Transports() layer7.TransportSet { return layer7.AnyTransport }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	switch {
	case byteview.HasPrefixFold(buf, statusPrefix):
		if len(buf) < len(statusPrefix)+3 {
			return layer7.NeedMoreData()
		}
		for i := 0; i < 3; i++ {
			c := buf[len(statusPrefix)+i]
			if c < '0' || c > '9' {
				return layer7.NoMatch()
			}
		}
		return layer7.Matched(layer7.SIP, layer7.Unversioned)
	case byteview.HasPrefixFold(statusPrefix, buf):
		return layer7.NeedMoreData()
	}

	return matchRequestLine(buf)
}

func matchRequestLine(buf []byte) layer7.Outcome {
	sp := byteview.IndexByte(buf, ' ')
	if sp < 0 {
		for _, m := range methods {
			if byteview.HasPrefixFold(m, buf) {
				return layer7.NeedMoreData()
			}
		}
		return layer7.NoMatch()
	}

	method := buf[:sp]
	known := false
	for _, m := range methods {
		if byteview.EqualASCIIFold(method, m, true) {
			known = true
			break
		}
	}
	if !known {
		return layer7.NoMatch()
	}

	rest := buf[sp+1:]
	lf := byteview.IndexByte(rest, '\n')
	if lf < 0 {
		return layer7.NeedMoreData()
	}
	line := rest[:lf]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	if len(line) < len(versionToken) {
		return layer7.NoMatch()
	}
	tail := line[len(line)-len(versionToken):]
	if byteview.EqualASCIIFold(tail, versionToken, false) {
		return layer7.Matched(layer7.SIP, layer7.Unversioned)
	}
	return layer7.NoMatch()
}
