// Package l4rtsp detects an RTSP request or status line. Like SIP, RTSP's
// request-line shape and several method names overlap with HTTP and SIP,
// so a match is only decided by the trailing "RTSP/1.0" or "RTSP/2.0"
// version token.
package l4rtsp

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var statusPrefixes = [][]byte{
	[]byte("RTSP/1.0 "),
	[]byte("RTSP/2.0 "),
}

var versionTokens = [][]byte{
	[]byte("RTSP/1.0"),
	[]byte("RTSP/2.0"),
}

var methods = [][]byte{
	[]byte("DESCRIBE"),
	[]byte("SETUP"),
	[]byte("PLAY"),
	[]byte("PAUSE"),
	[]byte("TEARDOWN"),
	[]byte("OPTIONS"),
	[]byte("ANNOUNCE"),
	[]byte("RECORD"),
	[]byte("GET_PARAMETER"),
	[]byte("SET_PARAMETER"),
	[]byte("REDIRECT"),
}

// Detector recognizes an RTSP request or status line.
type Detector struct{}

// New returns an RTSP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.RTSP }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	needMore := false
	for _, prefix := range statusPrefixes {
		if byteview.HasPrefixFold(buf, prefix) {
			if len(buf) < len(prefix)+3 {
				return layer7.NeedMoreData()
			}
			allDigits := true
			for i := 0; i < 3; i++ {
				c := buf[len(prefix)+i]
				if c < '0' || c > '9' {
					allDigits = false
					break
				}
			}
			if allDigits {
				return layer7.Matched(layer7.RTSP, layer7.Unversioned)
			}
			return layer7.NoMatch()
		}
		if byteview.HasPrefixFold(prefix, buf) {
			needMore = true
		}
	}
	if needMore {
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
	for _, tok := range versionTokens {
		if len(line) < len(tok) {
			continue
		}
		tail := line[len(line)-len(tok):]
		if byteview.EqualASCIIFold(tail, tok, false) {
			return layer7.Matched(layer7.RTSP, layer7.Unversioned)
		}
	}
	return layer7.NoMatch()
}
