// Package l4http detects HTTP/1.x request lines and the HTTP/2 client
// connection preface.
package l4http

import (
	"golang.org/x/net/http2"

	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var methods = [...]string{
	"GET ", "HEAD ", "POST ", "PUT ", "DELETE ",
	"OPTIONS ", "PATCH ", "TRACE ", "CONNECT ",
}

var versionTokens = [...]struct {
	token   string
	version layer7.Version
}{
	{"HTTP/1.0", layer7.HTTPv1_0},
	{"HTTP/1.1", layer7.HTTPv1_1},
	{"HTTP/2.0", layer7.HTTPv2_0},
}

const versionTokenLen = len("HTTP/1.1")

// Detector recognizes HTTP request lines (GET, POST, ... followed by a
// request-target and an HTTP/1.0, HTTP/1.1 or HTTP/2.0 version token) and
// the exact 24-byte
// HTTP/2 client preface.
type Detector struct{}

// New returns an HTTP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.HTTP }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if outcome, ok := tryH2Preface(buf); ok {
		return outcome
	}
	return tryRequestLine(buf)
}

// tryH2Preface reports a match (or ambiguity) against http2.ClientPreface,
// the literal "PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n" bytes every HTTP/2 client
// sends before any frame. ok is false if buf has already diverged from the
// preface, leaving the request-line path to decide.
func tryH2Preface(buf []byte) (layer7.Outcome, bool) {
	preface := []byte(http2.ClientPreface)
	n := len(buf)
	if n > len(preface) {
		n = len(preface)
	}
	if !byteview.EqualASCIIFold(buf[:n], preface[:n], false) {
		return layer7.Outcome{}, false
	}
	if len(buf) < len(preface) {
		return layer7.NeedMoreData(), true
	}
	return layer7.Matched(layer7.HTTP, layer7.HTTPv2_0), true
}

func tryRequestLine(buf []byte) layer7.Outcome {
	methodEnd, status := matchMethod(buf)
	switch status {
	case matchNone:
		return layer7.NoMatch()
	case matchPartial:
		return layer7.NeedMoreData()
	}

	sp := byteview.IndexByte(buf[methodEnd:], ' ')
	if sp < 0 {
		// request-target isn't terminated by a space yet within the view.
		return layer7.NeedMoreData()
	}
	versionStart := methodEnd + sp + 1
	remaining := buf[versionStart:]

	if len(remaining) >= versionTokenLen {
		for _, vt := range versionTokens {
			if byteview.EqualASCIIFold(remaining[:versionTokenLen], []byte(vt.token), false) {
				return layer7.Matched(layer7.HTTP, vt.version)
			}
		}
		return layer7.NoMatch()
	}
	for _, vt := range versionTokens {
		if byteview.HasPrefix([]byte(vt.token), remaining) {
			return layer7.NeedMoreData()
		}
	}
	return layer7.NoMatch()
}

type methodStatus int

const (
	matchNone methodStatus = iota
	matchPartial
	matchFull
)

// matchMethod finds the method token at the start of buf. It returns the
// byte offset just past the token (including its trailing space) and
// matchFull, matchPartial if buf is too short but a prefix of some method,
// or matchNone if buf has already diverged from every method.
func matchMethod(buf []byte) (end int, status methodStatus) {
	partial := false
	for _, m := range methods {
		mb := []byte(m)
		if len(buf) >= len(mb) {
			if byteview.EqualASCIIFold(buf[:len(mb)], mb, false) {
				return len(mb), matchFull
			}
			continue
		}
		if byteview.EqualASCIIFold(buf, mb[:len(buf)], false) {
			partial = true
		}
	}
	if partial {
		return 0, matchPartial
	}
	return 0, matchNone
}
