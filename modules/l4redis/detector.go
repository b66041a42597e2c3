// Package l4redis detects Redis RESP array commands and RESP inline
// commands, and distinguishes RESP2 from RESP3 via a visible HELLO
// handshake.
package l4redis

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

// knownCommands are the command tokens this detector recognizes, matched
// case-insensitively. Not exhaustive of the Redis command set -- just
// enough to decide "this looks like Redis" with confidence.
var knownCommands = [...]string{
	"PING", "HELLO", "AUTH", "SELECT", "COMMAND", "CLIENT",
	"GET", "SET", "INFO", "QUIT", "SUBSCRIBE",
}

const helloCmd = "HELLO"

// Detector recognizes RESP array commands ("*<n>\r\n$<len>\r\n<cmd>\r\n...")
// and RESP inline commands (a bare command token followed by a space or
// CRLF).
type Detector struct{}

// New returns a Redis Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.Redis }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) == 0 {
		return layer7.NeedMoreData()
	}
	if buf[0] == '*' {
		return tryArray(buf)
	}
	return tryInline(buf)
}

func tryArray(buf []byte) layer7.Outcome {
	countBuf := buf[1:]
	idx := byteview.Index(countBuf, []byte("\r\n"))
	if idx < 0 {
		if !allDigits(countBuf) {
			return layer7.NoMatch()
		}
		return layer7.NeedMoreData()
	}
	if idx == 0 || !allDigits(countBuf[:idx]) {
		return layer7.NoMatch()
	}
	count, _, ok := byteview.ParseUintASCII(countBuf[:idx])
	if !ok {
		return layer7.NoMatch()
	}
	rest := countBuf[idx+2:]

	cmdToken, rest2, state := readBulkToken(rest)
	switch state {
	case triMore:
		return layer7.NeedMoreData()
	case triNo:
		return layer7.NoMatch()
	}
	if !isKnownCommand(cmdToken) {
		return layer7.NoMatch()
	}
	if !byteview.EqualASCIIFold(cmdToken, []byte(helloCmd), true) {
		return layer7.Matched(layer7.Redis, layer7.RedisRESP2)
	}
	if count < 2 {
		// HELLO with no further array element: version argument is
		// absent by construction.
		return layer7.Matched(layer7.Redis, layer7.RedisRESP2)
	}
	argToken, _, argState := readBulkToken(rest2)
	if argState == triMore {
		return layer7.NeedMoreData()
	}
	if argState != triYes {
		return layer7.Matched(layer7.Redis, layer7.RedisRESP2)
	}
	return layer7.Matched(layer7.Redis, helloVersion(argToken))
}

func tryInline(buf []byte) layer7.Outcome {
	tok, rest, status := matchCommandToken(buf)
	switch status {
	case matchNone:
		return layer7.NoMatch()
	case matchPartial:
		return layer7.NeedMoreData()
	}
	if !byteview.EqualASCIIFold(tok, []byte(helloCmd), true) {
		return layer7.Matched(layer7.Redis, layer7.RedisRESP2)
	}
	arg, ok := firstInlineArg(rest)
	if !ok {
		return layer7.Matched(layer7.Redis, layer7.RedisRESP2)
	}
	return layer7.Matched(layer7.Redis, helloVersion(arg))
}

func helloVersion(arg []byte) layer7.Version {
	if len(arg) == 1 && arg[0] == '3' {
		return layer7.RedisRESP3
	}
	return layer7.RedisRESP2
}

func isKnownCommand(tok []byte) bool {
	for _, c := range knownCommands {
		if byteview.EqualASCIIFold(tok, []byte(c), true) {
			return true
		}
	}
	return false
}

func allDigits(buf []byte) bool {
	for _, b := range buf {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

type tri int

const (
	triNo tri = iota
	triMore
	triYes
)

// readBulkToken parses a RESP bulk string "$<len>\r\n<bytes>\r\n" from the
// start of buf.
func readBulkToken(buf []byte) (token []byte, rest []byte, state tri) {
	if len(buf) == 0 {
		return nil, nil, triMore
	}
	if buf[0] != '$' {
		return nil, nil, triNo
	}
	v, n, ok := byteview.ParseUintASCII(buf[1:])
	if !ok {
		if len(buf) == 1 {
			return nil, nil, triMore
		}
		return nil, nil, triNo
	}
	pos := 1 + n
	if pos+2 > len(buf) {
		return nil, nil, triMore
	}
	if buf[pos] != '\r' || buf[pos+1] != '\n' {
		return nil, nil, triNo
	}
	dataStart := pos + 2
	dataEnd := dataStart + int(v)
	if dataEnd+2 > len(buf) {
		return nil, nil, triMore
	}
	if buf[dataEnd] != '\r' || buf[dataEnd+1] != '\n' {
		return nil, nil, triNo
	}
	return buf[dataStart:dataEnd], buf[dataEnd+2:], triYes
}

type tokStatus int

const (
	matchNone tokStatus = iota
	matchPartial
	matchFull
)

// matchCommandToken finds an inline command token at the start of buf,
// bounded by a following space or CRLF.
func matchCommandToken(buf []byte) (tok []byte, rest []byte, status tokStatus) {
	partial := false
	for _, c := range knownCommands {
		cb := []byte(c)
		switch {
		case len(buf) > len(cb):
			if !byteview.EqualASCIIFold(buf[:len(cb)], cb, true) {
				continue
			}
			if b := buf[len(cb)]; b == ' ' || b == '\r' {
				return buf[:len(cb)], buf[len(cb):], matchFull
			}
		case len(buf) == len(cb):
			if byteview.EqualASCIIFold(buf, cb, true) {
				partial = true
			}
		default:
			if byteview.EqualASCIIFold(buf, cb[:len(buf)], true) {
				partial = true
			}
		}
	}
	if partial {
		return nil, nil, matchPartial
	}
	return nil, nil, matchNone
}

// firstInlineArg returns the first whitespace/CRLF-delimited token after a
// leading space in rest, e.g. " 3\r\n" -> "3".
func firstInlineArg(rest []byte) ([]byte, bool) {
	if len(rest) == 0 || rest[0] != ' ' {
		return nil, false
	}
	rest = rest[1:]
	end := len(rest)
	if i := byteview.IndexByte(rest, ' '); i >= 0 && i < end {
		end = i
	}
	if i := byteview.Index(rest, []byte("\r\n")); i >= 0 && i < end {
		end = i
	}
	if end == 0 {
		return nil, false
	}
	return rest[:end], true
}
