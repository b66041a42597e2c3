// Package l4imap detects an IMAP server greeting or a tagged client command.
package l4imap

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var greetingPrefix = []byte("* OK ")

var taggedCommands = [][]byte{
	[]byte("CAPABILITY"),
	[]byte("LOGIN"),
	[]byte("SELECT"),
	[]byte("LIST"),
	[]byte("FETCH"),
	[]byte("LOGOUT"),
	[]byte("NOOP"),
}

// Detector recognizes an IMAP greeting or tagged command.
type Detector struct{}

// New returns an IMAP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.IMAP }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	switch {
	case byteview.HasPrefixFold(buf, greetingPrefix):
		if byteview.ContainsFold(buf, []byte("IMAP")) || byteview.ContainsFold(buf, []byte("CAPABILITY")) {
			return layer7.Matched(layer7.IMAP, layer7.Unversioned)
		}
		if byteview.IndexByte(buf, '\n') >= 0 {
			return layer7.NoMatch()
		}
		return layer7.NeedMoreData()
	case byteview.HasPrefixFold(greetingPrefix, buf):
		return layer7.NeedMoreData()
	}

	return matchTaggedCommand(buf)
}

// matchTaggedCommand parses "<tag> <command> ..." where tag is any
// non-whitespace token and command is one of the recognized IMAP verbs.
func matchTaggedCommand(buf []byte) layer7.Outcome {
	sp := byteview.IndexByte(buf, ' ')
	if sp < 0 {
		return layer7.NeedMoreData()
	}
	tag := buf[:sp]
	if len(tag) == 0 {
		return layer7.NoMatch()
	}
	for _, b := range tag {
		if b == '\r' || b == '\n' || b == '\t' {
			return layer7.NoMatch()
		}
	}

	rest := buf[sp+1:]
	needMore := false
	for _, cmd := range taggedCommands {
		if byteview.HasPrefixFold(rest, cmd) {
			return layer7.Matched(layer7.IMAP, layer7.Unversioned)
		}
		if byteview.HasPrefixFold(cmd, rest) {
			needMore = true
		}
	}
	if needMore {
		return layer7.NeedMoreData()
	}
	return layer7.NoMatch()
}
