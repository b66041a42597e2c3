// Package l4pop3 detects a POP3 server greeting or client command line.
package l4pop3

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var greetingPrefix = []byte("+OK ")

var clientCommands = [][]byte{
	[]byte("USER "),
	[]byte("PASS "),
	[]byte("STAT\r\n"),
	[]byte("RETR "),
}

// Detector recognizes a POP3 greeting or command line.
type Detector struct{}

// New returns a POP3 Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.POP3 }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	needMore := false

	switch {
	case byteview.HasPrefixFold(buf, greetingPrefix):
		// A bare "+OK ...\r\n" greeting is POP3 even without the literal
		// POP3 token once the line is terminated.
		if byteview.ContainsFold(buf, []byte("POP3")) || byteview.IndexByte(buf, '\n') >= 0 {
			return layer7.Matched(layer7.POP3, layer7.Unversioned)
		}
		needMore = true
	case byteview.HasPrefixFold(greetingPrefix, buf):
		needMore = true
	}

	for _, cmd := range clientCommands {
		if byteview.HasPrefixFold(buf, cmd) {
			return layer7.Matched(layer7.POP3, layer7.Unversioned)
		}
		if byteview.HasPrefixFold(cmd, buf) {
			needMore = true
		}
	}

	if needMore {
		return layer7.NeedMoreData()
	}
	return layer7.NoMatch()
}
