// Package l4smtp detects an SMTP server greeting or client command line.
package l4smtp

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var greetingPrefix = []byte("220 ")

var clientCommands = [][]byte{
	[]byte("HELO "),
	[]byte("EHLO "),
	[]byte("MAIL FROM:"),
	[]byte("RCPT TO:"),
	[]byte("DATA\r\n"),
	[]byte("QUIT\r\n"),
}

// Detector recognizes an SMTP greeting or command line.
type Detector struct{}

// New returns an SMTP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.SMTP }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	needMore := false

	switch {
	case byteview.HasPrefixFold(buf, greetingPrefix):
		if byteview.ContainsFold(buf, []byte("ESMTP")) || byteview.ContainsFold(buf, []byte("SMTP")) {
			return layer7.Matched(layer7.SMTP, layer7.Unversioned)
		}
		if byteview.IndexByte(buf, '\n') < 0 {
			needMore = true
		}
	case byteview.HasPrefixFold(greetingPrefix, buf):
		needMore = true
	}

	for _, cmd := range clientCommands {
		if byteview.HasPrefixFold(buf, cmd) {
			return layer7.Matched(layer7.SMTP, layer7.Unversioned)
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
