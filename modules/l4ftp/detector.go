// Package l4ftp detects an FTP server greeting or client command line.
package l4ftp

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var greetingPrefix = []byte("220")

var clientCommands = [][]byte{
	[]byte("USER "),
	[]byte("PASS "),
	[]byte("QUIT\r\n"),
	[]byte("LIST\r\n"),
}

// Detector recognizes an FTP greeting or command line.
type Detector struct{}

// New returns an FTP Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.FTP }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	needMore := false

	switch {
	case byteview.HasPrefix(buf, greetingPrefix):
		if len(buf) < 4 {
			needMore = true
			break
		}
		sep := buf[3]
		if sep != ' ' && sep != '-' {
			break
		}
		if byteview.ContainsFold(buf, []byte("FTP")) {
			return layer7.Matched(layer7.FTP, layer7.Unversioned)
		}
		if byteview.IndexByte(buf, '\n') < 0 {
			needMore = true
		}
	case byteview.HasPrefix(greetingPrefix, buf):
		needMore = true
	}

	for _, cmd := range clientCommands {
		if byteview.HasPrefixFold(buf, cmd) {
			return layer7.Matched(layer7.FTP, layer7.Unversioned)
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
