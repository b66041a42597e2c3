// Package l4ssh detects the SSH identification string every SSH server and
// client sends first: "SSH-<protoversion>-<softwareversion>\r\n".
package l4ssh

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const prefix = "SSH-"

// Detector recognizes the SSH-<proto>-<softwareversion> identification
// line and extracts the protocol version (1.5 or 2.0).
type Detector struct{}

// New returns an SSH Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.SSH }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if !byteview.HasPrefix(buf, []byte(prefix)) {
		if len(buf) < len(prefix) && byteview.HasPrefix([]byte(prefix), buf) {
			return layer7.NeedMoreData()
		}
		return layer7.NoMatch()
	}

	rest := buf[len(prefix):]
	versions := [...]struct {
		token   string
		version layer7.Version
	}{
		{"1.5", layer7.SSHv1_5},
		{"2.0", layer7.SSHv2_0},
	}
	for _, v := range versions {
		if !byteview.HasPrefix(rest, []byte(v.token)) {
			continue
		}
		if len(rest) == len(v.token) {
			// The token itself is visible but not yet the delimiter that
			// must follow it ("-<softwareversion>"); wait for it rather
			// than assume it's there.
			return layer7.NeedMoreData()
		}
		if rest[len(v.token)] != '-' {
			// E.g. "SSH-1.50-..." is not the "1.5" token: <proto> must be
			// followed by '-', never absorbed into a longer digit run.
			return layer7.NoMatch()
		}
		return layer7.Matched(layer7.SSH, v.version)
	}
	// Not yet enough of the proto-version token to tell; still consistent
	// with SSH as long as what's visible is a prefix of "1.5" or "2.0".
	for _, v := range versions {
		if byteview.HasPrefix([]byte(v.token), rest) {
			return layer7.NeedMoreData()
		}
	}
	return layer7.NoMatch()
}
