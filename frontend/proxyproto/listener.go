// Package proxyproto adapts a plain net.Listener into one that unwraps a
// leading PROXY protocol v1/v2 header before handing the connection to the
// detection chain. This lives outside the core (spec §1, "reading bytes
// from sockets, connection lifecycle" are explicitly out of scope) — it is
// a pre-core collaborator: by the time layer7.DetectionChain.Detect sees a
// byte, any PROXY header has already been consumed.
package proxyproto

import (
	"net"
	"time"

	"github.com/mastercactapus/proxyprotocol"
)

// Mode selects how strictly an accepted connection is required to start
// with a PROXY protocol header.
type Mode int

const (
	// ModeOptional accepts a connection with or without a PROXY header.
	ModeOptional Mode = iota
	// ModeRequire rejects any connection that doesn't lead with one.
	ModeRequire
	// ModeDeny refuses to parse a PROXY header at all, passing every
	// connection through unmodified; useful behind a trusted LB that is
	// known not to prepend one.
	ModeDeny
)

// Wrap returns a net.Listener that transparently unwraps a PROXY protocol
// header from each accepted connection before returning it, so
// conn.RemoteAddr() on the listener's output reflects the original client
// rather than the proxy hop. readTimeout bounds how long Accept will wait
// for a header to arrive.
func Wrap(inner net.Listener, mode Mode, readTimeout time.Duration) net.Listener {
	if mode == ModeDeny {
		return inner
	}
	required := mode == ModeRequire
	return &proxyprotocol.Listener{
		Listener: inner,
		Policy: func(upstream net.Addr) (proxyprotocol.Policy, error) {
			if required {
				return proxyprotocol.REQUIRE, nil
			}
			return proxyprotocol.ALLOW_IFSPECIFIED, nil
		},
		Timeout: readTimeout,
	}
}
