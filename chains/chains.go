// Package chains is the composition root that wires every per-protocol
// detector into the default TCP and UDP chains (spec §4.4). It is the one
// package allowed to import both layer7 and the modules/l4* packages;
// layer7 itself never references a concrete detector to avoid an import
// cycle.
package chains

import (
	"github.com/divyam234/protosniff/layer7"
	"github.com/divyam234/protosniff/modules/l4dhcp"
	"github.com/divyam234/protosniff/modules/l4dns"
	"github.com/divyam234/protosniff/modules/l4ftp"
	"github.com/divyam234/protosniff/modules/l4http"
	"github.com/divyam234/protosniff/modules/l4imap"
	"github.com/divyam234/protosniff/modules/l4mqtt"
	"github.com/divyam234/protosniff/modules/l4mysql"
	"github.com/divyam234/protosniff/modules/l4ntp"
	"github.com/divyam234/protosniff/modules/l4pop3"
	"github.com/divyam234/protosniff/modules/l4postgres"
	"github.com/divyam234/protosniff/modules/l4quic"
	"github.com/divyam234/protosniff/modules/l4redis"
	"github.com/divyam234/protosniff/modules/l4rtsp"
	"github.com/divyam234/protosniff/modules/l4sip"
	"github.com/divyam234/protosniff/modules/l4smb"
	"github.com/divyam234/protosniff/modules/l4smtp"
	"github.com/divyam234/protosniff/modules/l4ssh"
	"github.com/divyam234/protosniff/modules/l4stun"
	"github.com/divyam234/protosniff/modules/l4tls"
)

// DefaultTCP builds the default TCP detection chain in the priority order
// from spec §4.4: stricter magic-number protocols before weaker
// text-prefix ones, with SMTP ahead of FTP so their shared "220 " banner
// shape is resolved by SMTP's keyword check first.
func DefaultTCP(opts ...Option) (*layer7.DetectionChain, error) {
	b := layer7.BuilderTCP().WithDefaultChain(
		l4tls.New(),
		l4ssh.New(),
		l4http.New(),
		l4smb.New(),
		l4rtsp.New(),
		l4sip.New(),
		l4mysql.New(),
		l4postgres.New(),
		l4mqtt.New(),
		l4redis.New(),
		l4smtp.New(),
		l4imap.New(),
		l4pop3.New(),
		l4ftp.New(),
		l4dns.NewTCP(),
	)
	return build(b, opts)
}

// DefaultUDP builds the default UDP detection chain in the priority order
// from spec §4.4.
func DefaultUDP(opts ...Option) (*layer7.DetectionChain, error) {
	b := layer7.BuilderUDP().WithDefaultChain(
		l4quic.New(),
		l4stun.New(),
		l4dhcp.New(),
		l4ntp.New(),
		l4dns.NewUDP(),
		l4sip.New(),
	)
	return build(b, opts)
}

// Option adjusts a Builder before it finalizes into a DetectionChain.
type Option func(*layer7.Builder)

// WithMaxInspect overrides the default 64-byte inspection window.
func WithMaxInspect(n int) Option {
	return func(b *layer7.Builder) { b.SetMaxInspect(n) }
}

// WithTraceSink attaches a TraceSink to the built chain.
func WithTraceSink(sink layer7.TraceSink) Option {
	return func(b *layer7.Builder) { b.WithTraceSink(sink) }
}

func build(b *layer7.Builder, opts []Option) (*layer7.DetectionChain, error) {
	for _, opt := range opts {
		opt(b)
	}
	return b.Build()
}
