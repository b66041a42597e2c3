package chains

import (
	"testing"

	"github.com/divyam234/protosniff/layer7"
)

func TestDefaultTCPScenarios(t *testing.T) {
	chain, err := DefaultTCP()
	if err != nil {
		t.Fatalf("DefaultTCP: %v", err)
	}

	cases := []struct {
		name     string
		buf      []byte
		protocol layer7.Protocol
		version  layer7.Version
	}{
		{
			name:     "http 1.1 request",
			buf:      []byte("GET /index.html HTTP/1.1\r\nHost: x\r\n\r\n"),
			protocol: layer7.HTTP,
			version:  layer7.HTTPv1_1,
		},
		{
			name:     "http2 preface",
			buf:      []byte("PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n"),
			protocol: layer7.HTTP,
			version:  layer7.HTTPv2_0,
		},
		{
			name:     "ssh banner",
			buf:      []byte("SSH-2.0-OpenSSH_8.9\r\n"),
			protocol: layer7.SSH,
			version:  layer7.SSHv2_0,
		},
		{
			name:     "redis array ping",
			buf:      []byte("*1\r\n$4\r\nPING\r\n"),
			protocol: layer7.Redis,
			version:  layer7.RedisRESP2,
		},
		{
			name:     "redis hello resp3",
			buf:      []byte("*2\r\n$5\r\nHELLO\r\n$1\r\n3\r\n"),
			protocol: layer7.Redis,
			version:  layer7.RedisRESP3,
		},
		{
			name:     "smtp greeting",
			buf:      []byte("220 mail.example.com ESMTP Postfix\r\n"),
			protocol: layer7.SMTP,
			version:  layer7.Unversioned,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := chain.Detect(tc.buf)
			if !got.IsKnown() || got.Protocol() != tc.protocol || got.Version() != tc.version {
				t.Fatalf("got %s, want %s/%v", got, tc.protocol, tc.version)
			}
		})
	}

	t.Run("random bytes are unknown", func(t *testing.T) {
		buf := make([]byte, 64)
		for i := range buf {
			buf[i] = byte(i*7 + 3)
		}
		if got := chain.Detect(buf); got.IsKnown() {
			t.Fatalf("expected unknown, got %s", got)
		}
	})
}

func TestDefaultUDPScenarios(t *testing.T) {
	chain, err := DefaultUDP()
	if err != nil {
		t.Fatalf("DefaultUDP: %v", err)
	}

	t.Run("quic initial", func(t *testing.T) {
		buf := []byte{0xc0, 0x00, 0x00, 0x00, 0x01, 0x08, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x01, 0x02, 0x00, 0x00}
		got := chain.Detect(buf)
		if !got.IsKnown() || got.Protocol() != layer7.QUIC {
			t.Fatalf("got %s", got)
		}
	})

	t.Run("dns query", func(t *testing.T) {
		buf := []byte{
			0x00, 0x01, // ID
			0x01, 0x00, // flags: QR=0, opcode=0, RD=1
			0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // QD/AN/NS/AR counts
			0x00,       // question: root name
			0x00, 0x01, // QTYPE A
			0x00, 0x01, // QCLASS IN
		}
		got := chain.Detect(buf)
		if !got.IsKnown() || got.Protocol() != layer7.DNS {
			t.Fatalf("got %s", got)
		}
	})
}

func TestDefaultTCPIndependentBuilds(t *testing.T) {
	// Building twice must yield independently usable chains (no shared
	// mutable builder state leaking between calls).
	a, err := DefaultTCP()
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := DefaultTCP()
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	buf := []byte("SSH-2.0-OpenSSH_8.9\r\n")
	if a.Detect(buf).String() != b.Detect(buf).String() {
		t.Fatalf("expected identical results across independently built chains")
	}
}
