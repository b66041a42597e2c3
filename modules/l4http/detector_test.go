package l4http

import (
	"testing"

	"golang.org/x/net/http2"

	"github.com/divyam234/protosniff/layer7"
)

func TestTryMatchRequestLines(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		status  layer7.Status
		version layer7.Version
	}{
		{"GET 1.1", "GET /index.html HTTP/1.1\r\nHost: x\r\n\r\n", layer7.StatusMatch, layer7.HTTPv1_1},
		{"POST 1.0", "POST /submit HTTP/1.0\r\n\r\n", layer7.StatusMatch, layer7.HTTPv1_0},
		{"CONNECT 2.0", "CONNECT example.com:443 HTTP/2.0\r\n\r\n", layer7.StatusMatch, layer7.HTTPv2_0},
		{"unknown version", "GET / HTTP/9.9\r\n\r\n", layer7.StatusNoMatch, 0},
		{"not http", "SSH-2.0-OpenSSH_8.9\r\n", layer7.StatusNoMatch, 0},
		{"truncated method", "GE", layer7.StatusNeedMoreData, 0},
		{"truncated target", "GET /index.htm", layer7.StatusNeedMoreData, 0},
		{"truncated version", "GET / HTTP/1.", layer7.StatusNeedMoreData, 0},
		{"empty", "", layer7.StatusNeedMoreData, 0},
	}
	d := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := d.TryMatch([]byte(tc.input))
			if got.Status != tc.status {
				t.Fatalf("status = %v, want %v", got.Status, tc.status)
			}
			if got.Status == layer7.StatusMatch && got.Version != tc.version {
				t.Fatalf("version = %v, want %v", got.Version, tc.version)
			}
		})
	}
}

func TestTryMatchH2Preface(t *testing.T) {
	d := New()
	full := []byte(http2.ClientPreface)
	got := d.TryMatch(full)
	if got.Status != layer7.StatusMatch || got.Version != layer7.HTTPv2_0 {
		t.Fatalf("got %+v", got)
	}
	for n := 1; n < len(full); n++ {
		got := d.TryMatch(full[:n])
		if got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("prefix of length %d: got %v, want NeedMoreData", n, got.Status)
		}
	}
}

func TestKindAndTransports(t *testing.T) {
	d := New()
	if d.Kind() != layer7.HTTP {
		t.Fatal("wrong kind")
	}
	if !d.Transports().Has(layer7.TCP) || d.Transports().Has(layer7.UDP) {
		t.Fatal("expected TCP-only")
	}
}
