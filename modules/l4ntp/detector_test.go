package l4ntp

import (
	"testing"

	"github.com/divyam234/protosniff/layer7"
)

func buildClientRequest() []byte {
	buf := make([]byte, minPacketLen)
	buf[0] = (0 << 6) | (4 << 3) | 3 // LI=0, VN=4, Mode=3 (client)
	return buf
}

func TestTryMatch(t *testing.T) {
	d := New()

	t.Run("client request", func(t *testing.T) {
		got := d.TryMatch(buildClientRequest())
		if got.Status != layer7.StatusMatch || got.Protocol != layer7.NTP {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("bad version", func(t *testing.T) {
		buf := buildClientRequest()
		buf[0] = (0 << 6) | (7 << 3) | 3
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("bad mode", func(t *testing.T) {
		buf := buildClientRequest()
		buf[0] = (0 << 6) | (4 << 3) | 7
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("too short", func(t *testing.T) {
		buf := buildClientRequest()[:47]
		if got := d.TryMatch(buf); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		if got := d.TryMatch(nil); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})
}
