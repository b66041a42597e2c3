package l4dhcp

import (
	"testing"

	"github.com/divyam234/protosniff/layer7"
)

func buildDiscover() []byte {
	buf := make([]byte, fixedHeaderLen)
	buf[0] = 1 // BOOTREQUEST
	buf[1] = 1 // Ethernet
	buf[2] = 6 // hlen
	buf[236] = 0x63
	buf[237] = 0x82
	buf[238] = 0x53
	buf[239] = 0x63
	return buf
}

func TestTryMatch(t *testing.T) {
	d := New()

	t.Run("discover message", func(t *testing.T) {
		got := d.TryMatch(buildDiscover())
		if got.Status != layer7.StatusMatch || got.Protocol != layer7.DHCP {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("bad op code", func(t *testing.T) {
		buf := buildDiscover()
		buf[0] = 9
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("bad hardware type", func(t *testing.T) {
		buf := buildDiscover()
		buf[1] = 200
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("hardware length too long", func(t *testing.T) {
		buf := buildDiscover()
		buf[2] = 32
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("wrong magic cookie", func(t *testing.T) {
		buf := buildDiscover()
		buf[239] = 0x00
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("short view awaits magic cookie", func(t *testing.T) {
		buf := buildDiscover()[:100]
		if got := d.TryMatch(buf); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("truncated before hlen", func(t *testing.T) {
		buf := []byte{1, 1}
		if got := d.TryMatch(buf); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})
}
