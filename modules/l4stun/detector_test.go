package l4stun

import (
	"testing"

	"github.com/divyam234/protosniff/layer7"
)

func buildBindingRequest(length uint16) []byte {
	buf := make([]byte, 20)
	buf[0] = 0x00
	buf[1] = 0x01 // Binding Request
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	buf[4] = 0x21
	buf[5] = 0x12
	buf[6] = 0xA4
	buf[7] = 0x42
	return buf
}

func TestTryMatch(t *testing.T) {
	d := New()

	t.Run("binding request", func(t *testing.T) {
		got := d.TryMatch(buildBindingRequest(8))
		if got.Status != layer7.StatusMatch || got.Protocol != layer7.STUN {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("nonzero leading bits", func(t *testing.T) {
		buf := buildBindingRequest(8)
		buf[0] = 0x40
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("length not multiple of four", func(t *testing.T) {
		buf := buildBindingRequest(6)
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("wrong magic cookie", func(t *testing.T) {
		buf := buildBindingRequest(8)
		buf[4] = 0x00
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("truncated before length", func(t *testing.T) {
		buf := []byte{0x00, 0x01}
		if got := d.TryMatch(buf); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("truncated before cookie", func(t *testing.T) {
		buf := buildBindingRequest(8)[:6]
		if got := d.TryMatch(buf); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})
}
