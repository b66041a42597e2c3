package l4imap

import (
	"testing"

	"github.com/divyam234/protosniff/layer7"
)

func TestTryMatch(t *testing.T) {
	d := New()

	t.Run("greeting with imap token", func(t *testing.T) {
		got := d.TryMatch([]byte("* OK IMAP4rev1 Service Ready\r\n"))
		if got.Status != layer7.StatusMatch || got.Protocol != layer7.IMAP {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("greeting without token terminated", func(t *testing.T) {
		got := d.TryMatch([]byte("* OK ready\r\n"))
		if got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("greeting awaiting terminator", func(t *testing.T) {
		got := d.TryMatch([]byte("* OK ready"))
		if got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("tagged login command", func(t *testing.T) {
		got := d.TryMatch([]byte("a001 LOGIN alice password\r\n"))
		if got.Status != layer7.StatusMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("tagged noop command", func(t *testing.T) {
		got := d.TryMatch([]byte("a1 NOOP\r\n"))
		if got.Status != layer7.StatusMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("tag without recognized command", func(t *testing.T) {
		got := d.TryMatch([]byte("a001 BOGUSCMD\r\n"))
		if got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("awaiting tag separator", func(t *testing.T) {
		got := d.TryMatch([]byte("a001"))
		if got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("awaiting command completion", func(t *testing.T) {
		got := d.TryMatch([]byte("a001 LOG"))
		if got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})
}
