package l4smb

import (
	"encoding/binary"
	"testing"

	"github.com/divyam234/protosniff/layer7"
)

func buildFrame(payload []byte) []byte {
	n := len(payload)
	header := []byte{0x00, byte(n >> 16), byte(n >> 8), byte(n)}
	return append(header, payload...)
}

func buildSMB1() []byte {
	payload := append([]byte{}, sigSMB1...)
	payload = append(payload, make([]byte, 32)...)
	return buildFrame(payload)
}

func buildSMB2Negotiate(dialect uint16) []byte {
	header := make([]byte, smb2HeaderLen)
	copy(header[0:4], sigSMB2)
	header[4] = 64 // StructureSize, LE

	body := make([]byte, 8)
	body[0] = 65 // response StructureSize
	binary.LittleEndian.PutUint16(body[4:6], dialect)

	payload := append(header, body...)
	return buildFrame(payload)
}

func TestTryMatch(t *testing.T) {
	d := New()

	t.Run("smb1 signature", func(t *testing.T) {
		got := d.TryMatch(buildSMB1())
		if got.Status != layer7.StatusMatch || got.Version != layer7.SMBv1 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("smb2 negotiate v2 dialect", func(t *testing.T) {
		got := d.TryMatch(buildSMB2Negotiate(0x0202))
		if got.Status != layer7.StatusMatch || got.Version != layer7.SMBv2 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("smb2 negotiate v3 dialect", func(t *testing.T) {
		got := d.TryMatch(buildSMB2Negotiate(0x0311))
		if got.Status != layer7.StatusMatch || got.Version != layer7.SMBv3 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("smb2 signature without visible dialect", func(t *testing.T) {
		full := buildSMB2Negotiate(0x0311)
		got := d.TryMatch(full[:16]) // signature visible, body far out of view
		if got.Status != layer7.StatusMatch || got.Version != layer7.SMBv2 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("wrong session service byte", func(t *testing.T) {
		buf := buildSMB1()
		buf[0] = 0x81 // session request, not message
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("unrecognized signature", func(t *testing.T) {
		buf := buildFrame([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06})
		if got := d.TryMatch(buf); got.Status != layer7.StatusNoMatch {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("truncated before signature", func(t *testing.T) {
		buf := []byte{0x00, 0x00, 0x00}
		if got := d.TryMatch(buf); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})

	t.Run("truncated mid signature", func(t *testing.T) {
		buf := buildSMB1()[:6]
		if got := d.TryMatch(buf); got.Status != layer7.StatusNeedMoreData {
			t.Fatalf("got %v", got.Status)
		}
	})
}
