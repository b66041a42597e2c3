package l4ssh

import (
	"testing"

	"github.com/divyam234/protosniff/layer7"
)

func TestTryMatch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		status  layer7.Status
		version layer7.Version
	}{
		{"v2 full", "SSH-2.0-OpenSSH_8.9\r\n", layer7.StatusMatch, layer7.SSHv2_0},
		{"v1.5 full", "SSH-1.5-OldClient\r\n", layer7.StatusMatch, layer7.SSHv1_5},
		{"eager before terminator", "SSH-2.0-Ope", layer7.StatusMatch, layer7.SSHv2_0},
		{"truncated prefix", "SSH", layer7.StatusNeedMoreData, 0},
		{"truncated proto digits", "SSH-2.", layer7.StatusNeedMoreData, 0},
		{"bad proto", "SSH-9.9-x\r\n", layer7.StatusNoMatch, 0},
		{"proto digits run longer than token", "SSH-1.50-x\r\n", layer7.StatusNoMatch, 0},
		{"proto token without delimiter", "SSH-2.0\r\n", layer7.StatusNoMatch, 0},
		{"proto token awaiting delimiter", "SSH-2.0", layer7.StatusNeedMoreData, 0},
		{"not ssh", "GET / HTTP/1.1\r\n", layer7.StatusNoMatch, 0},
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
