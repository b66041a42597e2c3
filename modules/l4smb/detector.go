// Package l4smb detects SMB's NetBIOS/Direct-TCP session framing followed
// by an SMB1 or SMB2/3 dialect signature.
package l4smb

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

var (
	sigSMB1 = []byte{0xFF, 'S', 'M', 'B'}
	sigSMB2 = []byte{0xFE, 'S', 'M', 'B'}
)

const (
	frameHeaderLen   = 4  // session-service byte + 3-byte length
	smb2HeaderLen    = 64 // fixed SMB2 packet header size
	commandNegotiate = 0x0000
	dialectSMBv3Min  = 0x0300
)

// Detector recognizes SMB session framing and dialect signature.
type Detector struct{}

// New returns an SMB Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.SMB }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < frameHeaderLen {
		return layer7.NeedMoreData()
	}
	if buf[0] != 0x00 {
		return layer7.NoMatch()
	}
	if len(buf) < frameHeaderLen+4 {
		return layer7.NeedMoreData()
	}
	sig, _ := byteview.Slice(buf, frameHeaderLen, frameHeaderLen+4)
	switch {
	case byteview.EqualASCIIFold(sig, sigSMB1, false):
		return layer7.Matched(layer7.SMB, layer7.SMBv1)
	case byteview.EqualASCIIFold(sig, sigSMB2, false):
		return layer7.Matched(layer7.SMB, smb2Dialect(buf))
	default:
		return layer7.NoMatch()
	}
}

// smb2Dialect reports v3 when a Negotiate response's Dialect Revision field
// is visible and names an SMB 3.x dialect; otherwise v2, the signature's
// own minimum guarantee.
func smb2Dialect(buf []byte) layer7.Version {
	cmd, ok := byteview.Uint16LE(buf, frameHeaderLen+12)
	if !ok || cmd != commandNegotiate {
		return layer7.SMBv2
	}
	dialectOff := frameHeaderLen + smb2HeaderLen + 4
	dialect, ok := byteview.Uint16LE(buf, dialectOff)
	if !ok {
		return layer7.SMBv2
	}
	if dialect >= dialectSMBv3Min {
		return layer7.SMBv3
	}
	return layer7.SMBv2
}
