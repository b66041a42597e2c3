// Package l4tls detects TLS (and SSLv3) records by their record-layer
// header, and extracts the negotiated version from a visible ClientHello.
package l4tls

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const (
	contentTypeChangeCipherSpec = 0x14
	contentTypeAlert            = 0x15
	contentTypeHandshake        = 0x16
	contentTypeApplicationData  = 0x17

	handshakeTypeClientHello = 0x01

	extSupportedVersions = 0x002b
	tls13WireVersion      = 0x0304

	// maxRecordLength is 2^14 plus the maximum TLSCiphertext expansion
	// (spec §4.3: "record length ≤ 2^14+2048").
	maxRecordLength = 1<<14 + 2048

	recordHeaderLen    = 5
	handshakeHeaderLen = 4
	clientHelloBodyOff = recordHeaderLen + handshakeHeaderLen
)

// Detector recognizes TLS record headers (ContentType + legacy record
// version + record length) and, for a visible ClientHello, the negotiated
// protocol version.
type Detector struct{}

// New returns a TLS Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.TLS }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) == 0 {
		return layer7.NeedMoreData()
	}
	contentType := buf[0]
	if !isContentType(contentType) {
		return layer7.NoMatch()
	}
	if len(buf) < 2 {
		return layer7.NeedMoreData()
	}
	if buf[1] != 0x03 {
		return layer7.NoMatch()
	}
	if len(buf) < 3 {
		return layer7.NeedMoreData()
	}
	minor := buf[2]
	if minor > 0x04 {
		return layer7.NoMatch()
	}
	if len(buf) < recordHeaderLen {
		return layer7.NeedMoreData()
	}
	length, _ := byteview.Uint16(buf, 3)
	if length > maxRecordLength {
		return layer7.NoMatch()
	}

	legacyVersion := mapWireVersion(0x0300 | uint16(minor))

	if contentType == contentTypeHandshake && len(buf) > recordHeaderLen {
		if hsType, ok := byteview.ByteAt(buf, recordHeaderLen); ok && hsType == handshakeTypeClientHello {
			return layer7.Matched(layer7.TLS, clientHelloVersion(buf))
		}
	}
	return layer7.Matched(layer7.TLS, legacyVersion)
}

func isContentType(b byte) bool {
	switch b {
	case contentTypeChangeCipherSpec, contentTypeAlert, contentTypeHandshake, contentTypeApplicationData:
		return true
	default:
		return false
	}
}

func mapWireVersion(v uint16) layer7.Version {
	switch v {
	case 0x0300:
		return layer7.TLSv1_SSL3_0
	case 0x0301:
		return layer7.TLSv1_TLS1_0
	case 0x0302:
		return layer7.TLSv1_TLS1_1
	case 0x0303:
		return layer7.TLSv1_TLS1_2
	case 0x0304:
		return layer7.TLSv1_TLS1_3
	default:
		return layer7.Unversioned
	}
}

// clientHelloVersion extracts the negotiated TLS version from a ClientHello
// whose record header has already been validated. If the supported_versions
// extension (spec §4.3) is present and lists 0x0304, that wins; otherwise
// the legacy client_version field is used. If the extensions area (or
// anything needed to reach it) is cut off by the view boundary, Unversioned
// is returned rather than guessing (spec §4.3, §9).
func clientHelloVersion(buf []byte) layer7.Version {
	pos := clientHelloBodyOff

	clientVersion, ok := byteview.Uint16(buf, pos)
	if !ok {
		return layer7.Unversioned
	}
	pos += 2   // client_version
	pos += 32  // random

	sidLen, ok := byteview.ByteAt(buf, pos)
	if !ok {
		return layer7.Unversioned
	}
	pos += 1 + int(sidLen)

	csLen, ok := byteview.Uint16(buf, pos)
	if !ok {
		return layer7.Unversioned
	}
	pos += 2 + int(csLen)

	cmLen, ok := byteview.ByteAt(buf, pos)
	if !ok {
		return layer7.Unversioned
	}
	pos += 1 + int(cmLen)

	fallback := mapWireVersion(clientVersion)

	if pos == len(buf) {
		// No extensions field at all; a complete, legitimately
		// extension-free ClientHello.
		return fallback
	}
	extLen, ok := byteview.Uint16(buf, pos)
	if !ok {
		return layer7.Unversioned
	}
	pos += 2
	declaredEnd := pos + int(extLen)
	visibleEnd := declaredEnd
	truncated := false
	if visibleEnd > len(buf) {
		visibleEnd = len(buf)
		truncated = true
	}

	for pos+4 <= visibleEnd {
		extType, _ := byteview.Uint16(buf, pos)
		extDataLen, _ := byteview.Uint16(buf, pos+2)
		dataStart := pos + 4
		dataEnd := dataStart + int(extDataLen)

		if extType == extSupportedVersions {
			if dataEnd > len(buf) {
				return layer7.Unversioned
			}
			listLen := 0
			if b, ok := byteview.ByteAt(buf, dataStart); ok {
				listLen = int(b)
			}
			for i := 0; i+2 <= listLen && dataStart+1+i+2 <= dataEnd; i += 2 {
				v, ok := byteview.Uint16(buf, dataStart+1+i)
				if !ok {
					break
				}
				if v == tls13WireVersion {
					return layer7.TLSv1_TLS1_3
				}
			}
			return fallback
		}

		if dataEnd > len(buf) {
			return layer7.Unversioned
		}
		pos = dataEnd
	}

	if truncated || pos < declaredEnd {
		return layer7.Unversioned
	}
	return fallback
}
