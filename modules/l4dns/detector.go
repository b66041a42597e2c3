// Package l4dns detects DNS messages: the raw 12-byte header on UDP, and
// the same header behind a 2-byte length prefix on TCP.
package l4dns

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const headerLen = 12

// Minimum wire size of a question or resource record: a root-name octet
// (a single 0x00 length byte, the smallest any compressed or bare name
// can take) plus the fixed fields that follow it. These are lower bounds
// used only to sanity-check declared section counts, never to parse an
// actual record.
const (
	minQuestionBytes = 1 + 2 + 2      // name + QTYPE + QCLASS
	minRecordBytes   = 1 + 2 + 2 + 4 + 2 // name + TYPE + CLASS + TTL + RDLENGTH
)

// UDPDetector recognizes a bare DNS header, as carried directly in a UDP
// datagram.
type UDPDetector struct{}

// NewUDP returns the UDP-transport DNS Detector.
func NewUDP() *UDPDetector { return &UDPDetector{} }

func (*UDPDetector) Kind() layer7.Protocol           { return layer7.DNS }
func (*UDPDetector) Transports() layer7.TransportSet { return layer7.UDPOnly }

func (*UDPDetector) TryMatch(buf []byte) layer7.Outcome {
	return matchHeader(buf)
}

// TCPDetector recognizes a DNS message behind TCP's 2-byte big-endian
// length prefix (spec §4.3).
type TCPDetector struct{}

// NewTCP returns the TCP-transport DNS Detector.
func NewTCP() *TCPDetector { return &TCPDetector{} }

func (*TCPDetector) Kind() layer7.Protocol           { return layer7.DNS }
func (*TCPDetector) Transports() layer7.TransportSet { return layer7.TCPOnly }

// TryMatch strips the length prefix and applies the header check, but
// validates section counts against the frame's *declared* length rather
// than the bytes buffered so far: a TCP stream may still be delivering a
// perfectly consistent message one segment at a time, so only a frame
// whose declared length can't possibly hold what its header promises is
// rejected outright. Bytes not yet arrived are a NeedMoreData matter, not
// a NoMatch one.
func (*TCPDetector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < 2 {
		return layer7.NeedMoreData()
	}
	length, _ := byteview.Uint16(buf, 0)
	if length < headerLen {
		return layer7.NoMatch()
	}
	body := buf[2:]
	if len(body) >= 3 && !validOpcode(body[2]) {
		return layer7.NoMatch()
	}
	if len(body) < headerLen {
		return layer7.NeedMoreData()
	}
	qd, an, ns, ar := sectionCounts(body)
	if minWireBytes(qd, an, ns, ar) > int(length)-headerLen {
		return layer7.NoMatch()
	}
	if minWireBytes(qd, an, ns, ar) > len(body)-headerLen {
		return layer7.NeedMoreData()
	}
	return layer7.Matched(layer7.DNS, layer7.Unversioned)
}

// matchHeader applies the shared DNS header check (spec §4.3) to buf,
// which should already have any transport framing stripped. It is used
// directly by UDPDetector, where buf is always the datagram in full: a
// UDP read never returns a partial datagram, so the bytes visible beyond
// the header are all the bytes there will ever be, and an inconsistency
// can be decided immediately rather than waited out.
func matchHeader(buf []byte) layer7.Outcome {
	if len(buf) >= 3 && !validOpcode(buf[2]) {
		return layer7.NoMatch()
	}
	if len(buf) < headerLen {
		return layer7.NeedMoreData()
	}
	qd, an, ns, ar := sectionCounts(buf)
	if minWireBytes(qd, an, ns, ar) > len(buf)-headerLen {
		return layer7.NoMatch()
	}
	return layer7.Matched(layer7.DNS, layer7.Unversioned)
}

// sectionCounts reads QDCOUNT, ANCOUNT, NSCOUNT and ARCOUNT from a
// fully-visible 12-byte-or-longer header.
func sectionCounts(buf []byte) (qd, an, ns, ar uint16) {
	qd, _ = byteview.Uint16(buf, 4)
	an, _ = byteview.Uint16(buf, 6)
	ns, _ = byteview.Uint16(buf, 8)
	ar, _ = byteview.Uint16(buf, 10)
	return qd, an, ns, ar
}

// minWireBytes is the fewest bytes the declared section counts could
// possibly occupy (spec §4.3: "consistent with at least the size of the
// visible section"); a lower bound only, since compressed names can be a
// single octet.
func minWireBytes(qd, an, ns, ar uint16) int {
	return int(qd)*minQuestionBytes + (int(an)+int(ns)+int(ar))*minRecordBytes
}

// validOpcode reports whether the 4-bit OPCODE field in the flags byte
// (bits 6-3 of byte 2) is one of the values in active use (spec §4.3:
// {0,1,2,4,5}). RCODE (byte 3's low nibble) is deliberately not checked:
// reserved values there are tolerated, not rejected.
func validOpcode(flagsByte2 byte) bool {
	switch (flagsByte2 >> 3) & 0x0F {
	case 0, 1, 2, 4, 5:
		return true
	default:
		return false
	}
}
