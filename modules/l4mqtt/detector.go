// Package l4mqtt detects an MQTT CONNECT packet by its fixed header,
// variable-length remaining-length field, and protocol name.
package l4mqtt

import (
	"github.com/divyam234/protosniff/internal/byteview"
	"github.com/divyam234/protosniff/layer7"
)

const connectFixedHeader = 0x10

// Detector recognizes an MQTT CONNECT packet.
type Detector struct{}

// New returns an MQTT Detector.
func New() *Detector { return &Detector{} }

func (*Detector) Kind() layer7.Protocol           { return layer7.MQTT }
func (*Detector) Transports() layer7.TransportSet { return layer7.TCPOnly }

func (*Detector) TryMatch(buf []byte) layer7.Outcome {
	if len(buf) < 1 {
		return layer7.NeedMoreData()
	}
	if buf[0] != connectFixedHeader {
		return layer7.NoMatch()
	}

	_, rlLen, state := parseRemainingLength(buf[1:])
	switch state {
	case triMore:
		return layer7.NeedMoreData()
	case triNo:
		return layer7.NoMatch()
	}

	varHeaderOff := 1 + rlLen
	if len(buf) < varHeaderOff+2 {
		return layer7.NeedMoreData()
	}
	nameLen, _ := byteview.Uint16(buf, varHeaderOff)
	nameStart := varHeaderOff + 2
	nameEnd := nameStart + int(nameLen)
	if len(buf) < nameEnd {
		return layer7.NeedMoreData()
	}
	name := buf[nameStart:nameEnd]

	validName := (nameLen == 4 && byteview.EqualASCIIFold(name, []byte("MQTT"), false)) ||
		(nameLen == 6 && byteview.EqualASCIIFold(name, []byte("MQIsdp"), false))
	if !validName {
		return layer7.NoMatch()
	}

	if len(buf) < nameEnd+1 {
		return layer7.NeedMoreData()
	}
	switch buf[nameEnd] {
	case 3, 4, 5:
		return layer7.Matched(layer7.MQTT, layer7.Unversioned)
	default:
		return layer7.NoMatch()
	}
}

type tri int

const (
	triNo tri = iota
	triMore
	triYes
)

// parseRemainingLength decodes the MQTT variable-length integer at the
// start of buf (spec §4.3: "≤ 4 bytes"). It returns the decoded value, the
// number of bytes it occupied, and triMore if buf ends mid-varint with no
// terminating byte yet, or triNo if the varint runs past 4 bytes without
// terminating.
func parseRemainingLength(buf []byte) (value int, length int, state tri) {
	multiplier := 1
	for i := 0; i < 4; i++ {
		if i >= len(buf) {
			return 0, 0, triMore
		}
		b := buf[i]
		value += int(b&0x7F) * multiplier
		if b&0x80 == 0 {
			return value, i + 1, triYes
		}
		multiplier *= 128
	}
	return 0, 0, triNo
}
