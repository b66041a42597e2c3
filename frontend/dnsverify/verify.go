// Package dnsverify does a full DNS message unmarshal as an optional,
// non-hot-path follow-up to l4dns's header-only detection. The core never
// does this: the detection chain stays allocation-free and bounded to a
// 64-byte view (spec §5), but a caller that wants to confirm a connection
// classified as DNS really carries a well-formed message (e.g. before
// logging it as such, or before routing it to a DNS-specific backend) can
// run this afterward on the buffered full message.
package dnsverify

import "github.com/miekg/dns"

// Result is the outcome of a deep validation pass over a buffer the chain
// already classified as DNS.
type Result struct {
	Valid  bool
	ID     uint16
	Opcode int
	Qtype  string
	Qname  string
}

// Verify fully unmarshals buf as a DNS message. It is not bounds-limited
// like the chain's detectors and may allocate; callers should only invoke
// it once per accepted connection, never on the hot classification path.
func Verify(buf []byte) Result {
	m := new(dns.Msg)
	if err := m.Unpack(buf); err != nil {
		return Result{}
	}
	res := Result{
		Valid:  true,
		ID:     m.Id,
		Opcode: m.Opcode,
	}
	if len(m.Question) > 0 {
		q := m.Question[0]
		res.Qname = q.Name
		res.Qtype = dns.TypeToString[q.Qtype]
	}
	return res
}
