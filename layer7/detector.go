package layer7

// Detector classifies one protocol from a read-only view of a connection's
// leading bytes. Implementations must be stateless, value-like, allocate
// nothing, and never mutate buf. TryMatch must be total: it must return a
// Status for every buffer length, including zero, and must never panic.
//
// modules/l4http, modules/l4tls, ... each provide one Detector.
type Detector interface {
	// Kind identifies the protocol this detector recognizes.
	Kind() Protocol
	// Transports reports which transports this detector applies to.
	Transports() TransportSet
	// TryMatch inspects buf (already clipped to the chain's max-inspect
	// length) and reports whether it matches this detector's protocol.
	TryMatch(buf []byte) Outcome
}
