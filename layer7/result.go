package layer7

import "fmt"

// DetectResult is the public result of a DetectionChain.Detect call: either
// Unknown, or a known protocol and (if the protocol carries one) version.
type DetectResult struct {
	known    bool
	protocol Protocol
	version  Version
}

// Unknown is the sentinel result for a buffer no configured detector
// accepted.
var Unknown = DetectResult{}

// Known builds a positive DetectResult. Detectors and the chain engine use
// this; callers normally only read results, via IsKnown/Protocol/Version.
func Known(p Protocol, v Version) DetectResult {
	return DetectResult{known: true, protocol: p, version: v}
}

// IsKnown reports whether a protocol was identified.
func (r DetectResult) IsKnown() bool { return r.known }

// Protocol returns the identified protocol, or the zero Protocol if
// IsKnown is false.
func (r DetectResult) Protocol() Protocol { return r.protocol }

// Version returns the extracted version, or Unversioned if IsKnown is
// false or the protocol carries no version.
func (r DetectResult) Version() Version { return r.version }

// String renders the result as "protocol/version" or "unknown", primarily
// for logging.
func (r DetectResult) String() string {
	if !r.known {
		return "unknown"
	}
	if r.version == Unversioned {
		return r.protocol.String()
	}
	return fmt.Sprintf("%s/%s", r.protocol, versionName(r.protocol, r.version))
}
