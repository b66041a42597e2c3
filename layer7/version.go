package layer7

// Version is a per-protocol version tag. The zero value, Unversioned, is
// what a detector reports for a protocol it recognized without being able
// to (or needing to) extract a version. Non-zero values are only ever
// meaningful paired with the Protocol that produced them; the numeric
// spaces of two different protocols' versions overlap on purpose (e.g.
// HTTPv1_1 and TLSv1_TLS1_0 share a tag number) because a Version is never
// interpreted without its Protocol alongside it.
type Version uint8

// Unversioned is reported by detectors for protocols with no on-wire
// version token, or when a versioned protocol's version could not be
// determined from the visible bytes.
const Unversioned Version = 0

// HTTP versions, from the request/status line's version token.
const (
	HTTPv1_0 Version = iota + 1
	HTTPv1_1
	HTTPv2_0
)

// TLS versions, the negotiated (not merely offered) protocol version.
const (
	TLSv1_SSL3_0 Version = iota + 1
	TLSv1_TLS1_0
	TLSv1_TLS1_1
	TLSv1_TLS1_2
	TLSv1_TLS1_3
)

// SSH protocol-exchange versions.
const (
	SSHv1_5 Version = iota + 1
	SSHv2_0
)

// Redis wire protocol versions, selected by the HELLO handshake.
const (
	RedisRESP2 Version = iota + 1
	RedisRESP3
)

// SMB dialect families.
const (
	SMBv1 Version = iota + 1
	SMBv2
	SMBv3
)

// maxVersionTag is an upper bound on the Version constants above; every tag
// must stay below it so it fits VersionFilter's uint16 bitset.
const maxVersionTag = 8

// versionName maps (protocol, version) to a human string for logging. Only
// protocols with real version variants need entries; others report
// "unversioned" for the zero tag.
func versionName(p Protocol, v Version) string {
	if v == Unversioned {
		return "unversioned"
	}
	switch p {
	case HTTP:
		switch v {
		case HTTPv1_0:
			return "1.0"
		case HTTPv1_1:
			return "1.1"
		case HTTPv2_0:
			return "2.0"
		}
	case TLS:
		switch v {
		case TLSv1_SSL3_0:
			return "SSL3.0"
		case TLSv1_TLS1_0:
			return "TLS1.0"
		case TLSv1_TLS1_1:
			return "TLS1.1"
		case TLSv1_TLS1_2:
			return "TLS1.2"
		case TLSv1_TLS1_3:
			return "TLS1.3"
		}
	case SSH:
		switch v {
		case SSHv1_5:
			return "1.5"
		case SSHv2_0:
			return "2.0"
		}
	case Redis:
		switch v {
		case RedisRESP2:
			return "RESP2"
		case RedisRESP3:
			return "RESP3"
		}
	case SMB:
		switch v {
		case SMBv1:
			return "v1"
		case SMBv2:
			return "v2"
		case SMBv3:
			return "v3"
		}
	}
	return "unknown"
}
