// Package byteview provides bounds-checked, allocation-free helpers for
// reading and comparing bytes in a protocol detector's view of a buffer
// (spec §4, "Byte-view utilities"). Every function here is total: a short
// or malformed buffer returns a zero value and/or false/-1 rather than
// panicking, so detectors never need their own bounds checks.
package byteview

// HasPrefix reports whether buf starts with prefix, without allocating.
func HasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	return EqualASCIIFold(buf[:len(prefix)], prefix, false)
}

// HasPrefixFold is HasPrefix with ASCII case-insensitive comparison.
func HasPrefixFold(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	return EqualASCIIFold(buf[:len(prefix)], prefix, true)
}

// EqualASCIIFold compares a and b for equality, optionally folding ASCII
// case (bytes outside 'A'-'Z'/'a'-'z' compare exactly). Lengths must match.
func EqualASCIIFold(a, b []byte, fold bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if fold {
			ca = lowerASCII(ca)
			cb = lowerASCII(cb)
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// IndexByte returns the index of the first occurrence of c in buf, or -1.
// Equivalent to bytes.IndexByte but kept local so detectors have a single,
// auditable no-alloc byte-scan primitive.
func IndexByte(buf []byte, c byte) int {
	for i, b := range buf {
		if b == c {
			return i
		}
	}
	return -1
}

// Index returns the index of the first occurrence of sub in buf, or -1.
func Index(buf, sub []byte) int {
	if len(sub) == 0 {
		return 0
	}
	if len(sub) > len(buf) {
		return -1
	}
	first := sub[0]
	limit := len(buf) - len(sub)
	for i := 0; i <= limit; i++ {
		if buf[i] != first {
			continue
		}
		if EqualASCIIFold(buf[i:i+len(sub)], sub, false) {
			return i
		}
	}
	return -1
}

// ContainsFold reports whether buf contains sub, ASCII case-insensitively.
func ContainsFold(buf, sub []byte) bool {
	if len(sub) == 0 {
		return true
	}
	if len(sub) > len(buf) {
		return false
	}
	limit := len(buf) - len(sub)
	for i := 0; i <= limit; i++ {
		if EqualASCIIFold(buf[i:i+len(sub)], sub, true) {
			return true
		}
	}
	return false
}

// Uint16 reads a big-endian uint16 at offset off. ok is false if the read
// would run past len(buf).
func Uint16(buf []byte, off int) (v uint16, ok bool) {
	if off < 0 || off+2 > len(buf) {
		return 0, false
	}
	return uint16(buf[off])<<8 | uint16(buf[off+1]), true
}

// Uint24 reads a big-endian 24-bit unsigned integer at offset off.
func Uint24(buf []byte, off int) (v uint32, ok bool) {
	if off < 0 || off+3 > len(buf) {
		return 0, false
	}
	return uint32(buf[off])<<16 | uint32(buf[off+1])<<8 | uint32(buf[off+2]), true
}

// Uint32 reads a big-endian uint32 at offset off.
func Uint32(buf []byte, off int) (v uint32, ok bool) {
	if off < 0 || off+4 > len(buf) {
		return 0, false
	}
	return uint32(buf[off])<<24 | uint32(buf[off+1])<<16 | uint32(buf[off+2])<<8 | uint32(buf[off+3]), true
}

// LEUint24 reads a little-endian 24-bit unsigned integer at offset off
// (used by MySQL's handshake packet header).
func LEUint24(buf []byte, off int) (v uint32, ok bool) {
	if off < 0 || off+3 > len(buf) {
		return 0, false
	}
	return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16, true
}

// Uint16LE reads a little-endian uint16 at offset off (used by SMB2's
// header fields, which are little-endian on the wire).
func Uint16LE(buf []byte, off int) (v uint16, ok bool) {
	if off < 0 || off+2 > len(buf) {
		return 0, false
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8, true
}

// ByteAt returns buf[off] and true, or 0 and false if off is out of range.
func ByteAt(buf []byte, off int) (byte, bool) {
	if off < 0 || off >= len(buf) {
		return 0, false
	}
	return buf[off], true
}

// Slice returns buf[start:end] and true if the range is valid, or nil and
// false otherwise. A bounds-checked substitute for a raw slice expression
// so detectors never risk a slice-bounds panic on a short view.
func Slice(buf []byte, start, end int) ([]byte, bool) {
	if start < 0 || end < start || end > len(buf) {
		return nil, false
	}
	return buf[start:end], true
}

// ParseUintASCII parses the ASCII decimal digits at the start of buf, up to
// the first non-digit byte or the end of buf. It returns the parsed value,
// the number of digit bytes consumed, and false if buf starts with no
// digit or the value overflows a uint32.
func ParseUintASCII(buf []byte) (v uint32, n int, ok bool) {
	for n < len(buf) && buf[n] >= '0' && buf[n] <= '9' {
		d := uint32(buf[n] - '0')
		if v > (1<<32-1-d)/10 {
			return 0, 0, false
		}
		v = v*10 + d
		n++
	}
	return v, n, n > 0
}
