package layer7

import "errors"

// Construction-time errors (spec §7). Detection itself never returns an
// error; these surface only from the builder.
var (
	// ErrUnsupportedTransport is returned when a detector is added to a
	// builder whose transport isn't in the detector's Transports() set.
	ErrUnsupportedTransport = errors.New("layer7: detector does not support this builder's transport")
	// ErrDuplicateDetector is returned when the same detector kind is
	// added to a builder twice.
	ErrDuplicateDetector = errors.New("layer7: detector kind already added to this chain")
	// ErrInvalidMaxInspect is returned by SetMaxInspect for n == 0 or
	// n > 65535.
	ErrInvalidMaxInspect = errors.New("layer7: max inspect length must be between 1 and 65535")
	// ErrEmptyChain is returned by Build when no detectors were added.
	ErrEmptyChain = errors.New("layer7: cannot build a chain with no detectors")
)
