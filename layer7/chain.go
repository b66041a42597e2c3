package layer7

// defaultMaxInspect is the number of leading bytes a chain examines unless
// the builder overrides it (spec §3, §6).
const defaultMaxInspect = 64

// DetectionChain is an ordered, immutable sequence of DetectorEntry plus a
// Transport and a max-inspect length (spec §3). Build one with BuilderTCP
// or BuilderUDP; once built, it holds no mutable state and may be shared
// across any number of goroutines without synchronization.
type DetectionChain struct {
	entries    []DetectorEntry
	transport  Transport
	maxInspect int
	sink       TraceSink
}

// Transport reports the transport this chain was built for.
func (c *DetectionChain) Transport() Transport { return c.transport }

// MaxInspect reports the configured inspection window, in bytes.
func (c *DetectionChain) MaxInspect() int { return c.maxInspect }

// view clips buf to the chain's max-inspect length (spec §4.2 step 1).
func (c *DetectionChain) view(buf []byte) []byte {
	if len(buf) > c.maxInspect {
		return buf[:c.maxInspect]
	}
	return buf
}

// Detect runs buf through every configured detector in chain order and
// returns the first accepted Match, or Unknown if none matched (spec
// §4.2). Detect performs no I/O, allocates nothing, and is pure: calling
// it twice with the same bytes always returns the same result.
func (c *DetectionChain) Detect(buf []byte) DetectResult {
	view := c.view(buf)
	sink := c.sink
	if sink == nil {
		sink = noopSink{}
	}
	for _, entry := range c.entries {
		outcome := entry.Detector.TryMatch(view)
		sink.Trace(TraceEvent{Detector: entry.Detector.Kind(), Outcome: outcome})
		if outcome.Status == StatusMatch && entry.Filter.accepts(outcome.Version) {
			return Known(outcome.Protocol, outcome.Version)
		}
	}
	return Unknown
}

// NeedsMore reports whether at least one configured detector found buf's
// visible prefix consistent with its protocol but too short to decide
// (spec §4.2's saw_need_more, surfaced as the auxiliary
// detect_needs_more query). A caller reading incrementally can use this to
// decide whether reading more bytes and retrying Detect is worthwhile.
//
// A filtered-out Match (the detector matched but the version was rejected)
// does not count as needing more data: the filter has already decided that
// buffer will never satisfy this entry, regardless of what follows.
func (c *DetectionChain) NeedsMore(buf []byte) bool {
	view := c.view(buf)
	for _, entry := range c.entries {
		if entry.Detector.TryMatch(view).Status == StatusNeedMoreData {
			return true
		}
	}
	return false
}
