package layer7

// Builder assembles a DetectionChain for one Transport (spec §4.5). Use
// BuilderTCP or BuilderUDP to create one; it is not meant to be shared
// across the goroutine that configures it, but the DetectionChain it
// eventually Builds is.
//
// Every mutating method returns the Builder so calls can be chained; the
// first error encountered is recorded and returned by Build, so a caller
// doesn't need to check err after every Add.
type Builder struct {
	transport  Transport
	maxInspect int
	entries    []DetectorEntry
	seen       map[Protocol]bool
	sink       TraceSink
	err        error
}

// BuilderTCP starts a chain builder for TCP connections.
func BuilderTCP() *Builder { return newBuilder(TCP) }

// BuilderUDP starts a chain builder for UDP datagrams.
func BuilderUDP() *Builder { return newBuilder(UDP) }

func newBuilder(t Transport) *Builder {
	return &Builder{
		transport:  t,
		maxInspect: defaultMaxInspect,
		seen:       make(map[Protocol]bool),
	}
}

// Add appends a detector with the default AcceptAll version filter.
func (b *Builder) Add(d Detector) *Builder {
	return b.AddFiltered(d, AcceptAll())
}

// AddFiltered appends a detector with an explicit VersionFilter: a Match
// whose version the filter rejects is treated as if that detector hadn't
// matched at all (spec §3, §4.2).
func (b *Builder) AddFiltered(d Detector, filter VersionFilter) *Builder {
	if b.err != nil {
		return b
	}
	if !d.Transports().Has(b.transport) {
		b.err = ErrUnsupportedTransport
		return b
	}
	kind := d.Kind()
	if b.seen[kind] {
		b.err = ErrDuplicateDetector
		return b
	}
	b.seen[kind] = true
	b.entries = append(b.entries, DetectorEntry{Detector: d, Filter: filter})
	return b
}

// WithDefaultChain seeds the builder with detectors in the given order,
// each with the default AcceptAll filter, as the composition root for
// "with_default_chain()" (spec §4.5, §4.4). The caller supplies the
// concrete, transport-appropriate ordered detector list; layer7 itself
// holds no references to concrete per-protocol detector implementations.
func (b *Builder) WithDefaultChain(detectors ...Detector) *Builder {
	for _, d := range detectors {
		b.Add(d)
	}
	return b
}

// SetMaxInspect overrides the inspection window (default 64 bytes, spec
// §3, §6). n must be in [1, 65535].
func (b *Builder) SetMaxInspect(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 || n > 65535 {
		b.err = ErrInvalidMaxInspect
		return b
	}
	b.maxInspect = n
	return b
}

// WithTraceSink attaches a TraceSink the built chain will call once per
// detector attempt during Detect (spec §6). Passing nil restores the
// zero-cost no-op behavior.
func (b *Builder) WithTraceSink(sink TraceSink) *Builder {
	b.sink = sink
	return b
}

// Build finalizes the chain. It fails if any prior call recorded an error,
// or if no detectors were added.
func (b *Builder) Build() (*DetectionChain, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.entries) == 0 {
		return nil, ErrEmptyChain
	}
	entries := make([]DetectorEntry, len(b.entries))
	copy(entries, b.entries)
	return &DetectionChain{
		entries:    entries,
		transport:  b.transport,
		maxInspect: b.maxInspect,
		sink:       b.sink,
	}, nil
}
