package layer7

// DetectorEntry pairs a Detector with the VersionFilter applied to its
// matches. Chain order is significant: earlier entries win ties (spec §3,
// §4.2).
type DetectorEntry struct {
	Detector Detector
	Filter   VersionFilter
}
