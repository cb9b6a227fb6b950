package detection

// filterSegments applies the final accept/discard passes in order,
// preserving insertion order of the survivors.
//
// The length filter always runs. The density filter is opt-in via
// Config.FilterByDensity: merges do not union member-pixel lists, so a
// merged segment's PixelCount undercounts and the ratio test would discard
// real lines.
func filterSegments(segments []*Segment, cfg Config) []*Segment {
	kept := segments[:0]
	for _, s := range segments {
		if s.Length() < cfg.MinUsefulLength {
			continue
		}
		if cfg.FilterByDensity {
			if length := s.Length(); length > 0 &&
				float64(s.PixelCount)/length < cfg.MinPixelDensity {
				continue
			}
		}
		kept = append(kept, s)
	}
	return kept
}
