package patchengine

// Placement records where a hunk's pre-context anchor (or its deletion
// block, absent pre-context) aligns in the original line-sequence (spec
// §3).
type Placement struct {
	HunkIndex       int
	StartOrigOffset int
}

// footprint returns the original-line indices a placement of h at pos
// would consume via its deletion block (spec §4.2's "deletion footprint
// starts at i + adj_pre").
func footprint(h Hunk, pos int, mode MatchMode) []int {
	adjPre := h.effectivePreLen(mode)
	del := h.DelLines()
	if len(del) == 0 {
		return nil
	}
	out := make([]int, len(del))
	for j := range del {
		out[j] = pos + adjPre + j
	}
	return out
}

// deletionMatches reports whether h's deletion block, placed at pos,
// actually matches file content line-by-line under mode. A placement
// outside file bounds never matches.
func deletionMatches(file []string, h Hunk, pos int, mode MatchMode) bool {
	adjPre := h.effectivePreLen(mode)
	del := h.DelLines()
	for j, want := range del {
		idx := pos + adjPre + j
		if idx < 0 || idx >= len(file) || !linesMatch(file[idx], want, mode) {
			return false
		}
	}
	return true
}
