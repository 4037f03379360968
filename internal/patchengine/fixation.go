package patchengine

// fixationResult is the outcome of the fixation pass: hunks pinned to a
// single unambiguous, non-overlapping placement before the solver starts.
type fixationResult struct {
	placements []Placement
	applied    map[int]bool
	claimed    map[int]bool
}

// runFixation walks the hunks in input order and pins any hunk with
// exactly one candidate placement whose footprint doesn't overlap what's
// already claimed (spec §4.3). It is a pure optimisation: every placement
// it pins must also be reachable by the solver, so it must never choose a
// placement the solver wouldn't also have accepted.
func runFixation(file []string, hunks []Hunk, mode MatchMode) fixationResult {
	res := fixationResult{
		applied: make(map[int]bool),
		claimed: make(map[int]bool),
	}

	for idx, h := range hunks {
		cands := candidates(file, h, mode)
		var valid []int
		for _, pos := range cands {
			if deletionMatches(file, h, pos, mode) {
				valid = append(valid, pos)
			}
		}
		if len(valid) != 1 {
			continue
		}
		pos := valid[0]
		fp := footprint(h, pos, mode)
		overlaps := false
		for _, i := range fp {
			if res.claimed[i] {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		res.applied[idx] = true
		for _, i := range fp {
			res.claimed[i] = true
		}
		res.placements = append(res.placements, Placement{HunkIndex: idx, StartOrigOffset: pos})
	}

	return res
}
