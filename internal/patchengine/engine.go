package patchengine

// Apply is the engine's pure entry point: given the current line-sequence
// of a single file and an ordered sequence of hunks, it locates each hunk
// under the given mode and produces the updated line-sequence, or an error
// wrapping ErrConflict or ErrAmbiguous (spec §4.5).
//
// Apply never mutates original or hunks, does no I/O, and is reentrant:
// each call owns its own search state and node budget (spec §5).
func Apply(original []string, hunks []Hunk, mode MatchMode) ([]string, error) {
	if len(original) == 0 && allDeletionsEmpty(hunks) {
		var out []string
		for _, h := range hunks {
			out = append(out, h.InsLines()...)
		}
		return out, nil
	}

	fixed := runFixation(original, hunks, mode)

	state := newSearchState()
	for k, v := range fixed.applied {
		state.applied[k] = v
	}
	for k, v := range fixed.claimed {
		state.claimed[k] = v
	}
	path := append([]Placement(nil), fixed.placements...)

	// solve still runs when fixation already pinned every hunk: it's the
	// simplest way to get the single-solution bookkeeping (and thus the
	// replayed result) produced identically to any other run.
	budget := &nodeBudget{}
	solve(original, hunks, state, path, mode, budget)

	switch {
	case state.solutionCount == 0:
		return nil, conflictError("no valid patch application sequence found; add more context or check that the hunk's deleted lines still exist")
	case state.solutionCount >= 2:
		return nil, ambiguousError("hunk context matches more than one non-overlapping location; add more context to make the match unique")
	default:
		return state.firstSolution, nil
	}
}

func allDeletionsEmpty(hunks []Hunk) bool {
	for _, h := range hunks {
		if len(h.DelLines()) > 0 {
			return false
		}
	}
	return true
}
