package patchengine

// maxBacktrackNodes bounds the backtracking search (spec §4.4). Exceeding
// it is treated as "potentially ambiguous" and reported as ambiguity.
const maxBacktrackNodes = 100_000

// nodeBudget tracks recursive entries for a single top-level invocation.
// It is allocated fresh by Apply and passed down by reference through
// solve's recursion, never stored on the package or shared across goroutines, so
// concurrent calls on distinct execution contexts never observe each
// other's counts (spec §5, §9).
type nodeBudget struct {
	count int
}

func (b *nodeBudget) enter() (overBudget bool) {
	b.count++
	return b.count > maxBacktrackNodes
}

// solve extends state/path into a complete placement set, exploring every
// consistent assignment of unapplied hunks to candidate positions. It
// recognises "no solution" (solutionCount stays 0) and "multiple distinct
// solutions" (solutionCount saturates at 2) as distinct outcomes, and when
// exactly one solution exists, leaves state.firstSolution holding the
// replayed result (spec §4.4).
func solve(file []string, hunks []Hunk, state *searchState, path []Placement, mode MatchMode, budget *nodeBudget) {
	if over := budget.enter(); over || state.solutionCount > 1 {
		state.solutionCount = 2
		return
	}

	if len(path) == len(hunks) {
		candidate := replay(file, hunks, path, mode)
		if state.solutionCount == 0 {
			state.solutionCount = 1
			state.firstSolution = candidate
			state.firstPath = append([]Placement(nil), path...)
			return
		}
		if linesEqual(state.firstSolution, candidate) {
			return
		}
		state.solutionCount = 2
		return
	}

	minOrig, haveMin := minOrigIndex(hunks, state.applied)

	for i, h := range hunks {
		if state.applied[i] {
			continue
		}
		if haveMin && h.OrigIndex() != minOrig {
			continue
		}

		for _, pos := range candidates(file, h, mode) {
			if !deletionMatches(file, h, pos, mode) {
				continue
			}
			fp := footprint(h, pos, mode)
			if overlapsClaimed(fp, state.claimed) {
				continue
			}

			next := state.clone()
			next.applied[i] = true
			for _, idx := range fp {
				next.claimed[idx] = true
			}
			nextPath := append(append([]Placement(nil), path...), Placement{HunkIndex: i, StartOrigOffset: pos})

			solve(file, hunks, next, nextPath, mode, budget)

			state.solutionCount = next.solutionCount
			if state.solutionCount == 1 {
				state.firstSolution = next.firstSolution
				state.firstPath = next.firstPath
			}
			if state.solutionCount > 1 {
				return
			}
		}
	}
}

// minOrigIndex returns the minimum OrigIndex among hunks not yet applied,
// implementing the solver's search ordering (spec §4.4, §9): choose among
// unapplied hunks by minimum orig_index, tolerating ties (broken by input
// order, which the subsequent range over hunks already provides).
func minOrigIndex(hunks []Hunk, applied map[int]bool) (int, bool) {
	min := 0
	have := false
	for i, h := range hunks {
		if applied[i] {
			continue
		}
		if !have || h.OrigIndex() < min {
			min = h.OrigIndex()
			have = true
		}
	}
	return min, have
}

func overlapsClaimed(footprint []int, claimed map[int]bool) bool {
	for _, idx := range footprint {
		if claimed[idx] {
			return true
		}
	}
	return false
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
