package patchengine

// searchState is mutable during solving (spec §3). A fresh state is
// created per (original, hunks, mode) invocation; it is never shared
// across invocations or goroutines.
type searchState struct {
	applied       map[int]bool
	claimed       map[int]bool
	solutionCount int
	firstSolution []string
	firstPath     []Placement
}

func newSearchState() *searchState {
	return &searchState{
		applied: make(map[int]bool),
		claimed: make(map[int]bool),
	}
}

// clone deep-copies the state. The solver clones on each recursive descent
// rather than maintaining an explicit undo stack: this is the mechanism
// that makes backtracking correct without undo (spec §4.4, §9).
func (s *searchState) clone() *searchState {
	c := &searchState{
		applied:       make(map[int]bool, len(s.applied)),
		claimed:       make(map[int]bool, len(s.claimed)),
		solutionCount: s.solutionCount,
		firstSolution: s.firstSolution,
		firstPath:     s.firstPath,
	}
	for k, v := range s.applied {
		c.applied[k] = v
	}
	for k, v := range s.claimed {
		c.claimed[k] = v
	}
	return c
}
