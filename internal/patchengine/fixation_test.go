package patchengine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunFixation_PinsUniqueNonOverlappingHunk(t *testing.T) {
	file := []string{"a", "b", "c"}
	hunks := []Hunk{hunkFrom(0, " a", "-b", "+B", " c")}

	res := runFixation(file, hunks, ModeStrict)
	require.True(t, res.applied[0])
	require.Len(t, res.placements, 1)
	require.Equal(t, 0, res.placements[0].StartOrigOffset)
	require.True(t, res.claimed[1]) // "b" at index 1
}

func TestRunFixation_LeavesAmbiguousHunkForSolver(t *testing.T) {
	file := []string{"x", "x", "x"}
	hunks := []Hunk{hunkFrom(0, "-x", "+y")}

	res := runFixation(file, hunks, ModeStrict)
	require.False(t, res.applied[0])
	require.Empty(t, res.placements)
}

func TestRunFixation_SkipsHunkThatWouldOverlapAnEarlierPin(t *testing.T) {
	// Two hunks whose only valid placements share the deletion footprint:
	// whichever is considered first gets pinned; the second must be left
	// for the solver rather than pinned atop an overlapping claim.
	file := []string{"shared", "tail"}
	h1 := hunkFrom(0, "-shared", "+first")
	h2 := hunkFrom(0, "-shared", "+second")

	res := runFixation(file, []Hunk{h1, h2}, ModeStrict)
	require.True(t, res.applied[0])
	require.False(t, res.applied[1])
}

func TestRunFixation_NeverChangesTheFinalOutcome(t *testing.T) {
	// The fixation pass is a pure optimisation: running Apply with and
	// without anything pre-pinned must agree. We can't disable fixation
	// from the outside, so this instead checks that a hunk fixation pins
	// is re-derivable by a from-scratch candidate scan (the invariant
	// fixation's doc comment requires).
	file := []string{"a", "b", "c"}
	h := hunkFrom(0, " a", "-b", "+B", " c")

	res := runFixation(file, []Hunk{h}, ModeStrict)
	require.Len(t, res.placements, 1)
	pinned := res.placements[0]

	cands := candidates(file, h, ModeStrict)
	require.Contains(t, cands, pinned.StartOrigOffset)
}
