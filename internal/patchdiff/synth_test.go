package patchdiff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codalotl/codalotl/internal/patchengine"
)

func TestSynthesize_SingleLineReplace(t *testing.T) {
	old := []string{"c", "a", "d"}
	new := []string{"c", "b", "d"}

	hunks := Synthesize(old, new, 1)
	require.Len(t, hunks, 1)
	require.Equal(t, []string{"a"}, hunks[0].DelLines())
	require.Equal(t, []string{"b"}, hunks[0].InsLines())
	require.Equal(t, []string{"c"}, hunks[0].PreContext())
	require.Equal(t, []string{"d"}, hunks[0].PostContext())
}

func TestSynthesize_RoundTripsThroughEngine(t *testing.T) {
	old := []string{"foo", "bar", "baz", "qux"}
	new := []string{"foo", "BAR", "baz", "QUX"}

	hunks := Synthesize(old, new, 1)
	got, err := patchengine.Apply(old, hunks, patchengine.ModeStrict)
	require.NoError(t, err)
	require.Equal(t, new, got)
}

func TestSynthesize_PureInsertion(t *testing.T) {
	old := []string{"a", "b"}
	new := []string{"a", "x", "b"}

	hunks := Synthesize(old, new, 1)
	require.Len(t, hunks, 1)
	require.Empty(t, hunks[0].DelLines())
	require.Equal(t, []string{"x"}, hunks[0].InsLines())
}

func TestSynthesize_PureDeletion(t *testing.T) {
	old := []string{"a", "b", "c"}
	new := []string{"a", "c"}

	hunks := Synthesize(old, new, 1)
	require.Len(t, hunks, 1)
	require.Equal(t, []string{"b"}, hunks[0].DelLines())
	require.Empty(t, hunks[0].InsLines())
}

func TestSynthesize_IdenticalFilesProduceNoHunks(t *testing.T) {
	lines := []string{"a", "b", "c"}
	hunks := Synthesize(lines, lines, 1)
	require.Empty(t, hunks)
}

func TestSynthesize_ContextClampedByWindowSize(t *testing.T) {
	old := []string{"a", "b", "c", "d"}
	new := []string{"a", "b", "X", "d"}

	hunks := Synthesize(old, new, 5)
	require.Len(t, hunks, 1)
	// Only 2 lines of real context exist before the change.
	require.Equal(t, []string{"a", "b"}, hunks[0].PreContext())
	require.Equal(t, []string{"d"}, hunks[0].PostContext())
}
