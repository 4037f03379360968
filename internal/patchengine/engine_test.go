package patchengine

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// hunkFrom builds a Hunk from lines written in the wire-format convention
// (' ' context, '-' deletion, '+' insertion), to keep test fixtures close
// to the patch text a reader would actually author.
func hunkFrom(origIndex int, spec ...string) Hunk {
	var lines []RoledLine
	for _, s := range spec {
		role := RoleContext
		switch s[0] {
		case '-':
			role = RoleDeletion
		case '+':
			role = RoleInsertion
		case ' ':
			role = RoleContext
		default:
			panic("hunkFrom: line must start with ' ', '-' or '+': " + s)
		}
		lines = append(lines, RoledLine{Role: role, Text: s[1:]})
	}
	return NewHunk(lines, origIndex)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestApply_SimpleUpdate(t *testing.T) {
	original := splitLines("a")
	hunks := []Hunk{hunkFrom(0, "-a", "+b")}
	got, err := Apply(original, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, got)
}

func TestApply_UpdateWithContext(t *testing.T) {
	original := splitLines("c\na\nd")
	hunks := []Hunk{hunkFrom(0, " c", "-a", "+b", " d")}
	got, err := Apply(original, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, splitLines("c\nb\nd"), got)
}

func TestApply_MultiHunkIndependentEdits(t *testing.T) {
	original := splitLines("foo\nbar\nbaz\nqux")
	hunks := []Hunk{
		hunkFrom(0, " foo", "-bar", "+BAR"),
		hunkFrom(2, " baz", "-qux", "+QUX"),
	}
	got, err := Apply(original, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, splitLines("foo\nBAR\nbaz\nQUX"), got)
}

func TestApply_RepeatedContextDisambiguation(t *testing.T) {
	original := splitLines("Marker\nTarget\nMarker\nOther Target\nMarker")
	hunks := []Hunk{
		hunkFrom(0, " Marker", "-Target", "+Modified Target", " Marker"),
	}
	got, err := Apply(original, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, splitLines("Marker\nModified Target\nMarker\nOther Target\nMarker"), got)
}

func TestApply_LargeScatteredEdits(t *testing.T) {
	n := 5000
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = "Line " + strconv.Itoa(i)
	}

	mk := func(idx int) Hunk {
		return hunkFrom(idx, " "+lines[idx-1], "-"+lines[idx], "+Modified "+lines[idx], " "+lines[idx+1])
	}
	hunks := []Hunk{mk(10), mk(2500), mk(4990)}

	got, err := Apply(lines, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, n, len(got))
	for i, want := range lines {
		switch i {
		case 10, 2500, 4990:
			require.Equal(t, "Modified "+want, got[i])
		default:
			require.Equal(t, want, got[i])
		}
	}
}

func TestApply_WindowsTerminatorsAbsorbed(t *testing.T) {
	// The caller is responsible for splitting on terminators before
	// calling the engine and rejoining with its chosen terminator; the
	// engine itself only ever sees bare lines.
	raw := "Line 1\r\nLine 2\r\nLine 3"
	original := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	hunks := []Hunk{hunkFrom(0, " Line 1", "-Line 2", "+Modified Line 2", " Line 3")}
	got, err := Apply(original, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, "Line 1\nModified Line 2\nLine 3", strings.Join(got, "\n"))
}

func TestApply_AmbiguityRejection(t *testing.T) {
	original := splitLines("x\nx\nx")
	hunks := []Hunk{hunkFrom(0, "-x", "+y")}
	_, err := Apply(original, hunks, ModeStrict)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAmbiguous)
}

func TestApply_ConflictWhenNoPlacement(t *testing.T) {
	original := splitLines("alpha\nbeta")
	hunks := []Hunk{hunkFrom(0, "-gamma", "+delta")}
	_, err := Apply(original, hunks, ModeStrict)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrConflict)
}

func TestApply_IdempotentDeletionFailsSecondTime(t *testing.T) {
	original := splitLines("a\nb\nc")
	h := hunkFrom(0, " a", "-b", " c")

	got, err := Apply(original, []Hunk{h}, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, splitLines("a\nc"), got)

	_, err = Apply(got, []Hunk{h}, ModeStrict)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrConflict)
}

func TestApply_IdentityHunkLeavesContentInvariant(t *testing.T) {
	original := splitLines("one\ntwo\nthree")
	h := hunkFrom(0, " one", "-two", "+two", " three")
	got, err := Apply(original, []Hunk{h}, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, original, got)
}

func TestApply_LengthArithmetic(t *testing.T) {
	original := splitLines("a\nb\nc\nd")
	hunks := []Hunk{
		hunkFrom(0, " a", "-b", "+b1", "+b2"),
		hunkFrom(2, " c", "-d"),
	}
	got, err := Apply(original, hunks, ModeStrict)
	require.NoError(t, err)
	wantDelta := (len(hunks[0].InsLines()) - len(hunks[0].DelLines())) + (len(hunks[1].InsLines()) - len(hunks[1].DelLines()))
	require.Equal(t, len(original)+wantDelta, len(got))
}

func TestApply_DeterminismAcrossInvocations(t *testing.T) {
	original := splitLines("alpha\nbeta\ngamma\ndelta")
	hunks := []Hunk{
		hunkFrom(0, " alpha", "-beta", "+BETA"),
		hunkFrom(2, " gamma", "-delta", "+DELTA"),
	}
	first, err1 := Apply(original, hunks, ModeStrict)
	second, err2 := Apply(original, hunks, ModeStrict)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, first, second)
}

func TestApply_ModeMonotonicity(t *testing.T) {
	// Trailing whitespace on the deleted line fails Strict but should
	// succeed under Lenient; whenever both succeed the results must be
	// byte-equal line sequences.
	original := splitLines("a\nb  \nc")
	hunks := []Hunk{hunkFrom(0, " a", "-b", "+B", " c")}

	strictResult, strictErr := Apply(original, hunks, ModeStrict)
	lenientResult, lenientErr := Apply(original, hunks, ModeLenient)
	require.Error(t, strictErr)
	require.NoError(t, lenientErr)
	_ = strictResult
	require.Equal(t, splitLines("a\nB\nc"), lenientResult)

	// Without the trailing whitespace both modes succeed and must agree.
	clean := splitLines("a\nb\nc")
	strictClean, err := Apply(clean, hunks, ModeStrict)
	require.NoError(t, err)
	lenientClean, err := Apply(clean, hunks, ModeLenient)
	require.NoError(t, err)
	require.Equal(t, strictClean, lenientClean)
}

func TestApplyWithEscalation_RetriesOnConflict(t *testing.T) {
	original := splitLines("a\nb  \nc")
	hunks := []Hunk{hunkFrom(0, " a", "-b", "+B", " c")}
	got, mode, err := ApplyWithEscalation(original, hunks)
	require.NoError(t, err)
	require.Equal(t, ModeLenient, mode)
	require.Equal(t, splitLines("a\nB\nc"), got)
}

func TestApplyWithEscalation_NeverTriesSuperLenient(t *testing.T) {
	original := splitLines("a\nb—dash\nc")
	hunks := []Hunk{hunkFrom(0, " a", "-b-dash", "+B", " c")}
	_, _, err := ApplyWithEscalation(original, hunks)
	require.Error(t, err)

	got, err := Apply(original, hunks, ModeSuperLenient)
	require.NoError(t, err)
	require.Equal(t, splitLines("a\nB\nc"), got)
}

func TestApply_PureInsertionAtEnd(t *testing.T) {
	original := splitLines("a\nb")
	hunks := []Hunk{hunkFrom(2, "+c")}
	got, err := Apply(original, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, splitLines("a\nb\nc"), got)
}

func TestApply_EmptyOriginalPureInsertions(t *testing.T) {
	hunks := []Hunk{hunkFrom(0, "+a"), hunkFrom(0, "+b")}
	got, err := Apply(nil, hunks, ModeStrict)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}
