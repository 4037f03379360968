package uniwidth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextWidth_ASCII(t *testing.T) {
	require.Equal(t, 5, TextWidth("hello", nil))
}

func TestTextWidth_EmptyString(t *testing.T) {
	require.Equal(t, 0, TextWidth("", nil))
}

func TestTextWidth_CombiningMarkDoesNotAddWidth(t *testing.T) {
	// "e" + U+0301 (combining acute accent) is one grapheme cluster.
	combined := "é"
	require.Equal(t, 1, TextWidth(combined, nil))
}

func TestTextWidth_EastAsianWideWhenOptedIn(t *testing.T) {
	// U+2460 (circled digit one) has East Asian "Ambiguous" width: one
	// column by default, two when EastAsianWidth is set. (Wide CJK
	// ideographs are two columns in every mode.)
	ambiguous := "①"
	require.Equal(t, 1, TextWidth(ambiguous, nil))
	require.Equal(t, 2, TextWidth(ambiguous, &Options{EastAsianWidth: true}))
}

func TestTextWidth_BytesVariantMatchesStringVariant(t *testing.T) {
	require.Equal(t, TextWidth("hello", nil), TextWidth([]byte("hello"), nil))
}

func TestRuneWidth_ASCII(t *testing.T) {
	require.Equal(t, 1, RuneWidth('a', nil))
}

func TestGraphemeIterator_SplitsCombinedCharacterAsOneToken(t *testing.T) {
	iter := NewGraphemeIterator("éf", nil)

	var tokens []string
	for iter.Next() {
		tokens = append(tokens, iter.Value())
	}

	require.Equal(t, []string{"é", "f"}, tokens)
}

func TestGraphemeIterator_TextWidthPerToken(t *testing.T) {
	iter := NewGraphemeIterator("ab", nil)

	require.True(t, iter.Next())
	require.Equal(t, "a", iter.Value())
	require.Equal(t, 1, iter.TextWidth())

	require.True(t, iter.Next())
	require.Equal(t, "b", iter.Value())
	require.Equal(t, 1, iter.TextWidth())

	require.False(t, iter.Next())
}

func TestGraphemeIterator_StartEndTrackByteOffsets(t *testing.T) {
	iter := NewGraphemeIterator("ab", nil)

	require.True(t, iter.Next())
	require.Equal(t, 0, iter.Start())
	require.Equal(t, 1, iter.End())

	require.True(t, iter.Next())
	require.Equal(t, 1, iter.Start())
	require.Equal(t, 2, iter.End())
}
