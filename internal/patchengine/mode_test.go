package patchengine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinesMatch_Strict(t *testing.T) {
	require.True(t, linesMatch("foo", "foo", ModeStrict))
	require.False(t, linesMatch("foo", "foo ", ModeStrict))
	require.False(t, linesMatch(" foo", "foo", ModeStrict))
}

func TestLinesMatch_Lenient(t *testing.T) {
	require.True(t, linesMatch("  foo   bar", "foo bar", ModeLenient))
	require.True(t, linesMatch("foo\tbar", "foo bar", ModeLenient))
	require.False(t, linesMatch("foo", "bar", ModeLenient))
}

func TestLinesMatch_SuperLenient(t *testing.T) {
	require.True(t, linesMatch("say “hello”", `say "hello"`, ModeSuperLenient))
	require.True(t, linesMatch("2010–2020", "2010-2020", ModeSuperLenient))
	require.True(t, linesMatch("don’t", "don't", ModeSuperLenient))
	require.False(t, linesMatch("say “hello”", `say "hello"`, ModeLenient))
}

func TestFoldWhitespace_Deterministic(t *testing.T) {
	require.Equal(t, foldWhitespace("  a   b\tc  "), foldWhitespace("a b c"))
	// Calling twice yields the same result (idempotent, side-effect free).
	once := foldWhitespace("  a   b  ")
	twice := foldWhitespace(once)
	require.Equal(t, once, twice)
}

func TestFoldPunctuation_ExhaustiveDashFamily(t *testing.T) {
	dashes := []rune{'‐', '‑', '‒', '–', '—', '―', '−'}
	for _, d := range dashes {
		require.Equal(t, "a-b", foldPunctuation("a"+string(d)+"b"))
	}
}

func TestFoldPunctuation_QuoteFamilies(t *testing.T) {
	singles := []rune{'‘', '’', '‚', '‛'}
	for _, q := range singles {
		require.Equal(t, "a'b", foldPunctuation("a"+string(q)+"b"))
	}
	doubles := []rune{'“', '”', '„', '‟'}
	for _, q := range doubles {
		require.Equal(t, `a"b`, foldPunctuation("a"+string(q)+"b"))
	}
}

func TestFoldPunctuation_LeavesPlainASCIIAlone(t *testing.T) {
	require.Equal(t, `plain "text" with-no-fancy'bits`, foldPunctuation(`plain "text" with-no-fancy'bits`))
}
