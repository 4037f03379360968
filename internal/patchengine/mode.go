package patchengine

import "strings"

// MatchMode selects how strictly two lines must agree to be considered
// equal by the locator and solver (spec §4.1).
type MatchMode int

const (
	// ModeStrict requires byte-for-byte equality.
	ModeStrict MatchMode = iota
	// ModeLenient folds runs of Unicode whitespace before comparing.
	ModeLenient
	// ModeSuperLenient additionally folds punctuation families (dashes,
	// quotes, exotic spaces) to their ASCII equivalents.
	ModeSuperLenient
)

func (m MatchMode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	case ModeSuperLenient:
		return "super-lenient"
	default:
		return "unknown"
	}
}

// linesMatch compares a and b under mode. It is deterministic and free of
// side effects: the same inputs always yield the same answer regardless of
// call order (spec §4.1).
func linesMatch(a, b string, mode MatchMode) bool {
	switch mode {
	case ModeStrict:
		return a == b
	case ModeLenient:
		return foldWhitespace(a) == foldWhitespace(b)
	case ModeSuperLenient:
		return foldPunctuation(foldWhitespace(a)) == foldPunctuation(foldWhitespace(b))
	default:
		return a == b
	}
}

// foldWhitespace splits s on runs of Unicode whitespace, discards empty
// fragments, and rejoins with a single space. This collapses leading,
// trailing, and internal whitespace runs to one canonical form.
func foldWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// punctuationFold maps a single rune to its ASCII equivalent under
// SuperLenient mode. The table is exhaustive for the families listed in
// spec §4.1: hyphen/dash, curly single/double quotes, and non-breaking or
// typographic spaces (the space entries are largely subsumed by
// foldWhitespace already having run first, but are included for fidelity
// with the family the spec defines; the tests exercise the dash and quote
// entries only).
//
// The keys are the literal glyphs, each named in a trailing comment:
// several of these code points are visually indistinguishable from plain
// ASCII space or hyphen in a source listing.
var punctuationFold = map[rune]rune{
	// Hyphen/dash family -> ASCII '-'.
	'‐': '-', // hyphen
	'‑': '-', // non-breaking hyphen
	'‒': '-', // figure dash
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-', // horizontal bar
	'−': '-', // minus sign

	// Curly/low single quotes -> ASCII '\''.
	'‘': '\'', // left single quotation mark
	'’': '\'', // right single quotation mark
	'‚': '\'', // single low-9 quotation mark
	'‛': '\'', // single high-reversed-9 quotation mark

	// Curly/low double quotes -> ASCII '"'.
	'“': '"', // left double quotation mark
	'”': '"', // right double quotation mark
	'„': '"', // double low-9 quotation mark
	'‟': '"', // double high-reversed-9 quotation mark

	// Non-breaking and typographic spaces -> ASCII ' '.
	' ': ' ', // no-break space
	' ': ' ', // en space
	' ': ' ', // em space
	' ': ' ', // three-per-em space
	' ': ' ', // four-per-em space
	' ': ' ', // six-per-em space
	' ': ' ', // figure space
	' ': ' ', // punctuation space
	' ': ' ', // thin space
	' ': ' ', // hair space
	' ': ' ', // narrow no-break space
	' ': ' ', // medium mathematical space
	'　': ' ', // ideographic space
}

// foldPunctuation applies punctuationFold rune-by-rune.
func foldPunctuation(s string) string {
	var b strings.Builder
	changed := false
	for _, r := range s {
		if repl, ok := punctuationFold[r]; ok {
			b.WriteRune(repl)
			changed = true
			continue
		}
		b.WriteRune(r)
	}
	if !changed {
		return s
	}
	return b.String()
}
