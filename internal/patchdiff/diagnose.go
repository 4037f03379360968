package patchdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/codalotl/codalotl/internal/patchengine"
)

// Nearest returns a human-readable explanation of why a hunk's deletion
// block (or pre-context, for a pure insertion) did not match file: it
// finds the best-scoring window of file the same size as the expected
// block and reports an intra-line diff against it. This enriches the bare
// "no placement found" conflict message the engine itself returns (spec
// §7 only specifies the conflict/ambiguity taxonomy, not diagnostic
// quality).
func Nearest(file []string, h patchengine.Hunk) string {
	want := h.DelLines()
	if len(want) == 0 {
		want = h.PreContext()
	}
	if len(want) == 0 {
		return "hunk has no deletion or context lines to locate"
	}

	bestIdx, bestScore := -1, -1
	for i := 0; i+len(want) <= len(file); i++ {
		score := similarity(want, file[i:i+len(want)])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return fmt.Sprintf("file has only %d lines; expected a %d-line block", len(file), len(want))
	}

	got := file[bestIdx : bestIdx+len(want)]
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.Join(want, "\n"), strings.Join(got, "\n"), false)
	return fmt.Sprintf("closest match at line %d:\n%s", bestIdx+1, dmp.DiffPrettyText(diffs))
}

// similarity scores how closely two equal-length line blocks match: the
// number of matching characters in a character-level diff over the joined
// text, minus the number of inserted or deleted characters, floored at
// zero. Higher is closer.
func similarity(a, b []string) int {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.Join(a, "\n"), strings.Join(b, "\n"), false)
	score := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			score += len(d.Text)
		} else {
			score -= len(d.Text)
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}
