// Package patchengine implements the hunk-application engine: given a
// sequence of hunks expressing context/deletion/insertion lines and the
// current line-sequence of a file, it locates each hunk and produces the
// updated line-sequence, or reports that the hunk set has no valid
// placement (conflict) or more than one materially distinct placement
// (ambiguity).
//
// The engine is a pure function of (original lines, hunks, mode); it does
// no I/O and owns no long-lived state. Parsing patch text into hunks and
// routing file-level actions (add/delete/rename) are handled by sibling
// packages (patchparser, patchvfs).
package patchengine

// LineRole tags a line within a hunk.
type LineRole int

const (
	// RoleContext marks a line unchanged between the pre- and post-image.
	RoleContext LineRole = iota
	// RoleDeletion marks a line present only in the pre-image.
	RoleDeletion
	// RoleInsertion marks a line present only in the post-image.
	RoleInsertion
)

func (r LineRole) String() string {
	switch r {
	case RoleContext:
		return "context"
	case RoleDeletion:
		return "deletion"
	case RoleInsertion:
		return "insertion"
	default:
		return "unknown"
	}
}

// RoledLine is a single (role, text) pair making up a hunk.
type RoledLine struct {
	Role LineRole
	Text string
}

// Hunk is an immutable ordered sequence of RoledLines representing one
// localised edit, plus the del/ins projections and the orig_index hint
// described in spec §3. Construct with NewHunk; the zero value is not
// meaningful.
type Hunk struct {
	lines     []RoledLine
	delLines  []string
	insLines  []string
	origIndex int
}

// NewHunk builds a Hunk from its full (role, text) sequence and a parser
// orig_index hint. del_lines and ins_lines are derived as order-preserving
// projections, satisfying invariant (i) in spec §3 by construction.
func NewHunk(lines []RoledLine, origIndex int) Hunk {
	h := Hunk{
		lines:     append([]RoledLine(nil), lines...),
		origIndex: origIndex,
	}
	for _, l := range h.lines {
		switch l.Role {
		case RoleDeletion:
			h.delLines = append(h.delLines, l.Text)
		case RoleInsertion:
			h.insLines = append(h.insLines, l.Text)
		}
	}
	return h
}

// Lines returns the full ordered (role, text) sequence.
func (h Hunk) Lines() []RoledLine { return h.lines }

// DelLines returns the ordered subsequence of deletion lines.
func (h Hunk) DelLines() []string { return h.delLines }

// InsLines returns the ordered subsequence of insertion lines.
func (h Hunk) InsLines() []string { return h.insLines }

// OrigIndex returns the parser-provided position hint.
func (h Hunk) OrigIndex() int { return h.origIndex }

// PreContext returns the leading contiguous run of Context lines (invariant
// (ii) in spec §3: only a leading run counts as the pre-context anchor).
func (h Hunk) PreContext() []string {
	var pre []string
	for _, l := range h.lines {
		if l.Role != RoleContext {
			break
		}
		pre = append(pre, l.Text)
	}
	return pre
}

// PostContext returns the trailing contiguous run of Context lines.
func (h Hunk) PostContext() []string {
	var post []string
	for i := len(h.lines) - 1; i >= 0; i-- {
		if h.lines[i].Role != RoleContext {
			break
		}
		post = append(post, h.lines[i].Text)
	}
	// reverse into original order
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// effectivePreLen computes adj_pre (spec §4.2's context/deletion adjacency
// correction): when the pre-context's last line is textually identical
// (under mode) to the first deleted line, the pre-context anchor only
// "really" covers one fewer line. Every caller recomputes this from the
// hunk and mode rather than relying on a cached value.
func (h Hunk) effectivePreLen(mode MatchMode) int {
	pre := h.PreContext()
	preLen := len(pre)
	if preLen > 0 && len(h.delLines) > 0 {
		if linesMatch(pre[preLen-1], h.delLines[0], mode) {
			return preLen - 1
		}
	}
	return preLen
}
