package patchengine

// candidates enumerates every start offset in file at which hunk could be
// placed, per the location rules in spec §4.2. Offsets are returned in
// ascending order.
func candidates(file []string, h Hunk, mode MatchMode) []int {
	pre := h.PreContext()
	del := h.DelLines()

	if len(pre) == 0 {
		if len(del) == 0 {
			// Rule 1: pure insertion at a file-wide position.
			pos := h.OrigIndex()
			if pos > len(file) {
				pos = len(file)
			}
			return []int{pos}
		}
		// Rule 2: pure deletion/insert with no leading anchor.
		return matchAllOffsets(file, del, mode)
	}

	// Rule 3: leading context anchors the search.
	var positions []int
	if len(file) >= len(pre) {
		for i := 0; i+len(pre) <= len(file); i++ {
			if sliceMatches(file[i:i+len(pre)], pre, mode) {
				positions = append(positions, i)
			}
		}
	}

	post := nonBlankPostContext(h)

	if len(del) == 0 && len(h.InsLines()) > 0 && len(post) > 0 {
		positions = disambiguateByTrailingAnchor(file, positions, pre, post, mode)
	}

	if len(h.PostContext()) == 0 && len(positions) == 0 && mode == ModeLenient {
		positions = lenientSingleLineAnchorFallback(file, pre, mode)
	}

	return positions
}

// matchAllOffsets returns every offset i in [0, len(file)-len(pattern)] such
// that file[i+j] matches pattern[j] for all j.
func matchAllOffsets(file, pattern []string, mode MatchMode) []int {
	var positions []int
	n := len(pattern)
	if n == 0 || len(file) < n {
		return positions
	}
	for i := 0; i+n <= len(file); i++ {
		if sliceMatches(file[i:i+n], pattern, mode) {
			positions = append(positions, i)
		}
	}
	return positions
}

func sliceMatches(a, b []string, mode MatchMode) bool {
	for j := range b {
		if !linesMatch(a[j], b[j], mode) {
			return false
		}
	}
	return true
}

// nonBlankPostContext returns the hunk's trailing context run with blank
// lines removed, per spec §4.2 ("Blank post-context lines are ignored for
// anchoring").
func nonBlankPostContext(h Hunk) []string {
	post := h.PostContext()
	var out []string
	for _, l := range post {
		if isBlank(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func isBlank(s string) bool {
	return foldWhitespace(s) == ""
}

// disambiguateByTrailingAnchor keeps only candidates for which the first
// non-blank post-context line appears within a short window after the
// pre-context, per spec §4.2.
func disambiguateByTrailingAnchor(file []string, positions []int, pre, post []string, mode MatchMode) []int {
	anchor := post[0]
	preLen := len(pre)
	var filtered []int
	for _, pos := range positions {
		start := pos + preLen
		end := pos + preLen + preLen + 10
		if end > len(file) {
			end = len(file)
		}
		found := false
		for i := start; i < end; i++ {
			if linesMatch(file[i], anchor, mode) {
				found = true
				break
			}
		}
		if found {
			filtered = append(filtered, pos)
		}
	}
	return filtered
}

// lenientSingleLineAnchorFallback is the single concession to partial
// context drift described in spec §4.2: when post-context is empty, no
// candidates were found, and mode is exactly Lenient, re-attempt using only
// the last pre-context line as a one-line anchor scanned across the whole
// file.
func lenientSingleLineAnchorFallback(file []string, pre []string, mode MatchMode) []int {
	anchorIdx := len(pre) - 1
	anchor := pre[anchorIdx]
	var positions []int
	for i, line := range file {
		if linesMatch(line, anchor, mode) {
			pos := i - anchorIdx
			if pos < 0 {
				pos = 0
			}
			positions = append(positions, pos)
		}
	}
	return positions
}
