package patchengine

import "sort"

// replay sorts placements by ascending original offset (ties broken by
// hunk input order), then replays them against original to produce the
// final line-sequence, per spec §4.4. It is deterministic and side-effect
// free: it never mutates original or hunks.
func replay(original []string, hunks []Hunk, placements []Placement, mode MatchMode) []string {
	ordered := append([]Placement(nil), placements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].StartOrigOffset != ordered[j].StartOrigOffset {
			return ordered[i].StartOrigOffset < ordered[j].StartOrigOffset
		}
		return ordered[i].HunkIndex < ordered[j].HunkIndex
	})

	result := append([]string(nil), original...)
	delta := 0
	for _, pl := range ordered {
		h := hunks[pl.HunkIndex]

		var p int
		if delta >= 0 {
			p = pl.StartOrigOffset + delta
		} else {
			neg := -delta
			if pl.StartOrigOffset < neg {
				p = 0
			} else {
				p = pl.StartOrigOffset - neg
			}
		}
		p = clamp(p, 0, len(result))

		adjPre := h.effectivePreLen(mode)
		start := clamp(p+adjPre, 0, len(result))
		end := clamp(start+len(h.DelLines()), start, len(result))

		next := make([]string, 0, len(result)-(end-start)+len(h.InsLines()))
		next = append(next, result[:start]...)
		next = append(next, h.InsLines()...)
		next = append(next, result[end:]...)
		result = next

		delta += len(h.InsLines()) - len(h.DelLines())
	}
	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
