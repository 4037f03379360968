// Package patchdiff synthesizes patchengine.Hunk values from a pair of
// whole-file line sequences, and produces human-readable diagnostics for
// why a hunk's deletion block failed to match a file. It drives
// github.com/sergi/go-diff/diffmatchpatch's line-mode diff pipeline
// (DiffLinesToRunes -> DiffMainRunes -> DiffCleanupMerge), decoding the
// result into patchengine hunks instead of a rendering-oriented diff tree.
package patchdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/codalotl/codalotl/internal/patchengine"
)

// Synthesize diffs old against new line-by-line and returns one
// patchengine.Hunk per contiguous run of changes, each carrying up to
// context lines of surrounding RoleContext lines on each side. Context is
// taken only from the unchanged run bordering the change, so it never
// reaches into a neighbouring change; two changes separated by a short
// unchanged run both use that run's lines as context.
//
// Within this repository only this package's own tests call Synthesize;
// they round-trip its hunks through patchengine.Apply.
func Synthesize(old, new []string, context int) []patchengine.Hunk {
	if context < 0 {
		context = 0
	}

	groups := diffGroups(old, new)
	blocks := mergeChangeBlocks(groups)
	if len(blocks) == 0 {
		return nil
	}

	var hunks []patchengine.Hunk
	for _, blk := range blocks {
		var lines []patchengine.RoledLine

		if blk.preEqual != nil {
			pre := blk.preEqual
			if len(pre) > context {
				pre = pre[len(pre)-context:]
			}
			for _, l := range pre {
				lines = append(lines, patchengine.RoledLine{Role: patchengine.RoleContext, Text: l})
			}
		}
		for _, l := range blk.del {
			lines = append(lines, patchengine.RoledLine{Role: patchengine.RoleDeletion, Text: l})
		}
		for _, l := range blk.ins {
			lines = append(lines, patchengine.RoledLine{Role: patchengine.RoleInsertion, Text: l})
		}
		if blk.postEqual != nil {
			post := blk.postEqual
			if len(post) > context {
				post = post[:context]
			}
			for _, l := range post {
				lines = append(lines, patchengine.RoledLine{Role: patchengine.RoleContext, Text: l})
			}
		}

		hunks = append(hunks, patchengine.NewHunk(lines, blk.origIndex))
	}
	return hunks
}

// changeBlock is one or more adjacent Delete/Insert diff groups (with no
// intervening Equal group) merged into the shape of a single hunk, plus
// the Equal runs immediately bordering it.
type changeBlock struct {
	del, ins            []string
	preEqual, postEqual []string
	origIndex           int
}

// mergeChangeBlocks folds consecutive non-equal groups (go-diff commonly
// emits an adjacent Delete then Insert pair for a line replacement) into
// one block, so Synthesize emits a single replace hunk instead of two
// independently-placed delete/insert hunks for what is one edit.
func mergeChangeBlocks(groups []diffGroup) []changeBlock {
	var blocks []changeBlock
	i := 0
	for i < len(groups) {
		if groups[i].op == diffmatchpatch.DiffEqual {
			i++
			continue
		}
		blk := changeBlock{origIndex: groups[i].origIndex}
		if i > 0 && groups[i-1].op == diffmatchpatch.DiffEqual {
			blk.preEqual = groups[i-1].lines
		}
		for i < len(groups) && groups[i].op != diffmatchpatch.DiffEqual {
			switch groups[i].op {
			case diffmatchpatch.DiffDelete:
				blk.del = append(blk.del, groups[i].lines...)
			case diffmatchpatch.DiffInsert:
				blk.ins = append(blk.ins, groups[i].lines...)
			}
			i++
		}
		if i < len(groups) && groups[i].op == diffmatchpatch.DiffEqual {
			blk.postEqual = groups[i].lines
		}
		blocks = append(blocks, blk)
	}
	return blocks
}

type diffGroup struct {
	op        diffmatchpatch.Operation
	lines     []string
	origIndex int
}

// diffGroups runs go-diff's line-mode diff and decodes it back into line
// groups. mergeChangeBlocks later folds adjacent delete+insert groups from
// the same replacement into a single hunk (no intervening Equal group
// between them).
func diffGroups(old, new []string) []diffGroup {
	oldText := joinWithNewlines(old)
	newText := joinWithNewlines(new)

	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	decode := func(s string) []string {
		out := make([]string, 0, len(s))
		for _, r := range s {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				out = append(out, strings.TrimSuffix(lineArray[idx], "\n"))
			}
		}
		return out
	}

	var groups []diffGroup
	origIdx := 0
	for _, d := range diffs {
		lines := decode(d.Text)
		if len(lines) == 0 {
			continue
		}
		groups = append(groups, diffGroup{op: d.Type, lines: lines, origIndex: origIdx})
		if d.Type != diffmatchpatch.DiffInsert {
			origIdx += len(lines)
		}
	}
	return groups
}

func joinWithNewlines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
