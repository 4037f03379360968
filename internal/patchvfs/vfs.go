// Package patchvfs routes parsed patch actions (add/delete/update/move)
// against an in-memory snapshot of file contents, the way a real
// filesystem-rooted container would, but over a map so it can be used both
// by a CLI (backed by a directory) and an HTTP service (backed by a
// request body) without duplicating this logic in each.
package patchvfs

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/codalotl/codalotl/internal/patchengine"
	"github.com/codalotl/codalotl/internal/patchparser"
)

// FileChangeKind identifies what happened to a path as part of one Apply
// call.
type FileChangeKind int

const (
	_ FileChangeKind = iota
	FileChangeAdded
	FileChangeModified
	FileChangeDeleted
)

func (k FileChangeKind) String() string {
	switch k {
	case FileChangeAdded:
		return "added"
	case FileChangeModified:
		return "modified"
	case FileChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange records one path-level effect of an Apply call.
type FileChange struct {
	Path string
	Kind FileChangeKind
}

// Snapshot is the full content of a set of files, keyed by a
// slash-separated relative path. Apply never mutates the Snapshot passed
// to it; it returns a new one.
type Snapshot map[string]string

func (s Snapshot) clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Apply parses patch (the "*** Begin Patch" envelope) and applies every
// action it contains to snapshot in order, returning the resulting
// snapshot and the ordered list of file changes. It fails the whole
// operation on the first action that errors, matching spec §7's
// "parsing errors short-circuit the entire operation" and leaving
// per-action failures un-partially-applied.
func Apply(snapshot Snapshot, patch string) (Snapshot, []FileChange, error) {
	doc, err := patchparser.Parse(patch)
	if err != nil {
		return nil, nil, err
	}

	out := snapshot.clone()
	var changes []FileChange

	for idx, action := range doc.Actions {
		relPath, err := resolvePath(action.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("action %d: %w", idx+1, err)
		}

		var moveTo string
		if action.MoveTo != "" {
			moveTo, err = resolvePath(action.MoveTo)
			if err != nil {
				return nil, nil, fmt.Errorf("action %d move target: %w", idx+1, err)
			}
		}

		switch action.Kind {
		case patchparser.ActionAdd:
			if err := applyAdd(out, relPath, action.AddLines); err != nil {
				return nil, nil, fmt.Errorf("add %s: %w", relPath, err)
			}
			changes = append(changes, FileChange{Path: relPath, Kind: FileChangeAdded})

		case patchparser.ActionDelete:
			if err := applyDelete(out, relPath, action.DeleteLines); err != nil {
				return nil, nil, fmt.Errorf("delete %s: %w", relPath, err)
			}
			changes = append(changes, FileChange{Path: relPath, Kind: FileChangeDeleted})

		case patchparser.ActionUpdate:
			changed, err := applyUpdate(out, relPath, moveTo, action.Hunks)
			if err != nil {
				return nil, nil, fmt.Errorf("update %s: %w", relPath, err)
			}
			changes = append(changes, changed...)

		default:
			return nil, nil, fmt.Errorf("action %d: unknown action kind for %s", idx+1, relPath)
		}
	}

	return out, changes, nil
}

func applyAdd(s Snapshot, relPath string, lines []string) error {
	if _, exists := s[relPath]; exists {
		return existsError(relPath)
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	s[relPath] = content
	return nil
}

func applyDelete(s Snapshot, relPath string, wantDeleted []string) error {
	content, exists := s[relPath]
	if !exists {
		return notFoundError(relPath)
	}
	current := splitLines(content)
	if !linesEqual(current, wantDeleted) {
		return fmt.Errorf("%w: content to delete does not match %s", patchengine.ErrConflict, relPath)
	}
	delete(s, relPath)
	return nil
}

func applyUpdate(s Snapshot, relPath, moveTo string, hunks []patchengine.Hunk) ([]FileChange, error) {
	content, exists := s[relPath]
	if !exists {
		return nil, notFoundError(relPath)
	}

	tf := parseTextFile(content)
	updated, _, err := patchengine.ApplyWithEscalation(tf.lines, hunks)
	if err != nil {
		return nil, err
	}

	newContent := joinLines(updated, tf.newline, len(updated) > 0)

	dst := relPath
	if moveTo != "" {
		dst = moveTo
	}
	if dst != relPath {
		if _, exists := s[dst]; exists {
			return nil, duplicatePathError(dst)
		}
		delete(s, relPath)
		s[dst] = newContent
		return []FileChange{
			{Path: relPath, Kind: FileChangeDeleted},
			{Path: dst, Kind: FileChangeAdded},
		}, nil
	}

	s[relPath] = newContent
	return []FileChange{{Path: relPath, Kind: FileChangeModified}}, nil
}

// resolvePath cleans a patch-supplied path and rejects anything that would
// escape the snapshot's root or resolve to the root itself: a containment
// check adapted to a rootless in-memory map (no real directory to join
// against).
func resolvePath(raw string) (string, error) {
	if raw == "" {
		return "", invalidPathError(raw, "empty path")
	}
	p := path.Clean(strings.ReplaceAll(raw, "\\", "/"))
	if path.IsAbs(p) {
		return "", invalidPathError(raw, "must be relative")
	}
	if p == "." {
		return "", invalidPathError(raw, "resolves to the snapshot root")
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", invalidPathError(raw, "escapes the snapshot root")
	}
	return p, nil
}

type textFile struct {
	lines   []string
	newline string
}

// parseTextFile splits content into bare lines (no terminators), detecting
// a CRLF convention so a round trip through Update preserves the file's
// existing line ending.
func parseTextFile(content string) textFile {
	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	return textFile{lines: splitLines(content), newline: newline}
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	trimmed := strings.TrimSuffix(content, "\n")
	return strings.Split(trimmed, "\n")
}

// joinLines is the inverse of splitLines/parseTextFile: it rejoins bare
// lines with the given terminator, appending a final terminator only when
// final is true.
func joinLines(lines []string, newline string, final bool) string {
	if len(lines) == 0 {
		if final {
			return newline
		}
		return ""
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString(newline)
		}
		b.WriteString(line)
	}
	if final {
		b.WriteString(newline)
	}
	return b.String()
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsConflict reports whether err originated from a Delete content
// mismatch or from the engine's own Conflict outcome during an Update.
func IsConflict(err error) bool {
	return errors.Is(err, patchengine.ErrConflict)
}

// IsAmbiguous reports whether err originated from the engine's Ambiguous
// outcome during an Update.
func IsAmbiguous(err error) bool {
	return errors.Is(err, patchengine.ErrAmbiguous)
}
