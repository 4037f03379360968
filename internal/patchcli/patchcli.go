// Package patchcli implements the "*** Begin Patch" command-line tool:
// read a patch from a file, apply it to a directory rooted at an absolute
// path, and print an aligned summary of what changed.
package patchcli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/codalotl/codalotl/internal/patchdiff"
	"github.com/codalotl/codalotl/internal/patchengine"
	"github.com/codalotl/codalotl/internal/patchlog"
	"github.com/codalotl/codalotl/internal/patchparser"
	"github.com/codalotl/codalotl/internal/patchvfs"
	"github.com/codalotl/codalotl/internal/uniwidth"
)

// Config holds the resolved command-line arguments for Run.
type Config struct {
	// Dir is the absolute directory the patch is applied against.
	Dir string
	// PatchPath is the path to the file containing the patch text, or ""
	// to read the patch from Stdin.
	PatchPath string
}

// Run reads Config.PatchPath (or stdin), loads every file the patch
// references from Config.Dir, applies the patch, writes the results back
// to disk, and prints an aligned change summary to out.
//
// Run returns a non-nil error for any read/apply/write failure; patchvfs's
// and patchparser's sentinel predicates (patchvfs.IsConflict,
// patchvfs.IsAmbiguous, patchparser.IsInvalidFormat) can be used by callers
// to distinguish the failure class.
func Run(cfg Config, stdin io.Reader, out io.Writer) error {
	if !filepath.IsAbs(cfg.Dir) {
		return fmt.Errorf("dir must be an absolute path, got %q", cfg.Dir)
	}

	patchBytes, err := readPatch(cfg, stdin)
	if err != nil {
		return fmt.Errorf("reading patch: %w", err)
	}
	patchText := string(patchBytes)

	doc, err := patchparser.Parse(patchText)
	if err != nil {
		return annotateConflicts(cfg.Dir, patchText, err)
	}

	snapshot, err := loadSnapshot(cfg.Dir, doc)
	if err != nil {
		return fmt.Errorf("loading files: %w", err)
	}

	updated, changes, err := patchvfs.Apply(snapshot, patchText)
	if err != nil {
		return annotateConflicts(cfg.Dir, patchText, err)
	}

	if err := writeSnapshot(cfg.Dir, snapshot, updated, changes); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	patchlog.Log("applied %d change(s) in %s", len(changes), cfg.Dir)
	printSummary(out, changes)
	return nil
}

func readPatch(cfg Config, stdin io.Reader) ([]byte, error) {
	if cfg.PatchPath == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(cfg.PatchPath)
}

// loadSnapshot reads every path the patch's Update/Delete actions name
// (relative to dir) into an in-memory patchvfs.Snapshot, skipping paths
// that do not exist on disk. An Add target is loaded only when a file
// already exists at that path, so patchvfs.applyAdd's already-exists check
// fires for the collision.
func loadSnapshot(dir string, doc *patchparser.Document) (patchvfs.Snapshot, error) {
	snapshot := patchvfs.Snapshot{}
	for _, action := range doc.Actions {
		if action.Kind == patchparser.ActionAdd {
			continue
		}
		full := filepath.Join(dir, action.Path)
		b, err := os.ReadFile(full)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		snapshot[action.Path] = string(b)
	}
	// Load any Add target that already exists on disk, so the "already
	// exists" check in patchvfs has something to compare against.
	for _, action := range doc.Actions {
		if action.Kind != patchparser.ActionAdd {
			continue
		}
		full := filepath.Join(dir, action.Path)
		if b, err := os.ReadFile(full); err == nil {
			snapshot[action.Path] = string(b)
		}
	}
	return snapshot, nil
}

func writeSnapshot(dir string, before, after patchvfs.Snapshot, changes []patchvfs.FileChange) error {
	for _, ch := range changes {
		full := filepath.Join(dir, ch.Path)
		switch ch.Kind {
		case patchvfs.FileChangeDeleted:
			if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
				return err
			}
		case patchvfs.FileChangeAdded, patchvfs.FileChangeModified:
			content, ok := after[ch.Path]
			if !ok {
				return fmt.Errorf("internal error: %s reported as changed but missing from result snapshot", ch.Path)
			}
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// annotateConflicts enriches a bare patchengine.ErrConflict with a
// best-effort nearest-match diagnostic. It is purely cosmetic: the
// returned error still satisfies patchvfs.IsConflict/IsAmbiguous via
// errors.Is, since it wraps the original error.
func annotateConflicts(dir, patchText string, err error) error {
	if !patchvfs.IsConflict(err) {
		return err
	}
	doc, parseErr := patchparser.Parse(patchText)
	if parseErr != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(err.Error())
	for _, action := range doc.Actions {
		if action.Kind != patchparser.ActionUpdate {
			continue
		}
		full := filepath.Join(dir, action.Path)
		b, readErr := os.ReadFile(full)
		if readErr != nil {
			continue
		}
		file := strings.Split(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
		for _, h := range action.Hunks {
			if len(h.DelLines()) == 0 {
				continue
			}
			if _, applyErr := patchengine.Apply(file, []patchengine.Hunk{h}, patchengine.ModeLenient); applyErr != nil {
				fmt.Fprintf(&sb, "\n  %s: %s", action.Path, patchdiff.Nearest(file, h))
			}
		}
	}
	return &annotatedError{msg: sb.String(), cause: err}
}

// annotatedError carries annotateConflicts' enriched diagnostic text as its
// Error() while still unwrapping to the original engine/container error, so
// patchvfs.IsConflict/IsAmbiguous keep working via errors.Is on the result.
type annotatedError struct {
	msg   string
	cause error
}

func (e *annotatedError) Error() string { return e.msg }
func (e *annotatedError) Unwrap() error { return e.cause }

// printSummary prints one aligned line per file change, padding the Kind
// column by on-screen width (not byte count) so mixed-width paths still
// line up.
func printSummary(out io.Writer, changes []patchvfs.FileChange) {
	if len(changes) == 0 {
		fmt.Fprintln(out, "no changes")
		return
	}

	labelWidth := 0
	for _, ch := range changes {
		if w := uniwidth.TextWidth(ch.Kind.String(), nil); w > labelWidth {
			labelWidth = w
		}
	}

	for _, ch := range changes {
		label := ch.Kind.String()
		pad := labelWidth - uniwidth.TextWidth(label, nil)
		fmt.Fprintf(out, "%s%s  %s\n", label, strings.Repeat(" ", pad), ch.Path)
	}
}
