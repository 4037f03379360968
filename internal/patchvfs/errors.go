package patchvfs

import (
	"errors"
	"fmt"
)

// Sentinel error classes for the container-level failures spec §7 names as
// distinct from the engine's own Conflict/Ambiguous taxonomy: missing file
// on update/delete, existing file on add, an unsafe or duplicate path, and
// malformed envelope text (surfaced through patchparser).
var (
	ErrFileNotFound  = errors.New("file not found")
	ErrFileExists    = errors.New("file already exists")
	ErrDuplicatePath = errors.New("duplicate path")
	ErrInvalidPath   = errors.New("invalid path")
)

func notFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

func existsError(path string) error {
	return fmt.Errorf("%w: %s", ErrFileExists, path)
}

func duplicatePathError(path string) error {
	return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
}

func invalidPathError(path string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidPath, path, reason)
}
