package patchengine

import (
	"errors"
	"fmt"
)

// ErrConflict is the sentinel behind every error Apply returns when no
// placement of the hunk set satisfies deletion-footprint equality and
// non-overlap (spec §7). Test with errors.Is.
var ErrConflict = errors.New("patch conflict")

// ErrAmbiguous is the sentinel behind every error Apply returns when two or
// more placements produce materially distinct outputs, or the search
// budget was exhausted (spec §7). Test with errors.Is.
var ErrAmbiguous = errors.New("ambiguous patch")

func conflictError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}

func ambiguousError(reason string) error {
	return fmt.Errorf("%w: %s", ErrAmbiguous, reason)
}
