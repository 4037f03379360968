package patchengine

import "errors"

// ApplyWithEscalation implements the driver-level mode-escalation policy
// (spec §4.5, §9): call the engine in Strict mode; if it fails with
// conflict or ambiguity, retry once in Lenient mode. It never silently
// escalates to SuperLenient — callers that want that must call Apply
// directly with ModeSuperLenient.
//
// It returns the resulting lines, the mode that ultimately produced them
// (or the mode of the final failed attempt), and an error if both attempts
// failed.
func ApplyWithEscalation(original []string, hunks []Hunk) ([]string, MatchMode, error) {
	result, err := Apply(original, hunks, ModeStrict)
	if err == nil {
		return result, ModeStrict, nil
	}
	if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrAmbiguous) {
		return nil, ModeStrict, err
	}

	result, err = Apply(original, hunks, ModeLenient)
	if err == nil {
		return result, ModeLenient, nil
	}
	return nil, ModeLenient, err
}
