package patchparser

import "errors"

var errInvalidFormat = errors.New("invalid patch format")

// IsInvalidFormat reports whether err (as returned from Parse) indicates
// that the patch text itself was malformed: missing envelope markers, no
// directive, or a malformed directive (spec §7's "Format errors" class).
func IsInvalidFormat(err error) bool {
	return errors.Is(err, errInvalidFormat)
}

func invalidFormatError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(errInvalidFormat, err)
}
