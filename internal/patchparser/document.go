// Package patchparser lexes and parses the "*** Begin Patch" wire format
// into file-level actions and patchengine hunks.
package patchparser

import "github.com/codalotl/codalotl/internal/patchengine"

// ActionKind identifies the kind of file-level operation a Action
// describes.
type ActionKind int

const (
	_ ActionKind = iota
	ActionAdd
	ActionDelete
	ActionUpdate
)

func (k ActionKind) String() string {
	switch k {
	case ActionAdd:
		return "Add"
	case ActionDelete:
		return "Delete"
	case ActionUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// Action is a single file-level operation parsed from a patch envelope, as
// described informatively in spec §6.
type Action struct {
	Kind ActionKind
	Path string
	// MoveTo is set only for an Update action carrying a "*** Move to:"
	// directive.
	MoveTo string
	// AddLines holds the literal content for an Add action, one entry per
	// '+' line.
	AddLines []string
	// DeleteLines holds the literal content for a Delete action that
	// specifies the lines it expects to remove (may be empty, requesting
	// deletion of an empty file).
	DeleteLines []string
	// Hunks holds the patchengine.Hunk values for an Update action, one per
	// "@@"-introduced change region, in source order.
	Hunks []patchengine.Hunk
}

// Document is the result of parsing one patch envelope.
type Document struct {
	Actions []Action
}
