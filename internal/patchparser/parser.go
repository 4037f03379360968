package patchparser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codalotl/codalotl/internal/patchengine"
)

// Parse lexes and parses patch text in the Grammar format into a Document.
// It never touches a filesystem and never invokes patchengine.Apply; it
// only builds the []patchengine.Hunk values an Update action carries.
func Parse(patch string) (*Document, error) {
	doc, err := parse(patch)
	if err != nil {
		return nil, invalidFormatError(err)
	}
	return doc, nil
}

type lexer struct {
	lines []string
	idx   int
}

func newLexer(input string) *lexer {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	return &lexer{lines: strings.Split(normalized, "\n")}
}

func (l *lexer) eof() bool { return l.idx >= len(l.lines) }

func (l *lexer) peek() (string, bool) {
	if l.eof() {
		return "", false
	}
	return l.lines[l.idx], true
}

func (l *lexer) next() (string, bool) {
	line, ok := l.peek()
	if ok {
		l.idx++
	}
	return line, ok
}

func (l *lexer) lineNumber() int { return l.idx + 1 }

func parse(input string) (*Document, error) {
	l := newLexer(input)
	first, ok := l.next()
	if !ok || strings.TrimSpace(first) != "*** Begin Patch" {
		return nil, errors.New(`patch must start with "*** Begin Patch"`)
	}

	var doc Document
	for {
		line, ok := l.peek()
		if !ok {
			return nil, errors.New(`unexpected end of input; expected a file action or "*** End Patch"`)
		}
		if strings.TrimSpace(line) == "*** End Patch" {
			l.next()
			break
		}
		action, err := parseAction(l)
		if err != nil {
			return nil, err
		}
		doc.Actions = append(doc.Actions, action)
	}

	for !l.eof() {
		if strings.TrimSpace(l.lines[l.idx]) != "" {
			return nil, fmt.Errorf("unexpected trailing content at line %d", l.lineNumber())
		}
		l.idx++
	}
	if len(doc.Actions) == 0 {
		return nil, errors.New("no file action found in patch")
	}
	return &doc, nil
}

func parseAction(l *lexer) (Action, error) {
	start := l.lineNumber()
	rawHeader, ok := l.next()
	if !ok {
		return Action{}, errors.New("unexpected end of input while reading an action header")
	}
	header := strings.TrimSpace(rawHeader)

	switch {
	case strings.HasPrefix(header, "*** Add File: "):
		path := strings.TrimPrefix(header, "*** Add File: ")
		if path == "" {
			return Action{}, fmt.Errorf("empty path for Add at line %d", start)
		}
		lines, err := parsePrefixedLines(l, '+', path)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionAdd, Path: path, AddLines: lines}, nil

	case strings.HasPrefix(header, "*** Delete File: "):
		path := strings.TrimPrefix(header, "*** Delete File: ")
		if path == "" {
			return Action{}, fmt.Errorf("empty path for Delete at line %d", start)
		}
		lines, err := parsePrefixedLines(l, '-', path)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionDelete, Path: path, DeleteLines: lines}, nil

	case strings.HasPrefix(header, "*** Update File: "):
		path := strings.TrimPrefix(header, "*** Update File: ")
		if path == "" {
			return Action{}, fmt.Errorf("empty path for Update at line %d", start)
		}
		a := Action{Kind: ActionUpdate, Path: path}
		if next, ok := l.peek(); ok && strings.HasPrefix(strings.TrimSpace(next), "*** Move to: ") {
			raw, _ := l.next()
			moveTo := strings.TrimPrefix(strings.TrimSpace(raw), "*** Move to: ")
			if moveTo == "" {
				return Action{}, fmt.Errorf("empty destination in Move to at line %d", l.lineNumber())
			}
			a.MoveTo = moveTo
		}
		hunks, err := parseHunks(l, path)
		if err != nil {
			return Action{}, err
		}
		a.Hunks = hunks
		return a, nil
	}

	return Action{}, fmt.Errorf("expected an action header at line %d; got %q", start, rawHeader)
}

// parsePrefixedLines reads lines beginning with want (either '+' for Add or
// '-' for Delete) up to the next action boundary, stripping the prefix.
func parsePrefixedLines(l *lexer, want byte, path string) ([]string, error) {
	var lines []string
	for {
		next, ok := l.peek()
		if !ok {
			return nil, fmt.Errorf("unterminated action for %s", path)
		}
		if isActionBoundary(next) {
			break
		}
		if len(next) == 0 || next[0] != want {
			return nil, fmt.Errorf("%s: expected %q-prefixed line at %d, got: %q", path, string(want), l.lineNumber(), next)
		}
		lines = append(lines, next[1:])
		l.next()
	}
	return lines, nil
}

func parseHunks(l *lexer, path string) ([]patchengine.Hunk, error) {
	var hunks []patchengine.Hunk
	var cur []patchengine.RoledLine
	started := false
	ordinal := 0

	flush := func() error {
		if !started {
			return nil
		}
		if len(cur) == 0 {
			return fmt.Errorf("update for %s: a hunk with no lines", path)
		}
		hunks = append(hunks, patchengine.NewHunk(cur, ordinal))
		ordinal++
		cur = nil
		started = false
		return nil
	}

	for {
		next, ok := l.peek()
		if !ok {
			return nil, fmt.Errorf("unterminated Update for %s", path)
		}
		if isActionBoundary(next) {
			break
		}
		if strings.TrimSpace(next) == "*** End of File" {
			l.next()
			continue
		}
		if strings.HasPrefix(next, "@@") {
			l.next()
			if err := flush(); err != nil {
				return nil, err
			}
			started = true
			continue
		}
		if len(next) > 0 && (next[0] == '+' || next[0] == '-' || next[0] == ' ') {
			if !started {
				started = true
			}
			role := patchengine.RoleContext
			switch next[0] {
			case '+':
				role = patchengine.RoleInsertion
			case '-':
				role = patchengine.RoleDeletion
			}
			cur = append(cur, patchengine.RoledLine{Role: role, Text: next[1:]})
			l.next()
			continue
		}
		return nil, fmt.Errorf("malformed update for %s at line %d: %q", path, l.lineNumber(), next)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(hunks) == 0 {
		return nil, fmt.Errorf("update for %s: no hunks found", path)
	}
	return hunks, nil
}

func isActionBoundary(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "*** End Patch" ||
		strings.HasPrefix(trimmed, "*** Add File: ") ||
		strings.HasPrefix(trimmed, "*** Delete File: ") ||
		strings.HasPrefix(trimmed, "*** Update File: ")
}
