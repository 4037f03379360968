package patchparser

// Grammar defines the Lark-style grammar for the "*** Begin Patch" format
// parsed by this package: an envelope of Add/Delete/Update File directives,
// each carrying zero or more "@@" hunks of context/deletion/insertion
// lines, feeding a backtracking hunk-application engine instead of a
// first-match applier.
const Grammar = `start: begin_patch action+ end_patch
begin_patch: "*** Begin Patch" LF
end_patch: "*** End Patch" LF?

action: add_action | delete_action | update_action
add_action: "*** Add File: " filename LF add_line+
delete_action: "*** Delete File: " filename LF delete_line*
update_action: "*** Update File: " filename LF move_to? hunk+

filename: /(.+)/
add_line: "+" /(.+)/ LF -> line
delete_line: "-" /(.+)/ LF -> line

move_to: "*** Move to: " filename LF
hunk: "@@" /( .+)?/ LF hunk_line+ eof_line?
hunk_line: ("+" | "-" | " ") /(.+)/ LF
eof_line: "*** End of File" LF
%import common.LF`

// Instructions is prose guidance for an agent authoring patches in this
// format, ported from the format this was distilled from (its
// get_llm_instructions helper returns the equivalent text for callers that
// want to hand it to an LLM).
const Instructions = `Patch format

A patch is a single envelope:

  *** Begin Patch
  ... one or more file actions ...
  *** End Patch

File actions:
  *** Add File: <path>        followed by one or more "+<line>" lines
  *** Delete File: <path>     followed by "-<line>" lines giving the file's
                               exact full content (none for an empty file)
  *** Update File: <path>     optionally followed by "*** Move to: <path>",
                               then one or more "@@" hunks

Within an Update, each "@@" introduces a new, noncontiguous hunk. Hunk
lines are classified by their first character: ' ' is unchanged context,
'+' is an inserted line, '-' is a deleted line. Include enough context
(usually one line before and after the change) to make the hunk's location
unambiguous in the file; widen it if the applier reports the match as
ambiguous rather than adding line numbers, which this format does not use.`
