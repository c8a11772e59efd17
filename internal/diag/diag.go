// Package diag provides the diagnostic collection and formatting used by
// every phase of the front end: lexer, parser, semantic analyzer and build
// driver all report through a shared Bag rather than returning Go errors
// for recoverable conditions, so that a single run can surface every
// diagnostic it finds instead of stopping at the first one.
package diag

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"
)

// Position identifies a single point in a source file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is a single error or warning attached to a source position,
// and optionally to the AST node that produced it. OffenderNode is stored
// as an opaque identifier rather than a pointer into the tree; nothing in
// this package needs to know what an AST node looks like, and a flat list
// owned by the bag avoids tying diagnostic lifetime to node lifetime.
type Diagnostic struct {
	IsWarning    bool
	Description  string
	Pos          Position
	OffenderNode string
}

// String renders the diagnostic per the external format:
// <file>:<line>:<column>: error|warning: <description>
func (d Diagnostic) String() string {
	kind := "error"
	if d.IsWarning {
		kind = "warning"
	}
	return fmt.Sprintf("%s: %s: %s", d.Pos.String(), kind, d.Description)
}

// Bag collects diagnostics for one compilation phase or run. It never
// aborts on the first error: callers record and keep going so that a
// single invocation surfaces every diagnostic it can find in one pass.
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Error records an error-level diagnostic.
func (b *Bag) Error(pos Position, format string, args ...any) {
	b.add(false, pos, "", format, args...)
}

// ErrorOn records an error-level diagnostic attached to a specific AST node.
func (b *Bag) ErrorOn(pos Position, offender string, format string, args ...any) {
	b.add(false, pos, offender, format, args...)
}

// Warning records a warning-level diagnostic. Warnings never fail a phase.
func (b *Bag) Warning(pos Position, format string, args ...any) {
	b.add(true, pos, "", format, args...)
}

func (b *Bag) add(isWarning bool, pos Position, offender string, format string, args ...any) {
	b.items = append(b.items, Diagnostic{
		IsWarning:    isWarning,
		Description:  fmt.Sprintf(format, args...),
		Pos:          pos,
		OffenderNode: offender,
	})
}

// Merge appends every diagnostic from other into b, in order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// All returns every diagnostic recorded so far, in recording order.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// HasErrors reports whether any error-level (non-warning) diagnostic was
// recorded. A phase succeeds iff HasErrors is false after it runs.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if !d.IsWarning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level diagnostics.
func (b *Bag) ErrorCount() int {
	n := 0
	for _, d := range b.items {
		if !d.IsWarning {
			n++
		}
	}
	return n
}

// Report renders every diagnostic, one per line, in recording order.
func (b *Bag) Report() string {
	var sb strings.Builder
	for _, d := range b.items {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToJSON renders every diagnostic as a JSON array of
// {file, line, column, severity, message} objects, in recording order.
// It is built with field-at-a-time sjson.Set calls rather than
// json.Marshal over a mirrored struct slice, since Bag's own Diagnostic
// shape (IsWarning, OffenderNode) doesn't match the wire shape tools
// consuming --json output expect one-to-one.
func (b *Bag) ToJSON() (string, error) {
	doc := "[]"
	for i, d := range b.items {
		severity := "error"
		if d.IsWarning {
			severity = "warning"
		}
		prefix := fmt.Sprintf("%d.", i)
		var err error
		if doc, err = sjson.Set(doc, prefix+"file", d.Pos.File); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, prefix+"line", d.Pos.Line); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, prefix+"column", d.Pos.Column); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, prefix+"severity", severity); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, prefix+"message", d.Description); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// SourceCaret renders a two-line "source line + caret" fragment under a
// diagnostic, for CLI output that benefits from more than the one-line
// format.
func SourceCaret(source string, pos Position) string {
	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}
	line := lines[pos.Line-1]
	gutter := fmt.Sprintf("%4d | ", pos.Line)
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	var sb strings.Builder
	sb.WriteString(gutter)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(gutter)+col))
	sb.WriteString("^")
	return sb.String()
}
