// Package checkerr implements the error taxonomy of spec.md §7: a
// structured error per failure, each carrying a position and an optional
// cause chain, plus an aggregate List that renders a numbered summary the
// way the teacher's internal/semantic.AnalysisError does. Formatting for
// human consumption (Format/FormatWithContext) mirrors the teacher's
// internal/errors.CompilerError — presentation, not policy; the core
// never writes to stdout/stderr itself.
package checkerr

import (
	"fmt"
	"strings"

	"github.com/oocheck/oocheck/internal/srcpos"
)

// Kind classifies a checker failure (spec.md §7).
type Kind string

const (
	Undefined        Kind = "undefined"
	TypeMismatch     Kind = "type_mismatch"
	ArityMismatch    Kind = "arity_mismatch"
	Ambiguous        Kind = "ambiguous"
	Visibility       Kind = "visibility"
	IllegalControl   Kind = "illegal_control"
	UncoveredRaises  Kind = "uncovered_raises"
)

// Error is one structured checker failure.
type Error struct {
	Kind    Kind
	Pos     srcpos.Position
	Message string
	RunID   string
	causes  []Error
}

// New builds an Error with no causes.
func New(kind Kind, pos srcpos.Position, message string) *Error {
	return &Error{Kind: kind, Pos: pos, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
}

// WithCause appends a cause and returns e, mirroring the original
// implementation's `TypeErr::with_cause` chain (SPEC_FULL "Constraint
// provenance chains"): a single failure can report "while unifying X at
// P1, while checking Y at P2…" instead of one flat message.
func (e *Error) WithCause(cause Error) *Error {
	e.causes = append(e.causes, cause)
	return e
}

// Causes returns the accumulated cause chain, outermost first.
func (e *Error) Causes() []Error {
	return e.causes
}

// Format renders e for a human, including its cause chain, matching the
// teacher's CompilerError.Format shape (header line, then the message).
// If color is true, ANSI codes highlight the message.
func (e *Error) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("error at %s: ", e.Pos))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	for _, cause := range e.causes {
		sb.WriteString("\n  while ")
		sb.WriteString(cause.Format(color))
	}
	return sb.String()
}

// FormatWithContext renders e the way Format does, plus up to
// contextLines of the surrounding source on either side of e.Pos.
func (e *Error) FormatWithContext(source string, contextLines int, color bool) string {
	base := e.Format(color)
	if source == "" {
		return base
	}
	lines := strings.Split(source, "\n")
	lineNum := e.Pos.StartLine
	if lineNum < 1 || lineNum > len(lines) {
		return base
	}
	start := lineNum - contextLines
	if start < 1 {
		start = 1
	}
	end := lineNum + contextLines
	if end > len(lines) {
		end = len(lines)
	}
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n")
	for i := start; i <= end; i++ {
		prefix := "    "
		if i == lineNum {
			prefix = " -> "
		}
		sb.WriteString(fmt.Sprintf("%s%4d | %s\n", prefix, i, lines[i-1]))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// List aggregates every Error produced by one checker.Check invocation,
// rendering a numbered summary the way the teacher's AnalysisError does.
type List []*Error

// Error implements the error interface for the aggregate.
func (l List) Error() string {
	if len(l) == 0 {
		return "type checking failed"
	}
	if len(l) == 1 {
		return fmt.Sprintf("type error: %s", l[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "type checking failed with %d errors:\n", len(l))
	for i, e := range l {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, e.Error())
	}
	return strings.TrimRight(sb.String(), "\n")
}

// StampRunID sets RunID on every error in the list, used by checker.Check
// to correlate a batch of errors back to one invocation (SPEC_FULL DOMAIN
// STACK: google/uuid run-ID stamping).
func (l List) StampRunID(runID string) {
	for _, e := range l {
		e.RunID = runID
	}
}
