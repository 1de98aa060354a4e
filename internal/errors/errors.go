// Package errors formats EndBASIC diagnostics: every lex, parse, type,
// name, argument, runtime, I/O, and interruption error funnels through a
// single Diagnostic type so the REPL and the CLI print them identically.
package errors

import (
	"fmt"
	"strings"

	"github.com/go-endbasic/endbasic/internal/token"
)

// Kind is one of the eight error categories EndBASIC distinguishes.
type Kind string

const (
	KindLex         Kind = "lex error"
	KindParse       Kind = "parse error"
	KindType        Kind = "type error"
	KindName        Kind = "name error"
	KindArgument    Kind = "argument error"
	KindRuntime     Kind = "runtime error"
	KindIO          Kind = "I/O error"
	KindInterrupted Kind = "interrupted"
)

// Diagnostic is one error with a source position and, optionally, the
// source text needed to render a caret-pointing context line.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string
	File    string
}

func New(kind Kind, message string, pos token.Position) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Pos: pos}
}

// WithSource attaches source text (for the caret line) and a filename,
// returning the same Diagnostic for chaining. Format does not print the
// filename.
func (d *Diagnostic) WithSource(source, file string) *Diagnostic {
	d.Source = source
	d.File = file
	return d
}

// Error implements the error interface with the plain (uncoloured) form.
func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic as "<kind>: <message> (at line L,
// column C)", optionally preceded by a source-line-and-caret block when
// source text is available. color enables ANSI highlighting for
// terminal output.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if line := d.sourceLine(); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(string(d.Kind))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if d.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf(" (at line %d, column %d)", d.Pos.Line, d.Pos.Column))
	}
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine() string {
	if d.Source == "" || d.Pos.Line < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if d.Pos.Line > len(lines) {
		return ""
	}
	return lines[d.Pos.Line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatAll renders a batch of diagnostics (e.g. all lexer/parser
// errors from one run) one after another.
func FormatAll(diags []*Diagnostic, color bool) string {
	var sb strings.Builder
	for i, d := range diags {
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
