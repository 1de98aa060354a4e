// Package eval implements EndBASIC's tree-walking evaluator: the
// Machine that holds a symbol table and a set of host services, and
// that executes a parsed Program statement by statement.
package eval

import (
	"context"
	"fmt"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/builtins"
	"github.com/go-endbasic/endbasic/internal/errors"
	"github.com/go-endbasic/endbasic/internal/lexer"
	"github.com/go-endbasic/endbasic/internal/parser"
	"github.com/go-endbasic/endbasic/internal/symtab"
	"github.com/go-endbasic/endbasic/internal/token"
	"github.com/go-endbasic/endbasic/internal/types"
	"github.com/go-endbasic/endbasic/pkg/host"
)

// Machine is the running interpreter state: variables, RNG, the current
// stored program text, and the host it talks to. It implements
// builtins.Machine so every registered builtin can drive it back.
type Machine struct {
	registry *builtins.Registry
	vars     *symtab.Table
	host     *host.Services

	programText string
	exitCode    int32
	exited      bool

	// pendingPrintJoin is the separator a PRINT statement left owed
	// after suppressing its trailing newline (e.g. "PRINT i;"), so the
	// next PRINT call can prefix its own output with it instead of the
	// separator being written eagerly onto an empty trailing slot.
	pendingPrintJoin byte

	// activeFor tracks control variable names of FOR loops currently
	// executing, so a nested FOR cannot reuse an enclosing one's variable.
	activeFor map[string]bool

	ctx context.Context
}

// New creates a Machine with an empty symbol table, bound to host and
// dispatching through registry.
func New(h *host.Services, registry *builtins.Registry) *Machine {
	return &Machine{
		registry: registry,
		vars:     symtab.New(),
		host:     h,
		ctx:      context.Background(),
	}
}

func (m *Machine) Vars() *symtab.Table   { return m.vars }
func (m *Machine) Host() *host.Services { return m.host }

// ConsumePendingPrintJoin returns the separator a previous PRINT call
// left pending and clears it, so the caller can prefix its own output
// with it before deciding whether to emit its own newline.
func (m *Machine) ConsumePendingPrintJoin() byte {
	sep := m.pendingPrintJoin
	m.pendingPrintJoin = 0
	return sep
}

// SetPendingPrintJoin records sep as owed before the next PRINT call's
// output, or before a flushPendingPrintJoin call at the end of Run.
func (m *Machine) SetPendingPrintJoin(sep byte) {
	m.pendingPrintJoin = sep
}

// flushPendingPrintJoin writes the trailing newline a suppressed PRINT
// left owed when a Run call ends before another PRINT consumed it, so a
// program never leaves the console mid-line.
func (m *Machine) flushPendingPrintJoin() error {
	if m.pendingPrintJoin == 0 {
		return nil
	}
	m.pendingPrintJoin = 0
	return m.host.Console.Write("\n")
}

// Exited reports whether EXIT has been called, and the code it was
// called with.
func (m *Machine) Exited() (bool, int32) { return m.exited, m.exitCode }

func (m *Machine) Exit(code int32) {
	m.exited = true
	m.exitCode = code
}

// Clear drops all variable slots but preserves the symbol table's RNG
// identity; re-seeding is explicit via RANDOMIZE.
func (m *Machine) Clear() {
	m.vars.Clear()
}

func (m *Machine) ProgramText() string         { return m.programText }
func (m *Machine) SetProgramText(text string)  { m.programText = text }

// CheckSuspend polls the Machine's current context for cancellation,
// the hook long-running builtins (INPUT, DIR, LOAD, SAVE, EDIT) and the
// statement loop use to notice an interrupt between suspension points.
func (m *Machine) CheckSuspend() error {
	select {
	case <-m.ctx.Done():
		return errors.New(errors.KindInterrupted, "execution interrupted", token.Position{})
	default:
		return nil
	}
}

// Assign stores value into ref, creating the variable on first
// assignment (typed by value's kind) or type-checking against its
// existing slot. A sigil on ref must agree with value's kind.
func (m *Machine) Assign(ref *ast.VarRef, value types.Value) error {
	if ref.Sigil != ast.SigilNone && sigilKind(ref.Sigil) != value.Kind() {
		return errors.New(errors.KindType,
			fmt.Sprintf("cannot assign %s value to %s variable %s", value.Kind(), sigilKind(ref.Sigil), ref.Name),
			ref.Pos())
	}
	if _, err := m.vars.Set(ref.Name, value); err != nil {
		return errors.New(errors.KindType, err.Error(), ref.Pos())
	}
	return nil
}

// RunProgram parses the current stored program text and executes it in
// place, the way the RUN command does.
func (m *Machine) RunProgram() error {
	return m.RunSource(m.ctx, m.programText)
}

// RunSource parses and executes source text under ctx, returning every
// parse error (joined into one error) or else the first runtime error. It does not reset
// variables first; callers that want a fresh run should CLEAR.
func (m *Machine) RunSource(ctx context.Context, source string) error {
	lex := lexer.New(source)
	p := parser.New(lex)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		diags := make([]*errors.Diagnostic, len(errs))
		for i, e := range errs {
			diags[i] = errors.New(errors.KindParse, e.Message, e.Pos)
		}
		return fmt.Errorf("%s", errors.FormatAll(diags, false))
	}
	return m.Run(ctx, prog)
}

// Run executes prog under ctx, honoring cancellation at every
// suspension point: the top of each loop iteration and between
// top-level statements.
func (m *Machine) Run(ctx context.Context, prog *ast.Program) error {
	prev := m.ctx
	m.ctx = ctx
	defer func() { m.ctx = prev }()

	m.exited = false
	for _, stmt := range prog.Statements {
		if err := m.CheckSuspend(); err != nil {
			return err
		}
		if err := m.execStmt(stmt); err != nil {
			return err
		}
		if m.exited {
			break
		}
	}
	return m.flushPendingPrintJoin()
}
