package builtins

import (
	"fmt"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/symtab"
	"github.com/go-endbasic/endbasic/internal/types"
	"github.com/go-endbasic/endbasic/pkg/host"
)

// Machine is the narrow contract builtins need from the evaluator that
// hosts them. It lets internal/builtins stay independent of
// internal/eval (which depends on internal/builtins for the Registry),
// avoiding an import cycle while still letting a Command evaluate
// argument expressions on its own terms — e.g. INPUT needs the target
// VarRef itself, not its value.
type Machine interface {
	Vars() *symtab.Table
	Host() *host.Services

	// Eval evaluates an expression in the current variable scope.
	Eval(expr ast.Expr) (types.Value, error)

	// Assign stores value into ref, creating or type-checking the slot
	// the way a top-level assignment statement would.
	Assign(ref *ast.VarRef, value types.Value) error

	// Exit requests program termination with the given code, the
	// Running -> Exited(code) transition.
	Exit(code int32)

	// Clear drops all variable slots, the CLEAR command.
	Clear()

	// ProgramText/SetProgramText hold the stored, editable program
	// buffer.
	ProgramText() string
	SetProgramText(text string)

	// RunProgram parses and executes the current stored program text
	// in-place, the way the RUN command does.
	RunProgram() error

	// CheckSuspend gives long-running builtins (DIR, LOAD, SAVE, EDIT)
	// a cancellation-polling point.
	CheckSuspend() error

	// ConsumePendingPrintJoin returns and clears the separator a
	// previous PRINT call left pending by suppressing its trailing
	// newline (e.g. "PRINT i;"), so this call can prefix its own
	// output with it.
	ConsumePendingPrintJoin() byte

	// SetPendingPrintJoin records sep as owed before the next PRINT
	// call, because this call suppressed its own trailing newline.
	SetPendingPrintJoin(sep byte)
}

// Command is a builtin invoked as a statement. It receives the raw,
// unevaluated argument list and decides its own evaluation policy.
type Command func(m Machine, args []ast.Arg) error

// Function is a builtin invoked from expression context. Its arguments
// are evaluated before the call.
type Function func(m Machine, args []types.Value) (types.Value, error)

// ArgError reports a malformed argument list.
type ArgError struct {
	Message string
}

func (e *ArgError) Error() string { return e.Message }

func argErrorf(format string, args ...any) error {
	return &ArgError{Message: fmt.Sprintf(format, args...)}
}
