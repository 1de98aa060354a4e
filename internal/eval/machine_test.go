package eval

import (
	"testing"
	"time"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/builtins"
	"github.com/go-endbasic/endbasic/internal/lexer"
	"github.com/go-endbasic/endbasic/internal/parser"
	"github.com/go-endbasic/endbasic/pkg/host"
	"github.com/go-endbasic/endbasic/pkg/platform/memory"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(source))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse(%q): unexpected errors: %v", source, errs)
	}
	return prog
}

// newTestMachine builds a Machine with every standard builtin
// registered and an in-memory host, optionally scripted with console
// input lines.
func newTestMachine(lines ...string) (*memory.Console, *Machine) {
	registry := builtins.NewRegistry()
	builtins.RegisterAll(registry)
	console := memory.NewConsole(lines...)
	clock := memory.NewClock(time.Unix(0, 0))
	services := &host.Services{
		Console: console,
		Store:   memory.NewStore(clock),
		Clock:   clock,
		Entropy: memory.NewEntropy(1),
		Editor:  memory.Editor{},
	}
	return console, New(services, registry)
}
