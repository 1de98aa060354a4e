// Package endbasic is the embedding facade: it wires a host.Services
// value and the standard builtin registry into a ready-to-run
// eval.Machine, the single constructor both the CLI and an embedder
// call instead of assembling internal/eval, internal/builtins, and
// pkg/host by hand.
package endbasic

import (
	"context"

	"github.com/go-endbasic/endbasic/internal/builtins"
	"github.com/go-endbasic/endbasic/internal/errors"
	"github.com/go-endbasic/endbasic/internal/eval"
	"github.com/go-endbasic/endbasic/pkg/host"
)

// Interpreter bundles a Machine with the registry it was built from, so
// callers that want to list or extend builtins do not need a separate
// reference.
type Interpreter struct {
	machine  *eval.Machine
	registry *builtins.Registry
}

// New creates an Interpreter with the standard builtin set registered,
// bound to the given host services.
func New(h *host.Services) *Interpreter {
	registry := builtins.NewRegistry()
	builtins.RegisterAll(registry)
	return &Interpreter{
		machine:  eval.New(h, registry),
		registry: registry,
	}
}

// Registry exposes the builtin registry, e.g. for a CLI's own `help`
// listing independent of the running program.
func (i *Interpreter) Registry() *builtins.Registry { return i.registry }

// Machine exposes the underlying evaluator for callers that need direct
// access (tests asserting on variable state, an embedder driving
// RunSource itself).
func (i *Interpreter) Machine() *eval.Machine { return i.machine }

// RunFile parses and executes source under ctx, also loading it into
// the interpreter's stored-program buffer so a subsequent EDIT/SAVE
// from within the program sees the same text. filename is used only for
// diagnostic formatting.
func (i *Interpreter) RunFile(ctx context.Context, source, filename string) error {
	i.machine.SetProgramText(source)
	if err := i.machine.RunSource(ctx, source); err != nil {
		if diag, ok := err.(*errors.Diagnostic); ok {
			return diag.WithSource(source, filename)
		}
		return err
	}
	return nil
}

// Exited reports whether the program called EXIT, and with what code.
func (i *Interpreter) Exited() (bool, int32) { return i.machine.Exited() }
