// Package symtab implements EndBASIC's symbol table: a flat, case-
// insensitive mapping from variable name to a typed slot, plus the RNG
// state the table carries alongside it. There is no lexical nesting —
// EndBASIC has no user-defined procedures, so there is never an outer
// scope to chain to.
package symtab

import (
	"fmt"

	"github.com/go-endbasic/endbasic/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var foldCase = cases.Upper(language.Und)

// Fold upper-cases name the way the table compares all identifiers:
// names are case-insensitive, compared upper-cased. Unicode-aware
// casing (via golang.org/x/text/cases) is used instead of
// strings.ToUpper so identifiers built from non-ASCII letters fold
// correctly, not just the ASCII subset.
func Fold(name string) string { return foldCase.String(name) }

// Slot is one variable's storage: its type, fixed at first definition,
// and its current value.
type Slot struct {
	Kind  types.Kind
	Value types.Value
}

// Table is the variable symbol table plus RNG state for one epoch
// (between CLEAR/NEW boundaries, or process start).
type Table struct {
	vars map[string]*Slot
	rng  *rngState
}

// New creates an empty table with freshly seeded RNG state.
func New() *Table {
	return &Table{vars: make(map[string]*Slot), rng: newRNGState()}
}

// Get looks up a variable by name (case-insensitive), returning its slot
// and whether it exists.
func (t *Table) Get(name string) (*Slot, bool) {
	s, ok := t.vars[Fold(name)]
	return s, ok
}

// Define creates a new slot for name with the given kind and zero value,
// or returns an error if name is already defined (callers that want
// "define or reuse" semantics should check Get first).
func (t *Table) Define(name string, kind types.Kind) (*Slot, error) {
	key := Fold(name)
	if _, exists := t.vars[key]; exists {
		return nil, fmt.Errorf("variable %s is already defined", key)
	}
	slot := &Slot{Kind: kind, Value: types.Zero(kind)}
	t.vars[key] = slot
	return slot, nil
}

// Set stores value into name's slot, creating the slot (typed by
// value's kind) if it does not yet exist, or returning a type error if
// it exists with a different kind: once created, a slot's type is fixed
// for its lifetime.
func (t *Table) Set(name string, value types.Value) (*Slot, error) {
	key := Fold(name)
	if slot, ok := t.vars[key]; ok {
		if slot.Kind != value.Kind() {
			return nil, fmt.Errorf("cannot assign %s value to %s variable %s", value.Kind(), slot.Kind, key)
		}
		slot.Value = value
		return slot, nil
	}
	slot := &Slot{Kind: value.Kind(), Value: value}
	t.vars[key] = slot
	return slot, nil
}

// Has reports whether name is defined.
func (t *Table) Has(name string) bool {
	_, ok := t.vars[Fold(name)]
	return ok
}

// Range calls fn for every defined variable, in unspecified order.
func (t *Table) Range(fn func(name string, slot *Slot)) {
	for k, v := range t.vars {
		fn(k, v)
	}
}

// Clear drops all variable slots. RNG identity (its internal state) is
// preserved — re-seeding is explicit via RANDOMIZE.
func (t *Table) Clear() {
	t.vars = make(map[string]*Slot)
}

// RNG exposes the table's random-number generator state.
func (t *Table) RNG() RNG { return t.rng }
