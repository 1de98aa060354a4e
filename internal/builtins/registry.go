// Package builtins implements EndBASIC's standard builtin commands and
// functions, and the Registry that the evaluator dispatches through.
// Builtins are the only way the language reaches a host environment;
// each is represented as a capability object — a closure stored in the
// registry — rather than as a type hierarchy.
package builtins

import (
	"sort"
	"sync"

	"github.com/go-endbasic/endbasic/internal/symtab"
)

// Category groups builtins for HELP topic listing, grounded on the
// teacher's builtins.Registry category taxonomy.
type Category string

const (
	CategoryConsole     Category = "console"
	CategoryProgram     Category = "program"
	CategoryInterpreter Category = "interpreter"
	CategoryNumeric     Category = "numeric"
	CategoryString      Category = "string"
)

// Entry is one registered builtin: either a Command (statement context,
// raw argument expressions) or a Function (expression context,
// pre-evaluated arguments) — never both.
type Entry struct {
	Name        string
	Category    Category
	Description string

	// Exactly one of Command/Function is set.
	Command  Command
	Function Function

	// ReturnType is meaningful only when Function is set.
	ReturnType ReturnKind
}

// ReturnKind mirrors types.Kind without importing it here, keeping this
// file free of a dependency only Function signatures need; see
// types.Kind in internal/types for the real type.
type ReturnKind byte

const (
	ReturnBoolean ReturnKind = iota
	ReturnInteger
	ReturnDouble
	ReturnString
)

// IsFunction reports whether e is a Function entry.
func (e *Entry) IsFunction() bool { return e.Function != nil }

// Registry is a case-insensitive table of builtin entries.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds or replaces an entry by name (case-insensitive).
func (r *Registry) Register(e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[symtab.Fold(e.Name)] = e
}

// Lookup finds an entry by name (case-insensitive).
func (r *Registry) Lookup(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[symtab.Fold(name)]
	return e, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// ByCategory returns every entry in category, sorted by name.
func (r *Registry) ByCategory(category Category) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Entry
	for _, e := range r.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// All returns every registered entry, sorted by name.
func (r *Registry) All() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
