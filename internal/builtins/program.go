package builtins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/types"
	"github.com/maruel/natural"
)

// RegisterProgram adds DEL, DIR, LOAD, NEW, RUN, SAVE, and EDIT to r.
func RegisterProgram(r *Registry) {
	r.Register(&Entry{Name: "DEL", Category: CategoryProgram, Command: cmdDel,
		Description: "Deletes a stored program."})
	r.Register(&Entry{Name: "DIR", Category: CategoryProgram, Command: cmdDir,
		Description: "Lists stored programs."})
	r.Register(&Entry{Name: "LOAD", Category: CategoryProgram, Command: cmdLoad,
		Description: "Loads a stored program, replacing the current one."})
	r.Register(&Entry{Name: "NEW", Category: CategoryProgram, Command: cmdNew,
		Description: "Clears the current program and all variables."})
	r.Register(&Entry{Name: "RUN", Category: CategoryProgram, Command: cmdRun,
		Description: "Runs the current program."})
	r.Register(&Entry{Name: "SAVE", Category: CategoryProgram, Command: cmdSave,
		Description: "Saves the current program."})
	r.Register(&Entry{Name: "EDIT", Category: CategoryProgram, Command: cmdEdit,
		Description: "Opens the full-screen editor on the current program."})
}

func evalString(m Machine, e ast.Expr) (string, error) {
	v, err := m.Eval(e)
	if err != nil {
		return "", err
	}
	s, ok := v.(types.String)
	if !ok {
		return "", argErrorf("expected a STRING argument, found %s", v.Kind())
	}
	return string(s), nil
}

func singleStringArg(name string, args []ast.Arg) (ast.Expr, error) {
	if len(args) != 1 || args[0].Expr == nil {
		return nil, argErrorf("%s requires exactly one filename argument", name)
	}
	return args[0].Expr, nil
}

func cmdDel(m Machine, args []ast.Arg) error {
	expr, err := singleStringArg("DEL", args)
	if err != nil {
		return err
	}
	name, err := evalString(m, expr)
	if err != nil {
		return err
	}
	return m.Host().Store.Delete(name)
}

func cmdLoad(m Machine, args []ast.Arg) error {
	expr, err := singleStringArg("LOAD", args)
	if err != nil {
		return err
	}
	name, err := evalString(m, expr)
	if err != nil {
		return err
	}
	if err := m.CheckSuspend(); err != nil {
		return err
	}
	text, err := m.Host().Store.Get(name)
	if err != nil {
		return err
	}
	m.Clear()
	m.SetProgramText(text)
	return nil
}

func cmdSave(m Machine, args []ast.Arg) error {
	expr, err := singleStringArg("SAVE", args)
	if err != nil {
		return err
	}
	name, err := evalString(m, expr)
	if err != nil {
		return err
	}
	if err := m.CheckSuspend(); err != nil {
		return err
	}
	return m.Host().Store.Put(name, m.ProgramText())
}

// cmdNew implements NEW: per the "NEW implies CLEAR" decision recorded
// in the grounding ledger, it discards both the stored program text and
// every variable.
func cmdNew(m Machine, args []ast.Arg) error {
	if len(args) != 0 {
		return argErrorf("NEW takes no arguments")
	}
	m.SetProgramText("")
	m.Clear()
	return nil
}

func cmdRun(m Machine, args []ast.Arg) error {
	if len(args) != 0 {
		return argErrorf("RUN takes no arguments")
	}
	return m.RunProgram()
}

func cmdEdit(m Machine, args []ast.Arg) error {
	if len(args) != 0 {
		return argErrorf("EDIT takes no arguments")
	}
	if err := m.CheckSuspend(); err != nil {
		return err
	}
	edited, err := m.Host().Editor.Edit(m.ProgramText())
	if err != nil {
		return err
	}
	m.SetProgramText(edited)
	return nil
}

// cmdDir lists stored programs, natural-sorted by name (so "prog2" comes
// before "prog10") and with a trailing total byte count, a feature
// supplementing the bare Enumerate() contract.
func cmdDir(m Machine, args []ast.Arg) error {
	if len(args) != 0 {
		return argErrorf("DIR takes no arguments")
	}
	if err := m.CheckSuspend(); err != nil {
		return err
	}
	entries, err := m.Host().Store.Enumerate()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return natural.Less(entries[i].Name, entries[j].Name)
	})

	var sb strings.Builder
	var total int64
	for _, e := range entries {
		fmt.Fprintf(&sb, "%-20s %8d  %s\n", e.Name, e.Size, e.ModTime.Format("2006-01-02 15:04"))
		total += e.Size
	}
	fmt.Fprintf(&sb, "%d file(s), %d byte(s)\n", len(entries), total)
	return m.Host().Console.Write(sb.String())
}
