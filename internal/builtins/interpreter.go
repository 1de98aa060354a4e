package builtins

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/symtab"
	"github.com/tidwall/gjson"
)

//go:embed help_topics.json
var helpTopicsJSON string

// RegisterInterpreter adds CLEAR, EXIT, and HELP to r. HELP closes over
// r so it can list every registered builtin; the other two commands
// need nothing beyond Machine.
func RegisterInterpreter(r *Registry) {
	r.Register(&Entry{Name: "CLEAR", Category: CategoryInterpreter, Command: cmdClear,
		Description: "Discards all variables."})
	r.Register(&Entry{Name: "EXIT", Category: CategoryInterpreter, Command: cmdExit,
		Description: "Stops the running program with an optional exit code."})
	r.Register(&Entry{Name: "HELP", Category: CategoryInterpreter, Command: makeHelp(r),
		Description: "Lists builtins or describes one topic."})
}

func cmdClear(m Machine, args []ast.Arg) error {
	if len(args) != 0 {
		return argErrorf("CLEAR takes no arguments")
	}
	m.Clear()
	return nil
}

func cmdExit(m Machine, args []ast.Arg) error {
	if len(args) > 1 {
		return argErrorf("EXIT takes at most one argument")
	}
	code := int32(0)
	if len(args) == 1 && args[0].Expr != nil {
		n, err := evalInt(m, args[0].Expr)
		if err != nil {
			return err
		}
		code = int32(n)
	}
	m.Exit(code)
	return nil
}

func makeHelp(r *Registry) Command {
	return func(m Machine, args []ast.Arg) error {
		if len(args) > 1 {
			return argErrorf("HELP takes at most one argument")
		}
		if len(args) == 0 || args[0].Expr == nil {
			return printHelpIndex(m, r)
		}
		topic, err := evalString(m, args[0].Expr)
		if err != nil {
			return err
		}
		return printHelpTopic(m, r, topic)
	}
}

func printHelpIndex(m Machine, r *Registry) error {
	var sb strings.Builder
	for _, cat := range []Category{CategoryConsole, CategoryProgram, CategoryInterpreter, CategoryNumeric, CategoryString} {
		entries := r.ByCategory(cat)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", strings.ToUpper(string(cat)))
		for _, e := range entries {
			fmt.Fprintf(&sb, "  %-10s %s\n", e.Name, e.Description)
		}
	}
	return m.Host().Console.Write(sb.String())
}

func printHelpTopic(m Machine, r *Registry, topic string) error {
	key := symtab.Fold(topic)
	if text := gjson.Get(helpTopicsJSON, key); text.Exists() {
		return m.Host().Console.WriteLine(text.String())
	}
	if e, ok := r.Lookup(topic); ok {
		return m.Host().Console.WriteLine(e.Name + ": " + e.Description)
	}
	return argErrorf("no help topic named %s", topic)
}
