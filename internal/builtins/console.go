package builtins

import (
	"strconv"
	"strings"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/types"
)

// RegisterConsole adds CLS, COLOR, LOCATE, PRINT, and INPUT to r.
func RegisterConsole(r *Registry) {
	r.Register(&Entry{Name: "CLS", Category: CategoryConsole, Command: cmdCLS,
		Description: "Clears the screen."})
	r.Register(&Entry{Name: "COLOR", Category: CategoryConsole, Command: cmdColor,
		Description: "Sets the foreground and/or background color."})
	r.Register(&Entry{Name: "LOCATE", Category: CategoryConsole, Command: cmdLocate,
		Description: "Moves the cursor to a 1-indexed row and column."})
	r.Register(&Entry{Name: "PRINT", Category: CategoryConsole, Command: cmdPrint,
		Description: "Prints values to the console."})
	r.Register(&Entry{Name: "INPUT", Category: CategoryConsole, Command: cmdInput,
		Description: "Reads one line of input into a variable."})
}

func evalInt(m Machine, e ast.Expr) (int, error) {
	v, err := m.Eval(e)
	if err != nil {
		return 0, err
	}
	i, ok := v.(types.Integer)
	if !ok {
		return 0, argErrorf("expected an INTEGER argument, found %s", v.Kind())
	}
	return int(i), nil
}

func cmdCLS(m Machine, args []ast.Arg) error {
	if len(args) != 0 {
		return argErrorf("CLS takes no arguments")
	}
	return m.Host().Console.Clear()
}

func cmdColor(m Machine, args []ast.Arg) error {
	if len(args) > 2 {
		return argErrorf("COLOR takes at most two arguments")
	}
	var fg, bg *int
	if len(args) >= 1 && args[0].Expr != nil {
		v, err := evalInt(m, args[0].Expr)
		if err != nil {
			return err
		}
		fg = &v
	}
	if len(args) >= 2 && args[1].Expr != nil {
		v, err := evalInt(m, args[1].Expr)
		if err != nil {
			return err
		}
		bg = &v
	}
	return m.Host().Console.SetColor(fg, bg)
}

func cmdLocate(m Machine, args []ast.Arg) error {
	if len(args) != 2 || args[0].Expr == nil || args[1].Expr == nil {
		return argErrorf("LOCATE requires a row and a column")
	}
	row, err := evalInt(m, args[0].Expr)
	if err != nil {
		return err
	}
	col, err := evalInt(m, args[1].Expr)
	if err != nil {
		return err
	}
	return m.Host().Console.Locate(row, col)
}

// cmdPrint implements PRINT expr[,|; ...]. ';' joins consecutive values
// with a single space, ',' joins with a tab. A trailing separator with
// no following value (e.g. "PRINT i;") suppresses the statement's
// implicit trailing newline and instead leaves that separator owed on
// the Machine: the next PRINT call consumes it as a prefix for its own
// output, rather than this call writing it onto its own empty trailing
// slot. That is what lets `FOR i = 1 TO 3 : PRINT i; : NEXT` print
// "1 2 3" instead of "123", while still never emitting a stray
// separator after the loop's last value. If a suppressed newline is
// still owed once the program finishes running, Run flushes it so
// output never ends mid-line.
func cmdPrint(m Machine, args []ast.Arg) error {
	var sb strings.Builder
	if join := m.ConsumePendingPrintJoin(); join != 0 {
		sb.WriteByte(join)
	}
	suppressNewline := false
	pendingJoin := byte(0)
	for i, a := range args {
		if a.Expr == nil {
			suppressNewline = true
			if a.Sep == ',' {
				pendingJoin = '\t'
			} else {
				pendingJoin = ' '
			}
			continue
		}
		if i > 0 {
			switch a.Sep {
			case ',':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(' ')
			}
		}
		v, err := m.Eval(a.Expr)
		if err != nil {
			return err
		}
		sb.WriteString(v.String())
	}
	if suppressNewline {
		m.SetPendingPrintJoin(pendingJoin)
	} else {
		sb.WriteByte('\n')
	}
	return m.Host().Console.Write(sb.String())
}

// cmdInput implements INPUT [prompt$] <;|,> var. The variable must
// already have a declared type, via DIM or a prior assignment, or via a
// sigil on this reference itself.
func cmdInput(m Machine, args []ast.Arg) error {
	if len(args) == 0 {
		return argErrorf("INPUT requires a variable")
	}
	last := args[len(args)-1]
	ref, ok := last.Expr.(*ast.VarRef)
	if !ok {
		return argErrorf("INPUT's last argument must be a variable reference")
	}

	prompt := ""
	if len(args) >= 2 && args[0].Expr != nil {
		v, err := m.Eval(args[0].Expr)
		if err != nil {
			return err
		}
		prompt = v.String()
	}
	if last.Sep == ';' {
		prompt += "?"
	}

	kind, err := resolveVarKind(ref, m)
	if err != nil {
		return err
	}

	for {
		if err := m.CheckSuspend(); err != nil {
			return err
		}
		line, err := m.Host().Console.ReadLine(prompt)
		if err != nil {
			return err
		}
		val, perr := parseInputValue(line, kind)
		if perr == nil {
			return m.Assign(ref, val)
		}
	}
}

func resolveVarKind(ref *ast.VarRef, m Machine) (types.Kind, error) {
	switch ref.Sigil {
	case ast.SigilBoolean:
		return types.KindBoolean, nil
	case ast.SigilInteger:
		return types.KindInteger, nil
	case ast.SigilDouble:
		return types.KindDouble, nil
	case ast.SigilString:
		return types.KindString, nil
	}
	if slot, ok := m.Vars().Get(ref.Name); ok {
		return slot.Kind, nil
	}
	return 0, argErrorf("cannot INPUT into undeclared variable %s", ref.Name)
}

func parseInputValue(line string, kind types.Kind) (types.Value, error) {
	trimmed := strings.TrimSpace(line)
	switch kind {
	case types.KindBoolean:
		switch strings.ToUpper(trimmed) {
		case "TRUE":
			return types.Boolean(true), nil
		case "FALSE":
			return types.Boolean(false), nil
		default:
			return nil, argErrorf("not a valid BOOLEAN: %q", line)
		}
	case types.KindInteger:
		v, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, argErrorf("not a valid INTEGER: %q", line)
		}
		return types.Integer(v), nil
	case types.KindDouble:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, argErrorf("not a valid DOUBLE: %q", line)
		}
		return types.Double(v), nil
	case types.KindString:
		return types.String(line), nil
	default:
		return nil, argErrorf("unknown variable kind")
	}
}
