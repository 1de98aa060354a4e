package eval

import (
	"fmt"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/builtins"
	"github.com/go-endbasic/endbasic/internal/errors"
	"github.com/go-endbasic/endbasic/internal/token"
	"github.com/go-endbasic/endbasic/internal/types"
)

// classifyBuiltinErr assigns an error taxonomy kind to whatever a
// builtin Command or Function returned: ArgError becomes an argument
// error, an already-classified Diagnostic passes through unchanged, and
// anything else (host I/O failures, mostly) becomes an I/O error.
func classifyBuiltinErr(err error, pos token.Position) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Diagnostic); ok {
		return err
	}
	if ae, ok := err.(*builtins.ArgError); ok {
		return errors.New(errors.KindArgument, ae.Message, pos)
	}
	return errors.New(errors.KindIO, err.Error(), pos)
}

func (m *Machine) execStmt(stmt ast.Stmt) error {
	switch n := stmt.(type) {
	case *ast.AssignStmt:
		return m.execAssign(n)
	case *ast.CallStmt:
		return m.execCall(n)
	case *ast.DimStmt:
		return m.execDim(n)
	case *ast.IfStmt:
		return m.execIf(n)
	case *ast.WhileStmt:
		return m.execWhile(n)
	case *ast.ForStmt:
		return m.execFor(n)
	default:
		return fmt.Errorf("eval: unhandled statement type %T", stmt)
	}
}

func (m *Machine) execAssign(n *ast.AssignStmt) error {
	v, err := m.Eval(n.Value)
	if err != nil {
		return err
	}
	return m.Assign(n.Target, v)
}

func (m *Machine) execCall(n *ast.CallStmt) error {
	entry, ok := m.registry.Lookup(n.Name)
	if !ok {
		return errors.New(errors.KindName, fmt.Sprintf("undefined command %s", n.Name), n.Pos())
	}
	if entry.Command == nil {
		return errors.New(errors.KindName,
			fmt.Sprintf("%s is a function; call it from an expression", n.Name), n.Pos())
	}
	if err := entry.Command(m, n.Args); err != nil {
		return classifyBuiltinErr(err, n.Pos())
	}
	return nil
}

func varTypeKind(vt ast.VarType) types.Kind {
	switch vt {
	case ast.VarTypeBoolean:
		return types.KindBoolean
	case ast.VarTypeInteger:
		return types.KindInteger
	case ast.VarTypeDouble:
		return types.KindDouble
	case ast.VarTypeString:
		return types.KindString
	default:
		return types.KindBoolean
	}
}

func (m *Machine) execDim(n *ast.DimStmt) error {
	if _, err := m.vars.Define(n.Name, varTypeKind(n.Type)); err != nil {
		return errors.New(errors.KindName, err.Error(), n.Pos())
	}
	return nil
}

func (m *Machine) execIf(n *ast.IfStmt) error {
	for _, branch := range n.Branches {
		if branch.Guard == nil {
			return m.execBlock(branch.Body)
		}
		v, err := m.Eval(branch.Guard)
		if err != nil {
			return err
		}
		b, ok := v.(types.Boolean)
		if !ok {
			return errors.New(errors.KindType,
				fmt.Sprintf("IF/ELSEIF guard must be BOOLEAN, found %s", v.Kind()), branch.Guard.Pos())
		}
		if b {
			return m.execBlock(branch.Body)
		}
	}
	return nil
}

func (m *Machine) execBlock(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := m.CheckSuspend(); err != nil {
			return err
		}
		if err := m.execStmt(stmt); err != nil {
			return err
		}
		if m.exited {
			return nil
		}
	}
	return nil
}

func (m *Machine) execWhile(n *ast.WhileStmt) error {
	for {
		if err := m.CheckSuspend(); err != nil {
			return err
		}
		v, err := m.Eval(n.Guard)
		if err != nil {
			return err
		}
		b, ok := v.(types.Boolean)
		if !ok {
			return errors.New(errors.KindType,
				fmt.Sprintf("WHILE guard must be BOOLEAN, found %s", v.Kind()), n.Guard.Pos())
		}
		if !b {
			return nil
		}
		if err := m.execBlock(n.Body); err != nil {
			return err
		}
		if m.exited {
			return nil
		}
	}
}

// forNext advances one FOR iteration's value by step integer units,
// keeping INTEGER or DOUBLE control variables in their own kind, and
// reports whether the loop should keep going against end.
func forNext(cur types.Value, step int32, end types.Value) (next types.Value, cont bool, err error) {
	switch c := cur.(type) {
	case types.Integer:
		e := end.(types.Integer)
		if step > 0 {
			cont = c <= e
		} else {
			cont = c >= e
		}
		return c + types.Integer(step), cont, nil
	case types.Double:
		e := end.(types.Double)
		if step > 0 {
			cont = c <= e
		} else {
			cont = c >= e
		}
		return c + types.Double(step), cont, nil
	default:
		return nil, false, fmt.Errorf("eval: unhandled FOR control kind %T", cur)
	}
}

// execFor implements FOR var = start TO end [STEP n] ... NEXT. start
// and end are evaluated once, at entry, and fix the loop variable's
// numeric kind (INTEGER or DOUBLE); step is always the integer constant
// parsed from the AST. Nesting a FOR on the same control variable name
// inside its own body is rejected, since the inner loop would corrupt
// the outer loop's iteration state.
func (m *Machine) execFor(n *ast.ForStmt) error {
	if m.activeFor[n.Control.Name] {
		return errors.New(errors.KindRuntime,
			fmt.Sprintf("FOR loop variable %s is already active in an enclosing FOR", n.Control.Name), n.Pos())
	}

	step := int32(1)
	if n.HasStep {
		step = n.StepValue
	}
	if step == 0 {
		return errors.New(errors.KindRuntime, "FOR step must not be zero", n.Pos())
	}

	start, err := m.Eval(n.Start)
	if err != nil {
		return err
	}
	if start.Kind() != types.KindInteger && start.Kind() != types.KindDouble {
		return errors.New(errors.KindType,
			fmt.Sprintf("FOR start value must be INTEGER or DOUBLE, found %s", start.Kind()), n.Start.Pos())
	}
	end, err := m.Eval(n.End)
	if err != nil {
		return err
	}
	if end.Kind() != start.Kind() {
		return errors.New(errors.KindType,
			fmt.Sprintf("FOR end value must be %s to match the start value, found %s", start.Kind(), end.Kind()), n.End.Pos())
	}

	if err := m.Assign(n.Control, start); err != nil {
		return err
	}

	if m.activeFor == nil {
		m.activeFor = make(map[string]bool)
	}
	m.activeFor[n.Control.Name] = true
	defer delete(m.activeFor, n.Control.Name)

	for {
		if err := m.CheckSuspend(); err != nil {
			return err
		}
		slot, _ := m.vars.Get(n.Control.Name)
		next, cont, err := forNext(slot.Value, step, end)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}

		if err := m.execBlock(n.Body); err != nil {
			return err
		}
		if m.exited {
			return nil
		}

		if err := m.Assign(n.Control, next); err != nil {
			return err
		}
	}
}
