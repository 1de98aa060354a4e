package eval

import (
	"fmt"
	"math"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/errors"
	"github.com/go-endbasic/endbasic/internal/token"
	"github.com/go-endbasic/endbasic/internal/types"
)

func sigilKind(s ast.Sigil) types.Kind {
	switch s {
	case ast.SigilBoolean:
		return types.KindBoolean
	case ast.SigilInteger:
		return types.KindInteger
	case ast.SigilDouble:
		return types.KindDouble
	case ast.SigilString:
		return types.KindString
	default:
		return types.KindBoolean
	}
}

// Eval evaluates expr against the Machine's current variable scope.
func (m *Machine) Eval(expr ast.Expr) (types.Value, error) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return types.Integer(n.Value), nil
	case *ast.DoubleLiteral:
		return types.Double(n.Value), nil
	case *ast.StringLiteral:
		return types.String(n.Value), nil
	case *ast.BooleanLiteral:
		return types.Boolean(n.Value), nil
	case *ast.VarRef:
		return m.evalVarRef(n)
	case *ast.UnaryExpr:
		return m.evalUnary(n)
	case *ast.BinaryExpr:
		return m.evalBinary(n)
	case *ast.CallExpr:
		return m.evalCallExpr(n)
	default:
		return nil, fmt.Errorf("eval: unhandled expression type %T", expr)
	}
}

func (m *Machine) evalVarRef(n *ast.VarRef) (types.Value, error) {
	slot, ok := m.vars.Get(n.Name)
	if !ok {
		return nil, errors.New(errors.KindName, fmt.Sprintf("undefined variable %s", n.Name), n.Pos())
	}
	if n.Sigil != ast.SigilNone && sigilKind(n.Sigil) != slot.Kind {
		return nil, errors.New(errors.KindType,
			fmt.Sprintf("variable %s is %s, not %s", n.Name, slot.Kind, sigilKind(n.Sigil)), n.Pos())
	}
	return slot.Value, nil
}

func (m *Machine) evalUnary(n *ast.UnaryExpr) (types.Value, error) {
	v, err := m.Eval(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		switch x := v.(type) {
		case types.Integer:
			// -MinInt32 would overflow int32; saturate instead of wrapping.
			if x == math.MinInt32 {
				return types.Integer(math.MaxInt32), nil
			}
			return -x, nil
		case types.Double:
			return -x, nil
		default:
			return nil, errors.New(errors.KindType,
				fmt.Sprintf("unary - requires an INTEGER or DOUBLE operand, found %s", v.Kind()), n.Pos())
		}
	case "NOT":
		b, ok := v.(types.Boolean)
		if !ok {
			return nil, errors.New(errors.KindType,
				fmt.Sprintf("NOT requires a BOOLEAN operand, found %s", v.Kind()), n.Pos())
		}
		return !b, nil
	default:
		return nil, fmt.Errorf("eval: unknown unary operator %q", n.Operator)
	}
}

func (m *Machine) evalBinary(n *ast.BinaryExpr) (types.Value, error) {
	left, err := m.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := m.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	pos := n.Pos()

	switch n.Operator {
	case "AND", "OR", "XOR":
		return evalLogical(n.Operator, left, right, pos)
	case "=", "<>", "<", "<=", ">", ">=":
		return evalComparison(n.Operator, left, right, pos)
	case "+":
		return evalPlus(left, right, pos)
	case "-", "*", "/", "MOD":
		return evalArith(n.Operator, left, right, pos)
	default:
		return nil, fmt.Errorf("eval: unknown binary operator %q", n.Operator)
	}
}

func evalLogical(op string, left, right types.Value, pos token.Position) (types.Value, error) {
	lb, lok := left.(types.Boolean)
	rb, rok := right.(types.Boolean)
	if !lok || !rok {
		return nil, errors.New(errors.KindType,
			fmt.Sprintf("%s requires two BOOLEAN operands, found %s and %s", op, left.Kind(), right.Kind()), pos)
	}
	switch op {
	case "AND":
		return lb && rb, nil
	case "OR":
		return lb || rb, nil
	case "XOR":
		return lb != rb, nil
	default:
		return nil, fmt.Errorf("eval: unknown logical operator %q", op)
	}
}

// boolRank maps a Boolean to 0/1 so ordering comparisons (<, <=, >, >=)
// are defined on it the same way they are on the other three kinds.
func boolRank(b types.Boolean) int {
	if b {
		return 1
	}
	return 0
}

func evalComparison(op string, left, right types.Value, pos token.Position) (types.Value, error) {
	if left.Kind() != right.Kind() {
		return nil, errors.New(errors.KindType,
			fmt.Sprintf("cannot compare %s to %s", left.Kind(), right.Kind()), pos)
	}

	var cmp int
	switch l := left.(type) {
	case types.Boolean:
		cmp = boolRank(l) - boolRank(right.(types.Boolean))
	case types.Integer:
		r := right.(types.Integer)
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	case types.Double:
		r := right.(types.Double)
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	case types.String:
		r := right.(types.String)
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	default:
		return nil, fmt.Errorf("eval: unhandled comparison kind %T", left)
	}

	switch op {
	case "=":
		return types.Boolean(cmp == 0), nil
	case "<>":
		return types.Boolean(cmp != 0), nil
	case "<":
		return types.Boolean(cmp < 0), nil
	case "<=":
		return types.Boolean(cmp <= 0), nil
	case ">":
		return types.Boolean(cmp > 0), nil
	case ">=":
		return types.Boolean(cmp >= 0), nil
	default:
		return nil, fmt.Errorf("eval: unknown comparison operator %q", op)
	}
}

// evalPlus implements '+': numeric addition for INTEGER/DOUBLE, and
// concatenation for STRING. Cross-kind operands are a type error, as is
// '+' on BOOLEAN.
func evalPlus(left, right types.Value, pos token.Position) (types.Value, error) {
	if left.Kind() != right.Kind() {
		return nil, errors.New(errors.KindType,
			fmt.Sprintf("+ requires matching operand types, found %s and %s", left.Kind(), right.Kind()), pos)
	}
	switch l := left.(type) {
	case types.Integer:
		return l + right.(types.Integer), nil
	case types.Double:
		return l + right.(types.Double), nil
	case types.String:
		return l + right.(types.String), nil
	default:
		return nil, errors.New(errors.KindType,
			fmt.Sprintf("+ does not apply to %s", left.Kind()), pos)
	}
}

// evalArith implements '-', '*', '/', and MOD: numeric-only, matching
// operand kinds, no coercion. Integer arithmetic wraps on overflow
// (Go's native int32 semantics); integer division and MOD truncate
// toward zero and fail at runtime on a zero divisor. Double division by
// zero yields +/-Inf or NaN per IEEE-754, never an error.
func evalArith(op string, left, right types.Value, pos token.Position) (types.Value, error) {
	if left.Kind() != right.Kind() {
		return nil, errors.New(errors.KindType,
			fmt.Sprintf("%s requires matching operand types, found %s and %s", op, left.Kind(), right.Kind()), pos)
	}
	switch l := left.(type) {
	case types.Integer:
		r := right.(types.Integer)
		switch op {
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		case "/":
			if r == 0 {
				return nil, errors.New(errors.KindRuntime, "integer division by zero", pos)
			}
			return l / r, nil
		case "MOD":
			if r == 0 {
				return nil, errors.New(errors.KindRuntime, "integer division by zero", pos)
			}
			return l % r, nil
		}
	case types.Double:
		if op == "MOD" {
			return nil, errors.New(errors.KindType, "MOD requires INTEGER operands, found DOUBLE", pos)
		}
		r := right.(types.Double)
		switch op {
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		case "/":
			return l / r, nil
		}
	default:
		return nil, errors.New(errors.KindType,
			fmt.Sprintf("%s requires INTEGER or DOUBLE operands, found %s", op, left.Kind()), pos)
	}
	return nil, fmt.Errorf("eval: unreachable arithmetic operator %q", op)
}

// evalCallExpr evaluates a parenthesised function call: arguments are
// evaluated first, then the registered Function is invoked.
func (m *Machine) evalCallExpr(n *ast.CallExpr) (types.Value, error) {
	entry, ok := m.registry.Lookup(n.Name)
	if !ok {
		return nil, errors.New(errors.KindName, fmt.Sprintf("undefined function %s", n.Name), n.Pos())
	}
	if !entry.IsFunction() {
		return nil, errors.New(errors.KindName, fmt.Sprintf("%s is a command, not a function", n.Name), n.Pos())
	}
	args := make([]types.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := m.Eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	v, err := entry.Function(m, args)
	if err != nil {
		return nil, classifyBuiltinErr(err, n.Pos())
	}
	return v, nil
}
