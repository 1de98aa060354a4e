package eval

import (
	"context"
	"math"
	"testing"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/types"
)

func evalExpr(t *testing.T, m *Machine, expr ast.Expr) types.Value {
	t.Helper()
	v, err := m.Eval(expr)
	if err != nil {
		t.Fatalf("Eval(%s): %v", expr.String(), err)
	}
	return v
}

func TestIntegerArithmeticWrapsOnOverflow(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{
		Operator: "+",
		Left:     &ast.IntegerLiteral{Value: math.MaxInt32},
		Right:    &ast.IntegerLiteral{Value: 1},
	}
	v := evalExpr(t, m, expr)
	if v != types.Integer(math.MinInt32) {
		t.Errorf("MaxInt32 + 1 = %v, want wraparound to MinInt32", v)
	}
}

func TestUnaryMinusSaturatesAtMinInt32(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.UnaryExpr{Operator: "-", Operand: &ast.IntegerLiteral{Value: math.MinInt32}}
	v := evalExpr(t, m, expr)
	if v != types.Integer(math.MaxInt32) {
		t.Errorf("-MinInt32 = %v, want saturated MaxInt32", v)
	}
}

func TestIntegerDivisionByZeroIsRuntimeError(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "/", Left: &ast.IntegerLiteral{Value: 1}, Right: &ast.IntegerLiteral{Value: 0}}
	if _, err := m.Eval(expr); err == nil {
		t.Fatal("integer division by zero should fail")
	}
}

func TestDoubleDivisionByZeroProducesInf(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "/", Left: &ast.DoubleLiteral{Value: 1}, Right: &ast.DoubleLiteral{Value: 0}}
	v := evalExpr(t, m, expr)
	d, ok := v.(types.Double)
	if !ok || !math.IsInf(float64(d), 1) {
		t.Errorf("1.0 / 0.0 = %v, want +Inf", v)
	}
}

func TestModRejectsDoubleOperands(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "MOD", Left: &ast.DoubleLiteral{Value: 5}, Right: &ast.DoubleLiteral{Value: 2}}
	if _, err := m.Eval(expr); err == nil {
		t.Fatal("MOD on DOUBLE operands should be a type error")
	}
}

func TestModTruncatesTowardZero(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "MOD", Left: &ast.IntegerLiteral{Value: -7}, Right: &ast.IntegerLiteral{Value: 2}}
	v := evalExpr(t, m, expr)
	if v != types.Integer(-1) {
		t.Errorf("-7 MOD 2 = %v, want -1 (Go's truncating %%)", v)
	}
}

func TestComparisonRequiresMatchingKinds(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "<", Left: &ast.IntegerLiteral{Value: 1}, Right: &ast.DoubleLiteral{Value: 1}}
	if _, err := m.Eval(expr); err == nil {
		t.Fatal("comparing INTEGER to DOUBLE should be a type error, not an implicit coercion")
	}
}

func TestStringConcatenation(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "+", Left: &ast.StringLiteral{Value: "foo"}, Right: &ast.StringLiteral{Value: "bar"}}
	v := evalExpr(t, m, expr)
	if v != types.String("foobar") {
		t.Errorf(`"foo" + "bar" = %v, want "foobar"`, v)
	}
}

func TestPlusRejectsMismatchedKinds(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "+", Left: &ast.StringLiteral{Value: "foo"}, Right: &ast.IntegerLiteral{Value: 1}}
	if _, err := m.Eval(expr); err == nil {
		t.Fatal("STRING + INTEGER should be a type error, not a coercion")
	}
}

func TestLogicalOperatorsRequireBoolean(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "AND", Left: &ast.IntegerLiteral{Value: 1}, Right: &ast.BooleanLiteral{Value: true}}
	if _, err := m.Eval(expr); err == nil {
		t.Fatal("AND on a non-BOOLEAN operand should be a type error")
	}
}

func TestXorIsExclusiveOr(t *testing.T) {
	_, m := newTestMachine()
	expr := &ast.BinaryExpr{Operator: "XOR", Left: &ast.BooleanLiteral{Value: true}, Right: &ast.BooleanLiteral{Value: true}}
	v := evalExpr(t, m, expr)
	if v != types.Boolean(false) {
		t.Errorf("TRUE XOR TRUE = %v, want FALSE", v)
	}
}

func TestUndefinedVariableIsNameError(t *testing.T) {
	_, m := newTestMachine()
	if _, err := m.Eval(&ast.VarRef{Name: "UNSET"}); err == nil {
		t.Fatal("referencing an undefined variable should fail")
	}
}

func TestVarRefSigilMustMatchDeclaredKind(t *testing.T) {
	_, m := newTestMachine()
	if err := m.RunSource(context.Background(), "a% = 1"); err != nil {
		t.Fatalf("assignment: %v", err)
	}
	if _, err := m.Eval(&ast.VarRef{Name: "A", Sigil: ast.SigilString}); err == nil {
		t.Fatal("referencing an INTEGER variable with a $ sigil should be a type error")
	}
}
