// Package ast defines the EndBASIC abstract syntax tree: the statement
// and expression node variants produced by internal/parser and consumed
// by internal/eval.
package ast

import (
	"strings"

	"github.com/go-endbasic/endbasic/internal/token"
)

// Node is implemented by every statement and expression node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// --- Expressions -----------------------------------------------------

// Sigil is a trailing type annotation on a variable reference, or
// SigilNone when the reference carries no annotation.
type Sigil byte

const (
	SigilNone    Sigil = 0
	SigilBoolean Sigil = '?'
	SigilInteger Sigil = '%'
	SigilDouble  Sigil = '#'
	SigilString  Sigil = '$'
)

// IntegerLiteral is a parsed `%`-free decimal integer, already range
// checked by the lexer.
type IntegerLiteral struct {
	Token token.Token
	Value int32
}

func (n *IntegerLiteral) exprNode()            {}
func (n *IntegerLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *IntegerLiteral) String() string       { return n.Token.Literal }

// DoubleLiteral is a parsed floating-point literal.
type DoubleLiteral struct {
	Token token.Token
	Value float64
}

func (n *DoubleLiteral) exprNode()           {}
func (n *DoubleLiteral) Pos() token.Position { return n.Token.Pos }
func (n *DoubleLiteral) String() string      { return n.Token.Literal }

// StringLiteral is a parsed double-quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) exprNode()           {}
func (n *StringLiteral) Pos() token.Position { return n.Token.Pos }
func (n *StringLiteral) String() string      { return `"` + n.Value + `"` }

// BooleanLiteral is a parsed TRUE/FALSE literal.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (n *BooleanLiteral) exprNode()           {}
func (n *BooleanLiteral) Pos() token.Position { return n.Token.Pos }
func (n *BooleanLiteral) String() string {
	if n.Value {
		return "TRUE"
	}
	return "FALSE"
}

// VarRef is a variable reference: a name plus an optional sigil
// annotation.
type VarRef struct {
	Token token.Token
	Name  string // upper-cased, sigil-free
	Sigil Sigil
}

func (n *VarRef) exprNode()           {}
func (n *VarRef) Pos() token.Position { return n.Token.Pos }
func (n *VarRef) String() string {
	if n.Sigil != SigilNone {
		return n.Name + string(n.Sigil)
	}
	return n.Name
}

// UnaryExpr is a prefix `-` or `NOT` expression.
type UnaryExpr struct {
	Token    token.Token
	Operator string
	Operand  Expr
}

func (n *UnaryExpr) exprNode()           {}
func (n *UnaryExpr) Pos() token.Position { return n.Token.Pos }
func (n *UnaryExpr) String() string      { return n.Operator + " " + n.Operand.String() }

// BinaryExpr is an arithmetic, comparison, or logical binary expression.
type BinaryExpr struct {
	Token    token.Token
	Left     Expr
	Operator string
	Right    Expr
}

func (n *BinaryExpr) exprNode()           {}
func (n *BinaryExpr) Pos() token.Position { return n.Token.Pos }
func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// Arg is one position in a builtin call's argument list: an expression
// (nil denoting an empty slot, e.g. the first position of `COLOR ,5`)
// and the separator that preceded it (';' short, ',' long, or 0 for the
// first argument). Some builtins attach meaning to which separator was
// used — PRINT joins ';'-separated values with a space and ','-
// separated values with a tab.
type Arg struct {
	Expr Expr
	Sep  byte
}

// CallExpr is a parenthesised function call used in expression context,
// unlike a statement-context builtin call which never takes parentheses.
type CallExpr struct {
	Token token.Token
	Name  string // upper-cased
	Args  []Expr
}

func (n *CallExpr) exprNode()           {}
func (n *CallExpr) Pos() token.Position { return n.Token.Pos }
func (n *CallExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}

// --- Statements --------------------------------------------------------

// AssignStmt is `VarRef = Expr`.
type AssignStmt struct {
	Token  token.Token
	Target *VarRef
	Value  Expr
}

func (n *AssignStmt) stmtNode()          {}
func (n *AssignStmt) Pos() token.Position { return n.Token.Pos }
func (n *AssignStmt) String() string {
	return n.Target.String() + " = " + n.Value.String()
}

// CallStmt is a builtin invoked as a statement (a "command" per the
// glossary): name plus its raw, ungrouped-by-evaluation argument groups.
type CallStmt struct {
	Token token.Token
	Name  string // upper-cased
	Args  []Arg
}

func (n *CallStmt) stmtNode()          {}
func (n *CallStmt) Pos() token.Position { return n.Token.Pos }
func (n *CallStmt) String() string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	for i, a := range n.Args {
		if i == 0 {
			sb.WriteByte(' ')
		} else if a.Sep != 0 {
			sb.WriteByte(a.Sep)
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		if a.Expr != nil {
			sb.WriteString(a.Expr.String())
		}
	}
	return sb.String()
}

// IfBranch is one `guard THEN block` arm of an If statement, or the
// final unconditional `ELSE` arm when Guard is nil.
type IfBranch struct {
	Guard Expr
	Body  []Stmt
}

// IfStmt is `IF ... THEN ... [ELSEIF ... THEN ...]* [ELSE ...] END IF`.
type IfStmt struct {
	Token    token.Token
	Branches []IfBranch
}

func (n *IfStmt) stmtNode()          {}
func (n *IfStmt) Pos() token.Position { return n.Token.Pos }
func (n *IfStmt) String() string      { return "IF ... END IF" }

// WhileStmt is `WHILE expr ... END WHILE`.
type WhileStmt struct {
	Token token.Token
	Guard Expr
	Body  []Stmt
}

func (n *WhileStmt) stmtNode()          {}
func (n *WhileStmt) Pos() token.Position { return n.Token.Pos }
func (n *WhileStmt) String() string      { return "WHILE " + n.Guard.String() + " ... END WHILE" }

// ForStmt is `FOR var = start TO end [STEP n] ... NEXT`. Step, when
// present, is always an integer literal, not a general expression;
// StepValue defaults to 1.
type ForStmt struct {
	Token     token.Token
	Control   *VarRef
	Start     Expr
	End       Expr
	HasStep   bool
	StepValue int32
	Body      []Stmt
}

func (n *ForStmt) stmtNode()          {}
func (n *ForStmt) Pos() token.Position { return n.Token.Pos }
func (n *ForStmt) String() string      { return "FOR " + n.Control.String() + " ... NEXT" }

// VarType names one of the four DIM-declarable types.
type VarType byte

const (
	VarTypeBoolean VarType = iota
	VarTypeInteger
	VarTypeDouble
	VarTypeString
)

// DimStmt is `DIM name AS type`.
type DimStmt struct {
	Token token.Token
	Name  string // upper-cased
	Type  VarType
}

func (n *DimStmt) stmtNode()          {}
func (n *DimStmt) Pos() token.Position { return n.Token.Pos }
func (n *DimStmt) String() string      { return "DIM " + n.Name }
