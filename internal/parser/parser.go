// Package parser is a recursive-descent parser producing an *ast.Program
// from a token stream. It accumulates errors rather than stopping at the
// first one, but parsing as a whole is all-or-nothing: ParseProgram
// returns either a complete AST (when Errors() is empty) or a set of
// errors, never a partial tree meant to be used.
package parser

import (
	"fmt"
	"strconv"

	"github.com/go-endbasic/endbasic/internal/ast"
	"github.com/go-endbasic/endbasic/internal/lexer"
	"github.com/go-endbasic/endbasic/internal/token"
)

// ParseError is a single structured parse error: a position, an
// optional set of expected token descriptions, and a message.
type ParseError struct {
	Pos      token.Position
	Message  string
	Expected []string
}

func (e *ParseError) Error() string { return e.Message }

// Parser walks a token stream with one token of lookahead.
type Parser struct {
	lex    *lexer.Lexer
	cur    token.Token
	peek   token.Token
	errors []*ParseError
}

// New creates a Parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated, plus any lexical errors
// surfaced by the underlying lexer — both share one error channel from
// the caller's point of view.
func (p *Parser) Errors() []*ParseError {
	if len(p.lex.Errors()) == 0 {
		return p.errors
	}
	all := make([]*ParseError, 0, len(p.errors)+len(p.lex.Errors()))
	for _, le := range p.lex.Errors() {
		all = append(all, &ParseError{Pos: le.Pos, Message: le.Message})
	}
	all = append(all, p.errors...)
	return all
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(tt token.Type, what string) bool {
	if p.cur.Type == tt {
		return true
	}
	p.errorf(p.cur.Pos, "expected %s, found %q", what, p.cur.Literal)
	return false
}

// skipEOS consumes any run of end-of-statement tokens (blank lines,
// stray colons).
func (p *Parser) skipEOS() {
	for p.cur.Type == token.EOS {
		p.next()
	}
}

// ParseProgram parses the full token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipEOS()
	for p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.cur.Type != token.EOF && p.cur.Type != token.EOS {
			p.errorf(p.cur.Pos, "expected end of statement, found %q", p.cur.Literal)
			p.next()
		}
		p.skipEOS()
	}
	return prog
}

// parseBlock parses statements until the current token is EOF or one of
// the given terminator token types, without consuming the terminator.
func (p *Parser) parseBlock(terminators ...token.Type) []ast.Stmt {
	var stmts []ast.Stmt
	p.skipEOS()
	for p.cur.Type != token.EOF && !p.atAny(terminators) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.cur.Type != token.EOF && p.cur.Type != token.EOS && !p.atAny(terminators) {
			p.errorf(p.cur.Pos, "expected end of statement, found %q", p.cur.Literal)
			p.next()
		}
		p.skipEOS()
	}
	return stmts
}

func (p *Parser) atAny(types []token.Type) bool {
	for _, tt := range types {
		if p.cur.Type == tt {
			return true
		}
	}
	return false
}

// parseStatement dispatches on the current token to one statement kind.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.DIM:
		return p.parseDim()
	case token.IDENT:
		if p.peek.Type == token.ASSIGN {
			return p.parseAssign()
		}
		return p.parseCall()
	default:
		p.errorf(p.cur.Pos, "unexpected token %q at start of statement", p.cur.Literal)
		p.next()
		return nil
	}
}

func (p *Parser) parseAssign() ast.Stmt {
	tok := p.cur
	target := p.parseVarRef()
	if !p.expect(token.ASSIGN, "'='") {
		return nil
	}
	p.next() // consume '='
	value := p.parseExpr()
	return &ast.AssignStmt{Token: tok, Target: target, Value: value}
}

// parseCall parses a builtin invoked as a statement: a bare name
// followed by an unparenthesised, possibly empty argument list that
// runs to the next end-of-statement token.
func (p *Parser) parseCall() ast.Stmt {
	tok := p.cur
	name := upperName(p.cur.Literal)
	p.next()

	var args []ast.Arg
	if p.cur.Type != token.EOS && p.cur.Type != token.EOF {
		args = p.parseArgList()
	}
	return &ast.CallStmt{Token: tok, Name: name, Args: args}
}

// parseArgList parses a flat, comma/semicolon-separated argument list,
// permitting empty positions (e.g. "COLOR ,5").
func (p *Parser) parseArgList() []ast.Arg {
	var args []ast.Arg
	sep := byte(0)
	for {
		var expr ast.Expr
		if !p.atArgBoundary() {
			expr = p.parseExpr()
		}
		args = append(args, ast.Arg{Expr: expr, Sep: sep})

		switch p.cur.Type {
		case token.COMMA:
			sep = ','
			p.next()
		case token.SEMICOLON:
			sep = ';'
			p.next()
		default:
			return args
		}
	}
}

func (p *Parser) atArgBoundary() bool {
	switch p.cur.Type {
	case token.COMMA, token.SEMICOLON, token.EOS, token.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseVarRef() *ast.VarRef {
	tok := p.cur
	name, sigil := splitSigil(p.cur.Literal)
	p.next()
	return &ast.VarRef{Token: tok, Name: upperName(name), Sigil: sigil}
}

func (p *Parser) parseDim() ast.Stmt {
	tok := p.cur
	p.next() // consume DIM
	if !p.expect(token.IDENT, "variable name") {
		return nil
	}
	name := upperName(splitSigilName(p.cur.Literal))
	p.next()
	if !p.expect(token.AS, "'AS'") {
		return nil
	}
	p.next()
	var vt ast.VarType
	switch p.cur.Type {
	case token.TYPE_BOOLEAN:
		vt = ast.VarTypeBoolean
	case token.TYPE_INTEGER:
		vt = ast.VarTypeInteger
	case token.TYPE_DOUBLE:
		vt = ast.VarTypeDouble
	case token.TYPE_STRING:
		vt = ast.VarTypeString
	default:
		p.errorf(p.cur.Pos, "expected a type name (BOOLEAN, INTEGER, DOUBLE, STRING), found %q", p.cur.Literal)
		return nil
	}
	p.next()
	return &ast.DimStmt{Token: tok, Name: name, Type: vt}
}

func (p *Parser) parseIf() ast.Stmt {
	tok := p.cur
	p.next() // consume IF
	var branches []ast.IfBranch

	guard := p.parseExpr()
	if !p.expect(token.THEN, "'THEN'") {
		return nil
	}
	p.next()
	body := p.parseBlock(token.ELSEIF, token.ELSE, token.END)
	branches = append(branches, ast.IfBranch{Guard: guard, Body: body})

	for p.cur.Type == token.ELSEIF {
		p.next()
		g := p.parseExpr()
		if !p.expect(token.THEN, "'THEN'") {
			return nil
		}
		p.next()
		b := p.parseBlock(token.ELSEIF, token.ELSE, token.END)
		branches = append(branches, ast.IfBranch{Guard: g, Body: b})
	}

	if p.cur.Type == token.ELSE {
		p.next()
		b := p.parseBlock(token.END)
		branches = append(branches, ast.IfBranch{Guard: nil, Body: b})
	}

	if !p.expect(token.END, "'END'") {
		return nil
	}
	p.next()
	if !p.expect(token.IF, "'IF'") {
		return nil
	}
	p.next()
	return &ast.IfStmt{Token: tok, Branches: branches}
}

func (p *Parser) parseWhile() ast.Stmt {
	tok := p.cur
	p.next() // consume WHILE
	guard := p.parseExpr()
	body := p.parseBlock(token.END)
	if !p.expect(token.END, "'END'") {
		return nil
	}
	p.next()
	if !p.expect(token.WHILE, "'WHILE'") {
		return nil
	}
	p.next()
	return &ast.WhileStmt{Token: tok, Guard: guard, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	tok := p.cur
	p.next() // consume FOR
	if !p.expect(token.IDENT, "loop variable") {
		return nil
	}
	control := p.parseVarRef()
	if !p.expect(token.ASSIGN, "'='") {
		return nil
	}
	p.next()
	start := p.parseExpr()
	if !p.expect(token.TO, "'TO'") {
		return nil
	}
	p.next()
	end := p.parseExpr()

	hasStep := false
	var stepValue int32 = 1
	if p.cur.Type == token.STEP {
		p.next()
		neg := false
		if p.cur.Type == token.MINUS {
			neg = true
			p.next()
		}
		if !p.expect(token.INT, "an integer literal") {
			return nil
		}
		v, err := strconv.ParseInt(p.cur.Literal, 10, 32)
		if err != nil {
			p.errorf(p.cur.Pos, "invalid STEP literal %q", p.cur.Literal)
		}
		if neg {
			v = -v
		}
		stepValue = int32(v)
		hasStep = true
		p.next()
	}

	body := p.parseBlock(token.NEXT)
	if !p.expect(token.NEXT, "'NEXT'") {
		return nil
	}
	p.next()
	return &ast.ForStmt{
		Token: tok, Control: control, Start: start, End: end,
		HasStep: hasStep, StepValue: stepValue, Body: body,
	}
}

// --- Expressions -------------------------------------------------------
//
// Precedence, lowest to highest:
//   OR XOR  ·  AND  ·  NOT  ·  comparisons (non-assoc)  ·  + -  ·  * / MOD
// all binary operators left-associative except comparisons, which do not
// chain.

func (p *Parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.cur.Type == token.OR || p.cur.Type == token.XOR {
		tok := p.cur
		op := p.cur.Literal
		p.next()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: upperName(op), Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.cur.Type == token.AND {
		tok := p.cur
		p.next()
		right := p.parseNot()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: "AND", Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.Expr {
	if p.cur.Type == token.NOT {
		tok := p.cur
		p.next()
		operand := p.parseNot()
		return &ast.UnaryExpr{Token: tok, Operator: "NOT", Operand: operand}
	}
	return p.parseComparison()
}

var comparisonOps = map[token.Type]string{
	token.ASSIGN:     "=",
	token.NOT_EQ:     "<>",
	token.LESS:       "<",
	token.LESS_EQ:    "<=",
	token.GREATER:    ">",
	token.GREATER_EQ: ">=",
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if op, ok := comparisonOps[p.cur.Type]; ok {
		tok := p.cur
		p.next()
		right := p.parseAdditive()
		return &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		tok := p.cur
		op := tok.Literal
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.cur.Type == token.ASTERISK || p.cur.Type == token.SLASH || p.cur.Type == token.MOD {
		tok := p.cur
		op := tok.Literal
		if tok.Type == token.MOD {
			op = "MOD"
		}
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.cur.Type == token.MINUS {
		tok := p.cur
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Token: tok, Operator: "-", Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case token.INT:
		tok := p.cur
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil || v > (1<<31-1) {
			p.errorf(tok.Pos, "integer literal out of range: %s", tok.Literal)
		}
		p.next()
		return &ast.IntegerLiteral{Token: tok, Value: int32(v)}
	case token.DOUBLE:
		tok := p.cur
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid double literal: %s", tok.Literal)
		}
		p.next()
		return &ast.DoubleLiteral{Token: tok, Value: v}
	case token.STRING:
		tok := p.cur
		p.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.BOOLEAN:
		tok := p.cur
		p.next()
		return &ast.BooleanLiteral{Token: tok, Value: upperName(tok.Literal) == "TRUE"}
	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		if !p.expect(token.RPAREN, "')'") {
			return expr
		}
		p.next()
		return expr
	case token.IDENT:
		if p.peek.Type == token.LPAREN {
			return p.parseCallExpr()
		}
		return p.parseVarRef()
	default:
		p.errorf(p.cur.Pos, "unexpected token %q in expression", p.cur.Literal)
		tok := p.cur
		p.next()
		return &ast.IntegerLiteral{Token: tok, Value: 0}
	}
}

func (p *Parser) parseCallExpr() ast.Expr {
	tok := p.cur
	name, _ := splitSigil(p.cur.Literal)
	p.next() // consume name
	p.next() // consume '('
	var args []ast.Expr
	if p.cur.Type != token.RPAREN {
		args = append(args, p.parseExpr())
		for p.cur.Type == token.COMMA {
			p.next()
			args = append(args, p.parseExpr())
		}
	}
	if !p.expect(token.RPAREN, "')'") {
		return &ast.CallExpr{Token: tok, Name: upperName(name), Args: args}
	}
	p.next()
	return &ast.CallExpr{Token: tok, Name: upperName(name), Args: args}
}

// --- Lexical helpers shared with the parser -----------------------------

func upperName(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// splitSigil separates a trailing type sigil from an identifier literal
// as produced by the lexer.
func splitSigil(lit string) (string, ast.Sigil) {
	if lit == "" {
		return lit, ast.SigilNone
	}
	last := lit[len(lit)-1]
	switch last {
	case '?', '%', '#', '$':
		return lit[:len(lit)-1], ast.Sigil(last)
	default:
		return lit, ast.SigilNone
	}
}

func splitSigilName(lit string) string {
	name, _ := splitSigil(lit)
	return name
}
