// Package parser implements a recursive-descent parser for Lox, including
// class declarations, get/set expressions, and this/super.
package parser

import (
	"golang.org/x/exp/slices"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

const maxArgs = 255

// parseError is a sentinel used to unwind the recursive descent back to
// Parse once a production fails; Parse converts it to a *loxerr.ParseError.
type parseError struct {
	tok token.Token
	msg string
}

func (e *parseError) Error() string { return e.msg }

// Parser consumes a token sequence with one token of lookahead.
type Parser struct {
	tokens []token.Token
	idx    int
}

// New returns a Parser over tokens (normally the scanner's full output,
// including the trailing EOF).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse returns the top-level statement list, or the first *loxerr.ParseError
// encountered. Recovery is coarse: parsing aborts at the first error.
func (p *Parser) Parse() (stmts []ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*parseError)
			if !ok {
				panic(r)
			}
			err = &loxerr.ParseError{Line: pe.tok.Line, Lexeme: pe.tok.Lexeme, Msg: pe.msg}
		}
	}()

	for !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts, nil
}

// ParseExpression parses a single expression rather than a program of
// statements.
func (p *Parser) ParseExpression() (expr ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*parseError)
			if !ok {
				panic(r)
			}
			err = &loxerr.ParseError{Line: pe.tok.Line, Lexeme: pe.tok.Lexeme, Msg: pe.msg}
		}
	}()
	return p.expression(), nil
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.funDecl("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	var methods []*ast.Function
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		methods = append(methods, p.funDecl("method").(*ast.Function))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) funDecl(kind string) ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.current(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.blockStmts()

	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LEFT_BRACE):
		return &ast.Block{Stmts: p.blockStmts()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}

func (p *Parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Expr: expr}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after while condition.")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body}
}

// forStmt desugars `for (init; cond; incr) body` into:
//
//	{ init; while (cond) { body; incr; } }
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: increment}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.While{Cond: cond, Body: body}

	if initializer != nil {
		body = &ast.Block{Stmts: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) blockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assignment{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EQUAL_EQUAL, token.BANG_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Value: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.current(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.TRUE):
		return &ast.Literal{Value: true}
	case p.match(token.FALSE):
		return &ast.Literal{Value: false}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	default:
		p.errorAt(p.current(), "Expect expression.")
		panic("unreachable")
	}
}

// --------------- Helper Functions --------------- //

func (p *Parser) match(kinds ...token.Type) bool {
	if slices.ContainsFunc(kinds, p.check) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind token.Type, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.current(), msg)
	panic("unreachable")
}

func (p *Parser) check(kind token.Type) bool {
	return !p.atEnd() && p.current().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.idx++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == token.EOF
}

func (p *Parser) current() token.Token {
	return p.tokens[p.idx]
}

func (p *Parser) previous() token.Token {
	if p.idx > 0 {
		return p.tokens[p.idx-1]
	}
	return p.current()
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	panic(&parseError{tok: tok, msg: msg})
}
