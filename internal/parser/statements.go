package parser

import (
	"github.com/monkey-lang/monkey/internal/ast"
	"github.com/monkey-lang/monkey/internal/lexer"
)

// parseStatement dispatches on the leading token. Statement parsers leave
// curTok on the final token of the statement; ParseProgram advances past it.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	letTok := p.curTok

	if !p.expect(lexer.IDENT) {
		return nil
	}

	name := ast.NewIdentifier(p.curTok)

	if !p.expect(lexer.ASSIGN) {
		return nil
	}

	p.nextToken()

	value := p.parseExpression(precedenceLowest)
	if value == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	return ast.NewLetStatement(letTok, name, value)
}

func (p *Parser) parseReturnStatement() ast.Statement {
	returnTok := p.curTok

	p.nextToken()

	value := p.parseExpression(precedenceLowest)
	if value == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	return ast.NewReturnStatement(returnTok, value)
}

// parseExpressionStatement parses a bare expression in statement position.
// The trailing semicolon is optional so that REPL input like "1 + 2" works.
func (p *Parser) parseExpressionStatement() ast.Statement {
	firstTok := p.curTok

	expr := p.parseExpression(precedenceLowest)
	if expr == nil {
		return nil
	}

	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}

	return ast.NewExpressionStatement(firstTok, expr)
}
