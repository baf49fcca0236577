package parser

import (
	"fmt"
	"strconv"

	"github.com/monkey-lang/monkey/internal/ast"
	"github.com/monkey-lang/monkey/internal/diag"
	"github.com/monkey-lang/monkey/internal/lexer"
)

// parseExpression is the single shared Pratt loop: parse one prefix
// expression as the initial left operand, then fold infix operators while the
// next token binds more tightly than the current minimum. The strict "<"
// comparison is what makes equal-precedence operators left-associative.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		msg := fmt.Sprintf("no prefix parse function for %s found", p.curTok.Type)
		p.reportError(msg, diag.CodeParserNoPrefixRule, p.curTok.Span)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekTok.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return left
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewIdentifier(p.curTok)
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curTok.Literal, 0, 64)
	if err != nil {
		msg := fmt.Sprintf("could not parse %q as integer", p.curTok.Literal)
		p.reportError(msg, diag.CodeParserUnexpectedToken, p.curTok.Span)
		return nil
	}

	return ast.NewIntegerLiteral(p.curTok, value)
}

// parsePrefixExpression consumes the operator before recursing so that the
// operand binds at precedencePrefix, the highest level in the table.
func (p *Parser) parsePrefixExpression() ast.Expression {
	operatorTok := p.curTok

	p.nextToken()

	right := p.parseExpression(precedencePrefix)
	if right == nil {
		return nil
	}

	return ast.NewPrefixExpression(operatorTok, right)
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	operatorTok := p.curTok
	precedence := p.curPrecedence()

	p.nextToken()

	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return ast.NewInfixExpression(operatorTok, left, right)
}

// parseGroupedExpression parses "(expr)" without introducing an explicit
// paren node; grouping is only visible through where the sub-expression ends
// up in the tree.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	expr := p.parseExpression(precedenceLowest)
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	return expr
}
