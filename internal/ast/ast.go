package ast

import (
	"strings"

	"github.com/monkey-lang/monkey/internal/lexer"
)

// Node represents any AST node. TokenLiteral returns the text of the token
// the node originates from and exists for diagnostics; String reconstructs a
// canonical, fully parenthesized form of the node so that precedence is
// visible in rendered output.
type Node interface {
	TokenLiteral() string
	String() string
	Span() lexer.Span
}

// Expression represents an expression node.
type Expression interface {
	Node
	exprNode()
}

// Statement represents a statement node.
type Statement interface {
	Node
	stmtNode()
}

// Program is the root node of a parsed source unit.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement, or "" for an
// empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String concatenates the string forms of all statements in order.
func (p *Program) String() string {
	var out strings.Builder
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
	}
	return out.String()
}

// Span returns the span covering the whole program.
func (p *Program) Span() lexer.Span {
	if len(p.Statements) == 0 {
		return lexer.Span{}
	}
	span := p.Statements[0].Span()
	last := p.Statements[len(p.Statements)-1].Span()
	if last.End > span.End {
		span.End = last.End
	}
	return span
}

// LetStatement represents a let binding: let <name> = <value>;
type LetStatement struct {
	Token lexer.Token // the LET token
	Name  *Identifier
	Value Expression
}

// NewLetStatement constructs a let statement node.
func NewLetStatement(tok lexer.Token, name *Identifier, value Expression) *LetStatement {
	return &LetStatement{
		Token: tok,
		Name:  name,
		Value: value,
	}
}

func (s *LetStatement) TokenLiteral() string { return s.Token.Literal }

func (s *LetStatement) String() string {
	var out strings.Builder
	out.WriteString(s.TokenLiteral())
	out.WriteString(" ")
	out.WriteString(s.Name.String())
	out.WriteString(" = ")
	if s.Value != nil {
		out.WriteString(s.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// Span returns the statement span.
func (s *LetStatement) Span() lexer.Span { return s.Token.Span }

// stmtNode marks LetStatement as a statement.
func (*LetStatement) stmtNode() {}

// ReturnStatement represents a return statement: return <value>;
type ReturnStatement struct {
	Token lexer.Token // the RETURN token
	Value Expression
}

// NewReturnStatement constructs a return statement node.
func NewReturnStatement(tok lexer.Token, value Expression) *ReturnStatement {
	return &ReturnStatement{
		Token: tok,
		Value: value,
	}
}

func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }

func (s *ReturnStatement) String() string {
	var out strings.Builder
	out.WriteString(s.TokenLiteral())
	out.WriteString(" ")
	if s.Value != nil {
		out.WriteString(s.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// Span returns the statement span.
func (s *ReturnStatement) Span() lexer.Span { return s.Token.Span }

// stmtNode marks ReturnStatement as a statement.
func (*ReturnStatement) stmtNode() {}

// ExpressionStatement wraps a bare expression used in statement position.
type ExpressionStatement struct {
	Token      lexer.Token // first token of the expression
	Expression Expression
}

// NewExpressionStatement constructs an expression statement node.
func NewExpressionStatement(tok lexer.Token, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{
		Token:      tok,
		Expression: expr,
	}
}

func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }

func (s *ExpressionStatement) String() string {
	if s.Expression != nil {
		return s.Expression.String()
	}
	return ""
}

// Span returns the statement span.
func (s *ExpressionStatement) Span() lexer.Span { return s.Token.Span }

// stmtNode marks ExpressionStatement as a statement.
func (*ExpressionStatement) stmtNode() {}

// Identifier represents a name reference.
type Identifier struct {
	Token lexer.Token // the IDENT token
	Value string
}

// NewIdentifier constructs an identifier node.
func NewIdentifier(tok lexer.Token) *Identifier {
	return &Identifier{
		Token: tok,
		Value: tok.Literal,
	}
}

func (i *Identifier) TokenLiteral() string { return i.Token.Literal }

func (i *Identifier) String() string { return i.Value }

// Span returns the identifier span.
func (i *Identifier) Span() lexer.Span { return i.Token.Span }

// exprNode marks Identifier as an expression.
func (*Identifier) exprNode() {}

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token lexer.Token // the INT token
	Value int64
}

// NewIntegerLiteral constructs an integer literal node.
func NewIntegerLiteral(tok lexer.Token, value int64) *IntegerLiteral {
	return &IntegerLiteral{
		Token: tok,
		Value: value,
	}
}

func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }

func (l *IntegerLiteral) String() string { return l.Token.Literal }

// Span returns the literal span.
func (l *IntegerLiteral) Span() lexer.Span { return l.Token.Span }

// exprNode marks IntegerLiteral as an expression.
func (*IntegerLiteral) exprNode() {}

// PrefixExpression represents a unary prefix expression such as !x or -5.
type PrefixExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	Right    Expression
}

// NewPrefixExpression constructs a prefix expression node.
func NewPrefixExpression(tok lexer.Token, right Expression) *PrefixExpression {
	return &PrefixExpression{
		Token:    tok,
		Operator: tok.Literal,
		Right:    right,
	}
}

func (e *PrefixExpression) TokenLiteral() string { return e.Token.Literal }

// String renders the operator and operand with no space between them.
func (e *PrefixExpression) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(e.Operator)
	out.WriteString(e.Right.String())
	out.WriteString(")")
	return out.String()
}

// Span returns the expression span.
func (e *PrefixExpression) Span() lexer.Span { return e.Token.Span }

// exprNode marks PrefixExpression as an expression.
func (*PrefixExpression) exprNode() {}

// InfixExpression represents a binary infix expression such as x + y.
type InfixExpression struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

// NewInfixExpression constructs an infix expression node.
func NewInfixExpression(tok lexer.Token, left, right Expression) *InfixExpression {
	return &InfixExpression{
		Token:    tok,
		Left:     left,
		Operator: tok.Literal,
		Right:    right,
	}
}

func (e *InfixExpression) TokenLiteral() string { return e.Token.Literal }

func (e *InfixExpression) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(e.Left.String())
	out.WriteString(" ")
	out.WriteString(e.Operator)
	out.WriteString(" ")
	out.WriteString(e.Right.String())
	out.WriteString(")")
	return out.String()
}

// Span returns the expression span.
func (e *InfixExpression) Span() lexer.Span { return e.Token.Span }

// exprNode marks InfixExpression as an expression.
func (*InfixExpression) exprNode() {}
