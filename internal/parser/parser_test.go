package parser_test

import (
	"fmt"
	"testing"

	"github.com/monkey-lang/monkey/internal/ast"
	"github.com/monkey-lang/monkey/internal/lexer"
	"github.com/monkey-lang/monkey/internal/parser"
)

func parseProgram(t *testing.T, src string) (*ast.Program, []parser.ParseError) {
	t.Helper()

	p := parser.New(lexer.New(src))
	program := p.ParseProgram()

	return program, p.Errors()
}

func assertNoErrors(t *testing.T, errs []parser.ParseError) {
	t.Helper()

	if len(errs) == 0 {
		return
	}

	for _, err := range errs {
		t.Errorf("unexpected parse error: %s", err.Message)
	}
	t.Fatalf("parser reported %d error(s)", len(errs))
}

func testIntegerLiteral(t *testing.T, expr ast.Expression, value int64) bool {
	t.Helper()

	lit, ok := expr.(*ast.IntegerLiteral)
	if !ok {
		t.Errorf("expr not *ast.IntegerLiteral. got=%T", expr)
		return false
	}
	if lit.Value != value {
		t.Errorf("lit.Value not %d. got=%d", value, lit.Value)
		return false
	}
	if lit.TokenLiteral() != fmt.Sprintf("%d", value) {
		t.Errorf("lit.TokenLiteral not %d. got=%s", value, lit.TokenLiteral())
		return false
	}
	return true
}

func testIdentifier(t *testing.T, expr ast.Expression, value string) bool {
	t.Helper()

	ident, ok := expr.(*ast.Identifier)
	if !ok {
		t.Errorf("expr not *ast.Identifier. got=%T", expr)
		return false
	}
	if ident.Value != value {
		t.Errorf("ident.Value not %s. got=%s", value, ident.Value)
		return false
	}
	return true
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input              string
		expectedIdentifier string
		expectedValue      int64
	}{
		{"let x = 5;", "x", 5},
		{"let y = 10;", "y", 10},
		{"let foobar = 838383;", "foobar", 838383},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		if len(program.Statements) != 1 {
			t.Fatalf("program.Statements does not contain 1 statement. got=%d",
				len(program.Statements))
		}

		stmt, ok := program.Statements[0].(*ast.LetStatement)
		if !ok {
			t.Fatalf("statement not *ast.LetStatement. got=%T", program.Statements[0])
		}
		if stmt.TokenLiteral() != "let" {
			t.Errorf("stmt.TokenLiteral not 'let'. got=%q", stmt.TokenLiteral())
		}
		if stmt.Name.Value != tt.expectedIdentifier {
			t.Errorf("stmt.Name.Value not %q. got=%q", tt.expectedIdentifier, stmt.Name.Value)
		}
		testIntegerLiteral(t, stmt.Value, tt.expectedValue)
	}
}

func TestReturnStatements(t *testing.T) {
	input := `
return 5;
return 10;
return 993322;
`

	program, errs := parseProgram(t, input)
	assertNoErrors(t, errs)

	if len(program.Statements) != 3 {
		t.Fatalf("program.Statements does not contain 3 statements. got=%d",
			len(program.Statements))
	}

	for _, stmt := range program.Statements {
		returnStmt, ok := stmt.(*ast.ReturnStatement)
		if !ok {
			t.Errorf("statement not *ast.ReturnStatement. got=%T", stmt)
			continue
		}
		if returnStmt.TokenLiteral() != "return" {
			t.Errorf("returnStmt.TokenLiteral not 'return'. got=%q",
				returnStmt.TokenLiteral())
		}
	}
}

func TestIdentifierExpression(t *testing.T) {
	program, errs := parseProgram(t, "foobar;")
	assertNoErrors(t, errs)

	if len(program.Statements) != 1 {
		t.Fatalf("program has not enough statements. got=%d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement not *ast.ExpressionStatement. got=%T", program.Statements[0])
	}

	testIdentifier(t, stmt.Expression, "foobar")
}

func TestIntegerLiteralExpression(t *testing.T) {
	program, errs := parseProgram(t, "5;")
	assertNoErrors(t, errs)

	if len(program.Statements) != 1 {
		t.Fatalf("program has not enough statements. got=%d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement not *ast.ExpressionStatement. got=%T", program.Statements[0])
	}

	testIntegerLiteral(t, stmt.Expression, 5)
}

func TestParsingPrefixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		operator string
		value    int64
	}{
		{"!5;", "!", 5},
		{"-15;", "-", 15},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		if len(program.Statements) != 1 {
			t.Fatalf("program.Statements does not contain 1 statement. got=%d",
				len(program.Statements))
		}
		stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("statement not *ast.ExpressionStatement. got=%T", program.Statements[0])
		}
		expr, ok := stmt.Expression.(*ast.PrefixExpression)
		if !ok {
			t.Fatalf("stmt.Expression not *ast.PrefixExpression. got=%T", stmt.Expression)
		}
		if expr.Operator != tt.operator {
			t.Fatalf("expr.Operator not %q. got=%q", tt.operator, expr.Operator)
		}
		testIntegerLiteral(t, expr.Right, tt.value)
	}
}

func TestParsingInfixExpressions(t *testing.T) {
	tests := []struct {
		input      string
		leftValue  int64
		operator   string
		rightValue int64
	}{
		{"5 + 5;", 5, "+", 5},
		{"5 - 5;", 5, "-", 5},
		{"5 * 5;", 5, "*", 5},
		{"5 / 5;", 5, "/", 5},
		{"5 > 5;", 5, ">", 5},
		{"5 < 5;", 5, "<", 5},
		{"5 == 5;", 5, "==", 5},
		{"5 != 5;", 5, "!=", 5},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		if len(program.Statements) != 1 {
			t.Fatalf("program.Statements does not contain 1 statement. got=%d",
				len(program.Statements))
		}
		stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("statement not *ast.ExpressionStatement. got=%T", program.Statements[0])
		}
		expr, ok := stmt.Expression.(*ast.InfixExpression)
		if !ok {
			t.Fatalf("stmt.Expression not *ast.InfixExpression. got=%T", stmt.Expression)
		}
		if !testIntegerLiteral(t, expr.Left, tt.leftValue) {
			return
		}
		if expr.Operator != tt.operator {
			t.Fatalf("expr.Operator not %q. got=%q", tt.operator, expr.Operator)
		}
		testIntegerLiteral(t, expr.Right, tt.rightValue)
	}
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"-5", "(-5)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
	}

	for _, tt := range tests {
		program, errs := parseProgram(t, tt.input)
		assertNoErrors(t, errs)

		if got := program.String(); got != tt.expected {
			t.Errorf("input %q: expected=%q, got=%q", tt.input, tt.expected, got)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	const input = "let myVar = anotherVar;"

	program, errs := parseProgram(t, input)
	assertNoErrors(t, errs)

	if got := program.String(); got != input {
		t.Errorf("program.String() = %q, want %q", got, input)
	}
}

func TestEmptyInput(t *testing.T) {
	program, errs := parseProgram(t, "")
	assertNoErrors(t, errs)

	if program == nil {
		t.Fatalf("ParseProgram returned nil")
	}
	if len(program.Statements) != 0 {
		t.Fatalf("expected 0 statements, got %d", len(program.Statements))
	}
	if got := program.String(); got != "" {
		t.Errorf("program.String() = %q, want %q", got, "")
	}
}

func TestLetStatementMissingAssign(t *testing.T) {
	program, errs := parseProgram(t, "let x 5;")

	if program == nil {
		t.Fatalf("ParseProgram returned nil")
	}
	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none")
	}

	want := "expected next token to be =, got INT instead"
	if errs[0].Message != want {
		t.Errorf("error message wrong. expected=%q, got=%q", want, errs[0].Message)
	}
}

func TestNoPrefixParseFnError(t *testing.T) {
	_, errs := parseProgram(t, "5 + * 3;")

	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none")
	}

	want := "no prefix parse function for * found"
	if errs[0].Message != want {
		t.Errorf("error message wrong. expected=%q, got=%q", want, errs[0].Message)
	}
}

func TestParserRecoversAfterBadStatement(t *testing.T) {
	input := "let x 5; let y = 7;"

	program, errs := parseProgram(t, input)

	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none")
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d", len(program.Statements))
	}

	stmt, ok := program.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("statement not *ast.LetStatement. got=%T", program.Statements[0])
	}
	if stmt.Name.Value != "y" {
		t.Errorf("recovered statement binds %q, want %q", stmt.Name.Value, "y")
	}
}

func TestErrorSpans(t *testing.T) {
	_, errs := parseProgram(t, "let x 5;")

	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none")
	}

	span := errs[0].Span
	if span.Line != 1 {
		t.Errorf("error span line = %d, want 1", span.Line)
	}
	if span.Column != 7 {
		t.Errorf("error span column = %d, want 7", span.Column)
	}
}

func TestFreshParserAfterErrors(t *testing.T) {
	_, errs := parseProgram(t, "let x 5;")
	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none")
	}

	program, errs := parseProgram(t, "let x = 5;")
	assertNoErrors(t, errs)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
}
