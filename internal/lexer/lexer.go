package lexer

import (
	"strconv"
	"unicode"

	"github.com/monkey-lang/monkey/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
	ErrUnterminatedBlockComment
)

// LexerError records a lexical problem without halting the scan. The token
// stream still carries an ILLEGAL token at the same position, so the parser
// decides what to do with it.
type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer scans an input string into tokens, one per NextToken call. The input
// is never mutated; token literals are substrings of it.
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	Errors []LexerError
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read() // move to first character
	return l
}

// SetFilename attributes all subsequent token spans to the given filename.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// read advances the lexer to the next character. Line/column always reflect
// the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1

	if l.pos >= len(l.input) {
		if prevPos >= 0 && prevPos < len(l.input) && l.input[prevPos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) spanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, literal string) Token {
	return Token{
		Type:    tokType,
		Literal: literal,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// single consumes the current rune and returns a one-rune token of the given type.
func (l *Lexer) single(tokType TokenType) Token {
	startLine, startColumn, startPos := l.spanStart()
	literal := string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal)
}

// double consumes the current and next rune and returns a two-rune token.
func (l *Lexer) double(tokType TokenType) Token {
	startLine, startColumn, startPos := l.spanStart()
	literal := string(l.ch) + string(l.peek())
	l.read()
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// skipLineComment consumes up to, but not including, the next line terminator.
// The leading "//" has already been consumed by the caller.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.read()
	}
}

// skipBlockComment consumes a block comment, honoring nesting. The leading
// "/*" has already been consumed by the caller.
func (l *Lexer) skipBlockComment(startLine, startColumn, startPos int) {
	depth := 1
	for depth > 0 {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return
		}
		if l.ch == '/' && l.peek() == '*' {
			l.read()
			l.read()
			depth++
		} else if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			depth--
		} else {
			l.read()
		}
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads an integer literal
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		switch l.ch {
		case 0:
			startLine, startColumn, startPos := l.spanStart()
			if startColumn == 0 {
				startColumn = 1
			}
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "")

		case '=':
			if l.peek() == '=' {
				return l.double(EQ)
			}
			return l.single(ASSIGN)

		case '!':
			if l.peek() == '=' {
				return l.double(NOT_EQ)
			}
			return l.single(BANG)

		case '+':
			return l.single(PLUS)

		case '-':
			return l.single(MINUS)

		case '*':
			return l.single(ASTERISK)

		case '/':
			switch l.peek() {
			case '/':
				l.read() // consume first '/'
				l.read() // consume second '/'
				l.skipLineComment()
				continue
			case '*':
				startLine, startColumn, startPos := l.spanStart()
				l.read() // consume '/'
				l.read() // consume '*'
				l.skipBlockComment(startLine, startColumn, startPos)
				continue
			default:
				return l.single(SLASH)
			}

		case '<':
			return l.single(LT)

		case '>':
			return l.single(GT)

		case ';':
			return l.single(SEMICOLON)

		case ',':
			return l.single(COMMA)

		case '(':
			return l.single(LPAREN)

		case ')':
			return l.single(RPAREN)

		default:
			if isLetter(l.ch) {
				startLine, startColumn, startPos := l.spanStart()
				literal := l.readIdentifier()
				return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, l.pos, literal)
			} else if isDigit(l.ch) {
				startLine, startColumn, startPos := l.spanStart()
				literal := l.readNumber()
				return l.makeToken(INT, startLine, startColumn, startPos, l.pos, literal)
			}

			tok := l.single(ILLEGAL)
			l.addError(
				ErrIllegalRune,
				"illegal character "+strconv.Quote(tok.Literal),
				tok.Span,
			)
			return tok
		}
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
