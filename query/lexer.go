package query

import (
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenIdentifier TokenType = iota
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
	TokenEqual        // '='
	TokenNotEqual     // '!='
	TokenGreater      // '>'
	TokenLess         // '<'
	TokenAnd          // 'AND'
	TokenOr           // 'OR'
	TokenIn           // 'IN'
	TokenLeftParen    // '('
	TokenRightParen   // ')'
	TokenLeftBracket  // '['
	TokenRightBracket // ']'
	TokenComma        // ','
	TokenIllegal
	TokenEOF
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	switch l.ch {
	case '(':
		tok = Token{Type: TokenLeftParen, Literal: string(l.ch), Line: l.line, Column: l.column}
	case ')':
		tok = Token{Type: TokenRightParen, Literal: string(l.ch), Line: l.line, Column: l.column}
	case '[':
		tok = Token{Type: TokenLeftBracket, Literal: string(l.ch), Line: l.line, Column: l.column}
	case ']':
		tok = Token{Type: TokenRightBracket, Literal: string(l.ch), Line: l.line, Column: l.column}
	case ',':
		tok = Token{Type: TokenComma, Literal: string(l.ch), Line: l.line, Column: l.column}
	case '=':
		tok = Token{Type: TokenEqual, Literal: string(l.ch), Line: l.line, Column: l.column}
	case '!':
		if l.peekChar() == '=' {
			ch := l.ch
			l.readChar()
			tok = Token{Type: TokenNotEqual, Literal: string(ch) + string(l.ch), Line: l.line, Column: l.column}
		} else {
			tok = Token{Type: TokenIllegal, Literal: string(l.ch), Line: l.line, Column: l.column}
		}
	case '>':
		// '>=' is not part of the grammar; a trailing '=' lexes on its own
		// and fails in the parser.
		tok = Token{Type: TokenGreater, Literal: string(l.ch), Line: l.line, Column: l.column}
	case '<':
		tok = Token{Type: TokenLess, Literal: string(l.ch), Line: l.line, Column: l.column}
	case '"':
		tok.Literal = l.readString()
		tok.Type = TokenString
		tok.Line = l.line
		tok.Column = l.column
		l.readChar()
		return tok
	case 0:
		return Token{Type: TokenEOF, Literal: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = lookupIdentifier(tok.Literal)
			return tok
		} else if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())) {
			tok.Literal = l.readNumber()
			tok.Type = TokenNumber
			return tok
		}
		tok = Token{Type: TokenIllegal, Literal: string(l.ch), Line: l.line, Column: l.column}
	}

	l.readChar()
	return tok
}

// AND, OR, IN and NULL are keywords only in exact case; true/false are
// recognized in any case.
func lookupIdentifier(ident string) TokenType {
	switch ident {
	case "AND":
		return TokenAnd
	case "OR":
		return TokenOr
	case "IN":
		return TokenIn
	case "NULL":
		return TokenNull
	}
	if strings.EqualFold(ident, "true") {
		return TokenTrue
	}
	if strings.EqualFold(ident, "false") {
		return TokenFalse
	}
	return TokenIdentifier
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// readString returns the text between double quotes. An unterminated string
// ends at the end of input.
func (l *Lexer) readString() string {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
	}
	return l.input[position:l.position]
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
