package query

import (
	"fmt"
	"strconv"
	"strings"
)

type Node interface {
	String() string
}

// OrNode is true when at least one alternative is true. The grammar has no
// precedence beyond OR-of-ANDs, so this is always the root of a mixed
// expression: a OR b AND c parses as OR(a, AND(b, c)).
type OrNode struct {
	Alternatives []Node
}

func (n *OrNode) String() string {
	parts := make([]string, len(n.Alternatives))
	for i, alt := range n.Alternatives {
		parts[i] = alt.String()
	}
	return fmt.Sprintf("OR(%s)", strings.Join(parts, ", "))
}

// AndNode is true when every conjunct is true.
type AndNode struct {
	Conjuncts []Node
}

func (n *AndNode) String() string {
	parts := make([]string, len(n.Conjuncts))
	for i, c := range n.Conjuncts {
		parts[i] = c.String()
	}
	return fmt.Sprintf("AND(%s)", strings.Join(parts, ", "))
}

// LiteralNode is a bare true or false in the expression.
type LiteralNode struct {
	Value bool
}

func (n *LiteralNode) String() string {
	return strconv.FormatBool(n.Value)
}

// ConditionNode is a single field comparison. Value holds the right-hand
// scalar for comparison operators; Values holds the list for IN.
type ConditionNode struct {
	Field    string
	Operator string
	Value    interface{}
	Values   []interface{}
}

func (n *ConditionNode) String() string {
	if n.Operator == "IN" {
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = formatValue(v)
		}
		return fmt.Sprintf("IN(%s, [%s])", n.Field, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s(%s, %s)", n.Operator, n.Field, formatValue(n.Value))
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("'%s'", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

type Parser struct {
	lexer        *Lexer
	currentToken Token
	peekToken    Token
}

func NewParser(lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.currentToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// Parse consumes the whole input and returns the expression tree. Trailing
// tokens after a complete expression are an error.
func (p *Parser) Parse() (Node, error) {
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.currentToken.Type != TokenEOF {
		return nil, fmt.Errorf("invalid condition: unexpected %q", p.currentToken.Literal)
	}
	return node, nil
}

func (p *Parser) parseExpression() (Node, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	alternatives := []Node{first}
	for p.currentToken.Type == TokenOr {
		p.nextToken()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, term)
	}

	if len(alternatives) == 1 {
		return first, nil
	}
	return &OrNode{Alternatives: alternatives}, nil
}

func (p *Parser) parseTerm() (Node, error) {
	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	conjuncts := []Node{first}
	for p.currentToken.Type == TokenAnd {
		p.nextToken()
		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		conjuncts = append(conjuncts, factor)
	}

	if len(conjuncts) == 1 {
		return first, nil
	}
	return &AndNode{Conjuncts: conjuncts}, nil
}

func (p *Parser) parseFactor() (Node, error) {
	switch p.currentToken.Type {
	case TokenTrue:
		p.nextToken()
		return &LiteralNode{Value: true}, nil
	case TokenFalse:
		p.nextToken()
		return &LiteralNode{Value: false}, nil
	case TokenLeftParen:
		return p.parseGroupedExpression()
	case TokenIdentifier:
		return p.parseCondition()
	case TokenEOF:
		return nil, fmt.Errorf("invalid condition: unexpected end of query")
	default:
		return nil, fmt.Errorf("invalid condition: unexpected %q", p.currentToken.Literal)
	}
}

func (p *Parser) parseGroupedExpression() (Node, error) {
	p.nextToken() // consume '('
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.currentToken.Type != TokenRightParen {
		return nil, fmt.Errorf("invalid condition: expected ')', got %q", p.currentToken.Literal)
	}
	p.nextToken() // consume ')'

	return expr, nil
}

func (p *Parser) parseCondition() (Node, error) {
	field := p.currentToken.Literal
	p.nextToken()

	if p.currentToken.Type == TokenIn {
		return p.parseInCondition(field)
	}

	var operator string
	switch p.currentToken.Type {
	case TokenEqual:
		operator = "="
	case TokenNotEqual:
		operator = "!="
	case TokenGreater:
		operator = ">"
	case TokenLess:
		operator = "<"
	default:
		return nil, fmt.Errorf("invalid condition: %q", field+" "+p.currentToken.Literal)
	}
	p.nextToken()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &ConditionNode{Field: field, Operator: operator, Value: value}, nil
}

func (p *Parser) parseInCondition(field string) (Node, error) {
	p.nextToken() // consume 'IN'

	if p.currentToken.Type != TokenLeftBracket {
		return nil, fmt.Errorf("invalid condition: expected '[' after IN, got %q", p.currentToken.Literal)
	}
	p.nextToken() // consume '['

	values := []interface{}{}
	if p.currentToken.Type != TokenRightBracket {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		for p.currentToken.Type == TokenComma {
			p.nextToken() // consume ','
			value, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
	}

	if p.currentToken.Type != TokenRightBracket {
		return nil, fmt.Errorf("invalid condition: expected ']', got %q", p.currentToken.Literal)
	}
	p.nextToken() // consume ']'

	return &ConditionNode{Field: field, Operator: "IN", Values: values}, nil
}

// parseValue reads one right-hand value. Consecutive bare words are joined
// with single spaces, so name = John Doe compares against "John Doe".
func (p *Parser) parseValue() (interface{}, error) {
	switch p.currentToken.Type {
	case TokenString:
		value := p.currentToken.Literal
		p.nextToken()
		return value, nil
	case TokenNumber:
		value, err := strconv.ParseFloat(p.currentToken.Literal, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid condition: bad number %q", p.currentToken.Literal)
		}
		p.nextToken()
		return value, nil
	case TokenTrue:
		p.nextToken()
		return true, nil
	case TokenFalse:
		p.nextToken()
		return false, nil
	case TokenNull:
		p.nextToken()
		return nil, nil
	case TokenIdentifier:
		words := []string{p.currentToken.Literal}
		p.nextToken()
		for p.currentToken.Type == TokenIdentifier {
			words = append(words, p.currentToken.Literal)
			p.nextToken()
		}
		return strings.Join(words, " "), nil
	case TokenEOF:
		return nil, fmt.Errorf("invalid condition: unexpected end of query")
	default:
		return nil, fmt.Errorf("invalid condition: unexpected %q", p.currentToken.Literal)
	}
}
