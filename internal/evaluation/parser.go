package evaluation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseCondition compiles an authored condition string, e.g.
//
//	IF category == 'Cardiovascular' AND symptom CONTAINS 'chest'
//	IF COUNT(category == 'Neurological') >= 2
//	IF COUNT(DISTINCT category) >= 3
//	IF patient.age < 12
//
// into a Predicate tree. Parsing happens once at rule-load time; evaluation
// never touches the string form again.
func ParseCondition(condition string) (Predicate, error) {
	tokens, err := tokenize(condition)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	// The leading IF is display sugar, not part of the expression.
	if p.peekKeyword("IF") {
		p.next()
	}

	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("unexpected token %q after end of condition", p.peek().text)
	}
	return pred, nil
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokNumber
	tokOperator
	tokLParen
	tokRParen
	tokDot
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '\'':
			j := i + 1
			for j < len(runes) && runes[j] != '\'' {
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("unterminated string literal starting at position %d", i)
			}
			tokens = append(tokens, token{kind: tokString, text: string(runes[i+1 : j])})
			i = j + 1

		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[i:j])})
			i = j

		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, token{kind: tokWord, text: string(runes[i:j])})
			i = j

		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "("})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")"})
			i++

		case r == '.':
			tokens = append(tokens, token{kind: tokDot, text: "."})
			i++

		case r == '=' || r == '!' || r == '<' || r == '>':
			j := i + 1
			if j < len(runes) && runes[j] == '=' {
				j++
			}
			tokens = append(tokens, token{kind: tokOperator, text: string(runes[i:j])})
			i = j

		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", r, i)
		}
	}

	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() token {
	if p.done() {
		return token{}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) peekKeyword(kw string) bool {
	t := p.peek()
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if p.done() || t.kind != kind {
		return token{}, fmt.Errorf("expected %s, got %q", what, t.text)
	}
	return p.next(), nil
}

func (p *parser) parseOr() (Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	children := []Predicate{left}
	for p.peekKeyword("OR") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}

	if len(children) == 1 {
		return left, nil
	}
	return orPred{children: children}, nil
}

func (p *parser) parseAnd() (Predicate, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	children := []Predicate{left}
	for p.peekKeyword("AND") {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}

	if len(children) == 1 {
		return left, nil
	}
	return andPred{children: children}, nil
}

func (p *parser) parseUnary() (Predicate, error) {
	if p.peekKeyword("NOT") {
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notPred{child: child}, nil
	}

	if p.peek().kind == tokLParen {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "closing parenthesis"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Predicate, error) {
	t := p.peek()
	if t.kind != tokWord {
		return nil, fmt.Errorf("expected a field or COUNT(...), got %q", t.text)
	}

	if strings.EqualFold(t.text, "COUNT") {
		return p.parseCount()
	}
	if strings.EqualFold(t.text, "patient") {
		return p.parseAttribute()
	}
	return p.parseSymptomComparison()
}

func (p *parser) parseCount() (Predicate, error) {
	p.next() // COUNT
	if _, err := p.expect(tokLParen, "'(' after COUNT"); err != nil {
		return nil, err
	}

	if p.peekKeyword("DISTINCT") {
		p.next()
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')' after COUNT(DISTINCT ...)"); err != nil {
			return nil, err
		}
		op, n, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return countDistinctPred{field: field, op: op, n: n}, nil
	}

	field, err := p.parseField()
	if err != nil {
		return nil, err
	}
	eq, err := p.expect(tokOperator, "'==' in COUNT filter")
	if err != nil {
		return nil, err
	}
	if eq.text != "==" {
		return nil, fmt.Errorf("COUNT filter supports only '==', got %q", eq.text)
	}
	value, err := p.expect(tokString, "quoted filter value")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "')' after COUNT filter"); err != nil {
		return nil, err
	}
	op, n, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return countPred{field: field, filter: value.text, op: op, n: n}, nil
}

func (p *parser) parseAttribute() (Predicate, error) {
	p.next() // patient
	if _, err := p.expect(tokDot, "'.' after patient"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokWord, "attribute name")
	if err != nil {
		return nil, err
	}
	op, n, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return attrPred{name: strings.ToLower(name.text), op: op, n: n}, nil
}

func (p *parser) parseSymptomComparison() (Predicate, error) {
	field, err := p.parseField()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	switch {
	case t.kind == tokWord && strings.EqualFold(t.text, "CONTAINS"):
		p.next()
		value, err := p.expect(tokString, "quoted substring after CONTAINS")
		if err != nil {
			return nil, err
		}
		return containsPred{field: field, substr: value.text}, nil

	case t.kind == tokOperator && t.text == "==":
		p.next()
		value, err := p.expect(tokString, "quoted value after '=='")
		if err != nil {
			return nil, err
		}
		return equalsPred{field: field, value: value.text}, nil

	default:
		return nil, fmt.Errorf("expected CONTAINS or '==' after %q, got %q", field, t.text)
	}
}

func (p *parser) parseField() (string, error) {
	t, err := p.expect(tokWord, "field name")
	if err != nil {
		return "", err
	}
	field := strings.ToLower(t.text)
	if field != fieldSymptom && field != fieldCategory {
		return "", fmt.Errorf("unknown field %q: conditions may reference 'symptom' or 'category'", t.text)
	}
	return field, nil
}

func (p *parser) parseComparison() (cmpOp, float64, error) {
	opTok, err := p.expect(tokOperator, "comparison operator")
	if err != nil {
		return "", 0, err
	}
	op := cmpOp(opTok.text)
	switch op {
	case opEq, opNe, opGt, opGe, opLt, opLe:
	default:
		return "", 0, fmt.Errorf("unknown comparison operator %q", opTok.text)
	}

	numTok, err := p.expect(tokNumber, "numeric threshold")
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.ParseFloat(numTok.text, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid number %q: %w", numTok.text, err)
	}
	return op, n, nil
}
