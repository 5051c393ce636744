/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: arithmetic.go
Description: Safe arithmetic evaluator for expressions mixing numbers and
P(...) probability terms, such as 'P(A|B) * 2 - P(C)'. Supports +, -, *, /,
unary sign, and parentheses; nothing else evaluates.
*/

package queries

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/kleascm/probs/pkg/core"
)

// probabilityTermPattern matches embedded P(...) calls, tolerating one level
// of nested parentheses (enough for Not(...) inside).
var probabilityTermPattern = regexp.MustCompile(`P\((?:[^()]+|\([^()]*\))*\)`)

// EvaluateArithmetic substitutes every P(...) term in expr with its computed
// probability, then evaluates the remaining pure arithmetic expression.
func EvaluateArithmetic(s *core.System, expr string) (float64, error) {
	var substErr error
	substituted := probabilityTermPattern.ReplaceAllStringFunc(expr, func(term string) string {
		value, err := evaluateProbability(s, term)
		if err != nil && substErr == nil {
			substErr = err
		}
		return strconv.FormatFloat(value, 'g', -1, 64)
	})
	if substErr != nil {
		return 0, substErr
	}

	p := &exprParser{input: substituted}
	value, err := p.parseExpression()
	if err != nil {
		return 0, fmt.Errorf("error evaluating expression: %w", err)
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("error evaluating expression: unexpected %q", p.input[p.pos:])
	}
	return value, nil
}

// exprParser is a minimal recursive-descent parser over + - * / ( ) and
// float literals. Whitelisting the grammar here is what makes user-typed
// expressions safe to evaluate.
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) parseExpression() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		default:
			return value, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	value, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpaces()
	switch p.peek() {
	case '+':
		p.pos++
		return p.parseUnary()
	case '-':
		p.pos++
		value, err := p.parseUnary()
		return -value, err
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.peek() == '(' {
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	}

	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if unicode.IsDigit(rune(c)) || c == '.' {
			p.pos++
			continue
		}
		// Exponent notation: the sign after e/E belongs to the literal
		if (c == 'e' || c == 'E') && p.pos > start {
			p.pos++
			if p.pos < len(p.input) && (p.input[p.pos] == '+' || p.input[p.pos] == '-') {
				p.pos++
			}
			continue
		}
		break
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected a number at %q", p.input[start:])
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return value, nil
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
