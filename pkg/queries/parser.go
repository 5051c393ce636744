/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: Textual query layer for the probs engine. Parses probability
queries like P(A,~B|C) or P(Weather=Rainy), independence queries IsIndep(A,B)
and IsCondIndep(A,B|C), and variable expressions with negation and explicit
state assignments, then evaluates them against the joint distribution store.
*/

package queries

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kleascm/probs/pkg/core"
)

var (
	probabilityPattern      = regexp.MustCompile(`^P\((.*)\)\s*$`)
	independencePattern     = regexp.MustCompile(`^IsIndep\(\s*([^,]+)\s*,\s*([^)]+)\s*\)\s*$`)
	condIndependencePattern = regexp.MustCompile(`^IsCondIndep\(\s*([^,]+)\s*,\s*([^|]+)\s*\|\s*([^)]+)\s*\)\s*$`)
)

// ResultKind discriminates what a query evaluated to
type ResultKind int

const (
	// KindProbability marks a numeric probability result
	KindProbability ResultKind = iota
	// KindBoolean marks an independence test result
	KindBoolean
)

// Result is the outcome of evaluating a query string
type Result struct {
	Kind  ResultKind
	Prob  float64
	Truth bool
}

// String renders the result the way the CLI prints it
func (r Result) String() string {
	if r.Kind == KindBoolean {
		if r.Truth {
			return "Yes"
		}
		return "No"
	}
	return fmt.Sprintf("%v", r.Prob)
}

// Evaluate parses and answers a single query string. Supported forms:
// P(...), IsIndep(...), IsCondIndep(...).
func Evaluate(s *core.System, query string) (Result, error) {
	query = strings.TrimSpace(query)
	switch {
	case strings.HasPrefix(query, "P("):
		prob, err := evaluateProbability(s, query)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindProbability, Prob: prob}, nil

	case strings.HasPrefix(query, "IsIndep(") || strings.HasPrefix(query, "IsCondIndep("):
		truth, err := evaluateIndependence(s, query)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindBoolean, Truth: truth}, nil

	default:
		return Result{}, fmt.Errorf("unknown query type: %s", query)
	}
}

// evaluateProbability answers P(target) and P(target|condition) queries
func evaluateProbability(s *core.System, query string) (float64, error) {
	m := probabilityPattern.FindStringSubmatch(query)
	if m == nil {
		return 0, fmt.Errorf("invalid probability query format: %s", query)
	}
	content := m[1]

	if bar := strings.Index(content, "|"); bar >= 0 {
		targetVars, targetValues, err := ParseVariableExpression(s, content[:bar])
		if err != nil {
			return 0, err
		}
		conditionVars, conditionValues, err := ParseVariableExpression(s, content[bar+1:])
		if err != nil {
			return 0, err
		}
		return s.ConditionalProbability(targetVars, targetValues, conditionVars, conditionValues)
	}

	vars, values, err := ParseVariableExpression(s, content)
	if err != nil {
		return 0, err
	}
	return s.MarginalProbability(vars, values)
}

// evaluateIndependence answers IsIndep(A,B) and IsCondIndep(A,B|C) queries
func evaluateIndependence(s *core.System, query string) (bool, error) {
	if m := condIndependencePattern.FindStringSubmatch(query); m != nil {
		x, err := ResolveVariable(s, stripNegation(m[1]))
		if err != nil {
			return false, err
		}
		y, err := ResolveVariable(s, stripNegation(m[2]))
		if err != nil {
			return false, err
		}
		given, err := ResolveVariable(s, stripNegation(m[3]))
		if err != nil {
			return false, err
		}
		return s.IsConditionallyIndependent(x, y, given)
	}

	if m := independencePattern.FindStringSubmatch(query); m != nil {
		x, err := ResolveVariable(s, stripNegation(m[1]))
		if err != nil {
			return false, err
		}
		y, err := ResolveVariable(s, stripNegation(m[2]))
		if err != nil {
			return false, err
		}
		return s.IsIndependent(x, y)
	}

	return false, fmt.Errorf("invalid independence query format: %s", query)
}

// ParseVariableExpression parses a comma-separated variable expression like
// 'A, ~B, Weather=Rainy' into parallel variable-index and state-index lists.
// A bare name means state 1, a negated name state 0, and an explicit
// '=<state>' assignment resolves against the variable's state catalog.
func ParseVariableExpression(s *core.System, expr string) ([]int, []int, error) {
	var variables, values []int

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		original := part

		var explicit *string
		if eq := strings.Index(part, "="); eq >= 0 {
			state := strings.TrimSpace(part[eq+1:])
			part = strings.TrimSpace(part[:eq])
			explicit = &state
		}

		negated := false
		if inner, ok := unwrapNegation(part); ok {
			negated = true
			part = inner
		}

		varIdx, err := ResolveVariable(s, part)
		if err != nil {
			return nil, nil, err
		}
		variable, err := s.Variable(varIdx)
		if err != nil {
			return nil, nil, err
		}

		value := 1
		if negated {
			value = 0
		}
		if explicit != nil {
			si := variable.StateIndex(*explicit)
			if si < 0 {
				return nil, nil, fmt.Errorf("%s is not a state of variable %s", *explicit, variable.Name)
			}
			if negated && si != 0 {
				return nil, nil, fmt.Errorf("conflicting negation and assignment in token %q", original)
			}
			value = si
		}
		if value >= variable.Cardinality() {
			return nil, nil, &core.OutOfRangeError{What: "state index", Index: value, Limit: variable.Cardinality()}
		}

		variables = append(variables, varIdx)
		values = append(values, value)
	}

	return variables, values, nil
}

// ResolveVariable maps a variable name to its index. Unknown names fall back
// to the single-letter convention: 'C' means index 2 when the system has no
// variable literally named C.
func ResolveVariable(s *core.System, name string) (int, error) {
	name = strings.TrimSpace(name)
	if idx, err := s.VariableIndex(name); err == nil {
		return idx, nil
	}
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		idx := int(name[0] - 'A')
		if idx >= s.NumVariables() {
			return 0, fmt.Errorf("variable %s is out of range", name)
		}
		return idx, nil
	}
	return 0, &core.UnknownVariableError{Name: name}
}

// unwrapNegation peels Not(A), ~A, and ~(A) forms
func unwrapNegation(token string) (string, bool) {
	if strings.HasPrefix(token, "Not(") && strings.HasSuffix(token, ")") {
		return strings.TrimSpace(token[4 : len(token)-1]), true
	}
	if strings.HasPrefix(token, "~") {
		inner := strings.TrimSpace(token[1:])
		if strings.HasPrefix(inner, "(") && strings.HasSuffix(inner, ")") {
			inner = strings.TrimSpace(inner[1 : len(inner)-1])
		}
		return inner, true
	}
	return token, false
}

// stripNegation removes any negation wrapper without caring about the value;
// independence tests are symmetric in negation.
func stripNegation(name string) string {
	name = strings.TrimSpace(name)
	if inner, ok := unwrapNegation(name); ok {
		return inner
	}
	return name
}
