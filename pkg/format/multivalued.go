/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: multivalued.go
Description: Multi-valued Bayesian network format (.net) reader. 'variable
Name {State,...}' declarations (or bare 'variable Name' for implicit binary),
then 'Child <- (parents)' blocks with '(<state> | <parent states>): p' rows,
or '<state>: p' rows for root variables.
*/

package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/network"
)

// isMultiValued reports whether the cleaned lines use the multi-valued
// variant, which opens with 'variable' declarations instead of a
// 'variables:' header.
func isMultiValued(lines []line) bool {
	return len(lines) > 0 && strings.HasPrefix(lines[0].text, "variable ")
}

// readMultiValuedNetwork parses the state-aware network variant into a spec
func readMultiValuedNetwork(lines []line) (network.Spec, error) {
	var spec network.Spec

	// First pass: consecutive 'variable' declarations at the top
	idx := 0
	order := make([]string, 0)
	catalogs := make(map[string][]string)
	for idx < len(lines) && strings.HasPrefix(lines[idx].text, "variable ") {
		ln := lines[idx]
		name, states, err := parseDeclaration(ln)
		if err != nil {
			return spec, err
		}
		if _, dup := catalogs[name]; dup {
			return spec, fmt.Errorf("line %d: duplicate variable declaration: %s", ln.num, name)
		}
		order = append(order, name)
		catalogs[name] = states
		idx++
	}
	if len(order) == 0 {
		return spec, fmt.Errorf("no variables declared in network file")
	}

	variables := make(map[string]core.Variable, len(order))
	for _, name := range order {
		if catalogs[name] == nil {
			variables[name] = core.BinaryVariable(name)
		} else {
			variables[name] = core.Variable{Name: name, States: catalogs[name]}
		}
	}

	// Second pass: 'Child <- parents' blocks with CPT rows until the next
	// block header.
	nodes := make(map[string]network.Node, len(order))
	for idx < len(lines) {
		ln := lines[idx]
		child, parents, err := parseBlockHeader(ln, variables)
		if err != nil {
			return spec, err
		}
		if _, dup := nodes[child]; dup {
			return spec, fmt.Errorf("line %d: duplicate definition for child %s", ln.num, child)
		}
		idx++

		rows := make(map[string][]float64)
		for idx < len(lines) && !strings.Contains(lines[idx].text, "<-") {
			if err := parseCPTRow(lines[idx], variables[child], parents, variables, rows); err != nil {
				return spec, err
			}
			idx++
		}

		cpt, err := finishCPT(child, variables[child], rows)
		if err != nil {
			return spec, err
		}
		nodes[child] = network.Node{
			Name:    child,
			States:  variables[child].States,
			Parents: parents,
			CPT:     cpt,
		}
	}

	for _, name := range order {
		node, ok := nodes[name]
		if !ok {
			return spec, &network.MissingCPTError{Variable: name}
		}
		spec.Nodes = append(spec.Nodes, node)
	}
	return spec, nil
}

// parseDeclaration handles 'variable Name {S1, S2}' and bare 'variable Name'.
// A bare declaration returns nil states, meaning implicit binary.
func parseDeclaration(ln line) (string, []string, error) {
	rest := strings.TrimSpace(ln.text[len("variable "):])
	if rest == "" {
		return "", nil, fmt.Errorf("line %d: variable declaration without a name", ln.num)
	}

	brace := strings.Index(rest, "{")
	if brace < 0 {
		if strings.ContainsAny(rest, " \t") {
			return "", nil, fmt.Errorf("line %d: invalid variable declaration: %s", ln.num, ln.text)
		}
		return rest, nil, nil
	}

	name := strings.TrimSpace(rest[:brace])
	if name == "" {
		return "", nil, fmt.Errorf("line %d: variable declaration without a name", ln.num)
	}
	if !strings.HasSuffix(rest, "}") {
		return "", nil, fmt.Errorf("line %d: unterminated state list for %s", ln.num, name)
	}

	var states []string
	for _, part := range strings.Split(rest[brace+1:len(rest)-1], ",") {
		if s := strings.TrimSpace(part); s != "" {
			states = append(states, s)
		}
	}
	if len(states) < 2 {
		return "", nil, fmt.Errorf("line %d: variable %s needs at least 2 states", ln.num, name)
	}
	return name, states, nil
}

// parseBlockHeader handles 'Child <- None' and 'Child <- (P1, P2)'
func parseBlockHeader(ln line, variables map[string]core.Variable) (string, []string, error) {
	arrow := strings.Index(ln.text, "<-")
	if arrow < 0 {
		return "", nil, fmt.Errorf("line %d: expected a 'Child <- parents' block header: %s", ln.num, ln.text)
	}

	child := strings.TrimSpace(ln.text[:arrow])
	if _, ok := variables[child]; !ok {
		return "", nil, fmt.Errorf("line %d: %w", ln.num, &core.UnknownVariableError{Name: child})
	}

	parentPart := strings.TrimSpace(ln.text[arrow+2:])
	parentPart = strings.TrimPrefix(parentPart, "(")
	parentPart = strings.TrimSuffix(parentPart, ")")
	parentPart = strings.TrimSpace(parentPart)

	if strings.EqualFold(parentPart, "none") || parentPart == "" {
		return child, nil, nil
	}

	var parents []string
	for _, p := range strings.Split(parentPart, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == child {
			return "", nil, fmt.Errorf("line %d: %w", ln.num, &network.SelfParentError{Variable: child})
		}
		if _, ok := variables[p]; !ok {
			return "", nil, fmt.Errorf("line %d: %w", ln.num, &core.UnknownVariableError{Name: p})
		}
		parents = append(parents, p)
	}
	return child, parents, nil
}

// parseCPTRow handles '(<child state> | <parent states>): p' rows and the
// root shorthand '<state>: p', accumulating the result into rows.
func parseCPTRow(ln line, child core.Variable, parents []string, variables map[string]core.Variable, rows map[string][]float64) error {
	left, right, ok := splitEntry(ln.text)
	if !ok {
		return fmt.Errorf("line %d: invalid CPT entry: %s", ln.num, ln.text)
	}
	prob, err := strconv.ParseFloat(right, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid probability: %s", ln.num, right)
	}
	if prob < 0 || prob > 1 {
		return fmt.Errorf("line %d: probability out of range: %v", ln.num, prob)
	}

	childState := left
	parentKey := network.RootKey

	if strings.HasPrefix(left, "(") {
		if !strings.HasSuffix(left, ")") {
			return fmt.Errorf("line %d: unterminated conditional entry: %s", ln.num, left)
		}
		inner := left[1 : len(left)-1]
		bar := strings.Index(inner, "|")
		if bar < 0 {
			return fmt.Errorf("line %d: conditional entry needs '|': %s", ln.num, left)
		}
		childState = strings.TrimSpace(inner[:bar])

		stateNames := strings.Split(inner[bar+1:], ",")
		if len(parents) == 0 {
			return fmt.Errorf("line %d: conditional entry for parentless variable %s", ln.num, child.Name)
		}
		if len(stateNames) != len(parents) {
			return fmt.Errorf("line %d: expected %d parent states, got %d", ln.num, len(parents), len(stateNames))
		}
		pa := make(core.Assignment, len(parents))
		for i, raw := range stateNames {
			stateName := strings.TrimSpace(raw)
			si := variables[parents[i]].StateIndex(stateName)
			if si < 0 {
				return fmt.Errorf("line %d: %s is not a state of parent %s", ln.num, stateName, parents[i])
			}
			pa[i] = si
		}
		parentKey = pa.Key()
	} else if len(parents) > 0 {
		return fmt.Errorf("line %d: variable %s has parents; entries must be conditional", ln.num, child.Name)
	}

	ci := child.StateIndex(childState)
	if ci < 0 {
		return fmt.Errorf("line %d: %s is not a state of variable %s", ln.num, childState, child.Name)
	}

	row, ok := rows[parentKey]
	if !ok {
		row = make([]float64, child.Cardinality())
		for i := range row {
			row[i] = math.NaN()
		}
		rows[parentKey] = row
	}
	if !math.IsNaN(row[ci]) {
		return fmt.Errorf("line %d: duplicate CPT entry for %s state %s", ln.num, child.Name, childState)
	}
	row[ci] = prob
	return nil
}

// finishCPT resolves partially supplied rows. A binary child may give only
// one of its two state probabilities per parent assignment; the complement is
// derived. Anything else incomplete is an error.
func finishCPT(name string, child core.Variable, rows map[string][]float64) (network.CPT, error) {
	if len(rows) == 0 {
		return nil, &network.MissingCPTError{Variable: name}
	}

	cpt := make(network.CPT, len(rows))
	for key, row := range rows {
		missing := make([]int, 0)
		for i, p := range row {
			if math.IsNaN(p) {
				missing = append(missing, i)
			}
		}
		switch {
		case len(missing) == 0:
			// complete row
		case len(missing) == 1 && child.Cardinality() == 2:
			given := 1 - missing[0]
			row[missing[0]] = 1 - row[given]
		default:
			return nil, &network.MalformedCPTError{
				Variable:   name,
				Assignment: key,
				Reason:     "missing state probabilities",
			}
		}
		cpt[key] = row
	}
	return cpt, nil
}
