/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: factorize.go
Description: CPT factorization engine. Validates a Bayesian network spec
(declared variables, parent references, acyclicity, CPT completeness and row
sums) and expands it into a complete, normalized joint distribution by
enumerating the full Cartesian product of variable states.
*/

package network

import (
	"math"
	"sort"

	"github.com/kleascm/probs/pkg/core"
)

const (
	// cptRowTolerance bounds how far a CPT row may stray from summing to 1
	cptRowTolerance = 1e-8

	// totalTolerance bounds the deviation of the assembled joint total from
	// 1 before the table is rescaled. Rescaling here absorbs float round-off
	// in chained CPTs; it is not a repair mechanism for malformed networks,
	// which the validation pass rejects first.
	totalTolerance = 1e-8
)

// Factorize expands a validated network spec into a full joint distribution.
// Every assignment of the Cartesian product of all variable states (in
// lexicographic order) receives the product of per-variable conditional
// factors; the result is normalized and wrapped in an immutable core.System.
func Factorize(spec Spec) (*core.System, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}

	vars := make([]core.Variable, len(spec.Nodes))
	index := make(map[string]int, len(spec.Nodes))
	for i, n := range spec.Nodes {
		vars[i] = n.Variable()
		index[n.Name] = i
	}

	assignments := core.EnumerateAssignments(vars)
	entries := make([]core.Entry, len(assignments))
	total := 0.0

	for ai, assignment := range assignments {
		prob := 1.0
		for ni, node := range spec.Nodes {
			parentValues := make(core.Assignment, len(node.Parents))
			for pi, parent := range node.Parents {
				parentValues[pi] = assignment[index[parent]]
			}
			factor := node.CPT[parentValues.Key()][assignment[ni]]
			prob *= factor
			if prob == 0 {
				// Zero factor annihilates the product; skipping the rest
				// changes nothing in float semantics.
				break
			}
		}
		entries[ai] = core.Entry{Values: assignment, Prob: prob}
		total += prob
	}

	if total <= 0 {
		return nil, &core.ZeroTotalProbabilityError{Total: total}
	}
	if math.Abs(total-1.0) > totalTolerance {
		for i := range entries {
			entries[i].Prob /= total
		}
	}

	// The entry list is complete and normalized; strict options keep the
	// store constructor from applying any further completion policy.
	return core.NewSystem(vars, entries, core.Options{})
}

// Validate checks a network spec without building anything: declared
// variables form a valid state space, every parent reference resolves to a
// declared non-self variable, the parent graph is acyclic, and every CPT is
// complete with rows summing to 1 within 1e-8.
func Validate(spec Spec) error {
	vars := make([]core.Variable, len(spec.Nodes))
	for i, n := range spec.Nodes {
		vars[i] = n.Variable()
	}
	// Reuse the store's state-space validation via a throwaway check of
	// names and catalogs.
	index := make(map[string]int, len(spec.Nodes))
	for i, v := range vars {
		if v.Name == "" {
			return &core.UnknownVariableError{Name: ""}
		}
		if _, dup := index[v.Name]; dup {
			return &MalformedCPTError{Variable: v.Name, Reason: "duplicate declaration"}
		}
		if v.Cardinality() < 2 {
			return &MalformedCPTError{Variable: v.Name, Reason: "fewer than 2 states"}
		}
		index[v.Name] = i
	}

	for _, node := range spec.Nodes {
		for _, parent := range node.Parents {
			if parent == node.Name {
				return &SelfParentError{Variable: node.Name}
			}
			if _, ok := index[parent]; !ok {
				return &core.UnknownVariableError{Name: parent}
			}
		}
	}

	if err := checkAcyclic(spec); err != nil {
		return err
	}

	for _, node := range spec.Nodes {
		if err := validateCPT(node, vars, index); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalOrder returns the node names in a parent-before-child order, or
// a CyclicNetworkError when the parent graph is not a DAG. Factorization
// itself does not need the order (each factor only reads states, not other
// factors), but the check rejects specs whose joint is ill-defined.
func TopologicalOrder(spec Spec) ([]string, error) {
	indegree := make(map[string]int, len(spec.Nodes))
	children := make(map[string][]string, len(spec.Nodes))
	for _, node := range spec.Nodes {
		indegree[node.Name] += 0
		for _, parent := range node.Parents {
			indegree[node.Name]++
			children[parent] = append(children[parent], node.Name)
		}
	}

	ready := make([]string, 0, len(spec.Nodes))
	for _, node := range spec.Nodes {
		if indegree[node.Name] == 0 {
			ready = append(ready, node.Name)
		}
	}

	order := make([]string, 0, len(spec.Nodes))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, child := range children[name] {
			indegree[child]--
			if indegree[child] == 0 {
				ready = append(ready, child)
			}
		}
	}

	if len(order) != len(spec.Nodes) {
		remaining := make([]string, 0)
		seen := make(map[string]struct{}, len(order))
		for _, name := range order {
			seen[name] = struct{}{}
		}
		for _, node := range spec.Nodes {
			if _, ok := seen[node.Name]; !ok {
				remaining = append(remaining, node.Name)
			}
		}
		sort.Strings(remaining)
		return nil, &CyclicNetworkError{Variables: remaining}
	}
	return order, nil
}

func checkAcyclic(spec Spec) error {
	_, err := TopologicalOrder(spec)
	return err
}

// validateCPT checks one node's table: present, covering the full Cartesian
// product of parent states, correct row width, entries in [0,1], and row sums
// of 1 within tolerance.
func validateCPT(node Node, vars []core.Variable, index map[string]int) error {
	if len(node.CPT) == 0 {
		return &MissingCPTError{Variable: node.Name}
	}

	parentVars := make([]core.Variable, len(node.Parents))
	for i, parent := range node.Parents {
		parentVars[i] = vars[index[parent]]
	}
	cardinality := node.Variable().Cardinality()

	parentAssignments := []core.Assignment{nil}
	if len(parentVars) > 0 {
		parentAssignments = core.EnumerateAssignments(parentVars)
	}

	for _, pa := range parentAssignments {
		row, ok := node.CPT[pa.Key()]
		if !ok {
			return &MalformedCPTError{
				Variable:   node.Name,
				Assignment: pa.Key(),
				Reason:     "no probabilities for this parent assignment",
			}
		}
		if len(row) != cardinality {
			return &MalformedCPTError{
				Variable:   node.Name,
				Assignment: pa.Key(),
				Reason:     "wrong number of child-state probabilities",
			}
		}
		sum := 0.0
		for _, p := range row {
			if p < 0 || p > 1 {
				return &MalformedCPTError{
					Variable:   node.Name,
					Assignment: pa.Key(),
					Reason:     "probability out of [0,1]",
				}
			}
			sum += p
		}
		if math.Abs(sum-1.0) > cptRowTolerance {
			return &MalformedCPTError{Variable: node.Name, Assignment: pa.Key(), Sum: sum}
		}
	}

	if len(node.CPT) > len(parentAssignments) {
		return &MalformedCPTError{
			Variable: node.Name,
			Reason:   "more CPT rows than parent assignments",
		}
	}
	return nil
}
