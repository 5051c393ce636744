/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: system.go
Description: Joint distribution store for the probs engine. Builds a complete,
validated assignment-to-probability table from explicit entry lists or reduced
binary legacy lists, and serves raw lookups. Systems are immutable after
construction: reloading a file builds a brand-new store, never a patch.
*/

package core

import (
	"fmt"
	"math"
)

const (
	// negativeRemainderTol is how far below zero an inferred remainder may
	// fall before the table is rejected as summing past 1.
	negativeRemainderTol = -1e-10

	// totalDeviationTrigger is the deviation from 1 above which the
	// completion policies (auto-normalize or reject) kick in.
	totalDeviationTrigger = 1e-6

	// maxRelativeDeviation bounds the auto-normalization policy: totals off
	// by more than 5% relative are treated as malformed, not round-off.
	maxRelativeDeviation = 0.05
)

// System is a finite joint distribution over discrete variables: the ground
// truth every query reads from. The table maps every assignment key to a
// probability in [0,1] and sums to 1 within float tolerance. All fields are
// unexported; a System never changes after New* returns.
type System struct {
	vars    []Variable
	index   map[string]int     // variable name -> variable index
	table   map[string]float64 // assignment key -> probability
	ordered []Assignment       // all assignments in canonical order
}

// NewSystem builds a joint distribution from an explicit entry list.
//
// Completion policy (in order):
//  1. Exactly one assignment missing: its probability is inferred as
//     1 - sum(given), clamped to 0; a remainder below -1e-10 is an error.
//  2. More than one missing: all missing entries become 0 when
//     opts.ZeroFillMissing is set, otherwise the table is rejected.
//  3. A completed total off 1 by more than 1e-6 is rescaled when
//     opts.TolerateMinorDeviation is set and the relative deviation is at
//     most 5%; otherwise a total above 1 is rejected. A shortfall below 1
//     outside the lenient path is kept as-is (sparse tables are legal).
func NewSystem(vars []Variable, entries []Entry, opts Options) (*System, error) {
	if err := validateVariables(vars); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no probability entries supplied")
	}

	s := &System{
		vars:    vars,
		index:   make(map[string]int, len(vars)),
		table:   make(map[string]float64, CardinalityProduct(vars)),
		ordered: EnumerateAssignments(vars),
	}
	for i, v := range vars {
		s.index[v.Name] = i
	}

	for _, e := range entries {
		if err := s.CheckAssignment(e.Values); err != nil {
			return nil, err
		}
		if e.Prob < 0 || e.Prob > 1 {
			return nil, &ProbabilityRangeError{Value: e.Prob}
		}
		s.table[e.Values.Key()] = e.Prob
	}

	if err := s.complete(opts); err != nil {
		return nil, err
	}
	return s, nil
}

// NewReducedSystem builds a binary joint distribution from the legacy reduced
// form: 2^n - 1 probabilities in ascending binary order of assignments, with
// the final all-ones assignment implied as the remainder to 1. Names may be
// nil, in which case A, B, C ... are used.
func NewReducedSystem(numVariables int, probs []float64, names []string) (*System, error) {
	if numVariables < 1 {
		return nil, fmt.Errorf("need at least one variable, got %d", numVariables)
	}
	if names == nil {
		names = DefaultVariableNames(numVariables)
	}
	if len(names) != numVariables {
		return nil, fmt.Errorf("expected %d variable names, got %d", numVariables, len(names))
	}

	expected := (1 << numVariables) - 1
	if len(probs) != expected {
		return nil, fmt.Errorf("expected %d probabilities, got %d", expected, len(probs))
	}

	vars := make([]Variable, numVariables)
	for i, name := range names {
		vars[i] = BinaryVariable(name)
	}

	// The i-th probability belongs to the assignment whose bits are i,
	// most significant bit first. The missing all-ones assignment is
	// inferred by the single-missing completion rule.
	entries := make([]Entry, len(probs))
	for i, p := range probs {
		values := make(Assignment, numVariables)
		for j := 0; j < numVariables; j++ {
			values[j] = (i >> (numVariables - j - 1)) & 1
		}
		entries[i] = Entry{Values: values, Prob: p}
	}

	return NewSystem(vars, entries, DefaultOptions())
}

// complete applies the missing-entry and total-deviation policies in place
func (s *System) complete(opts Options) error {
	missing := make([]Assignment, 0)
	sum := 0.0
	for _, a := range s.ordered {
		p, ok := s.table[a.Key()]
		if !ok {
			missing = append(missing, a)
			continue
		}
		sum += p
	}

	switch {
	case len(missing) == 1:
		remainder := 1.0 - sum
		if remainder < negativeRemainderTol {
			return &ExcessProbabilityError{Sum: sum}
		}
		s.table[missing[0].Key()] = math.Max(0, remainder)
	case len(missing) > 1:
		if !opts.ZeroFillMissing {
			return &IncompleteTableError{Expected: len(s.ordered), Got: len(s.table)}
		}
		for _, a := range missing {
			s.table[a.Key()] = 0.0
		}
	}

	total := s.Total()
	if math.Abs(total-1.0) > totalDeviationTrigger {
		deviation := math.Abs(total - 1.0)
		if opts.TolerateMinorDeviation && total > 0 && deviation/total <= maxRelativeDeviation {
			factor := 1.0 / total
			for k := range s.table {
				s.table[k] *= factor
			}
		} else if total > 1.0 {
			return &TotalDeviationError{Total: total}
		}
	}
	return nil
}

// validateVariables rejects empty lists, duplicate names, and degenerate
// state catalogs before any table work begins.
func validateVariables(vars []Variable) error {
	if len(vars) == 0 {
		return fmt.Errorf("no variables declared")
	}
	seen := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		if v.Name == "" {
			return fmt.Errorf("variable with empty name")
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("duplicate variable name: %s", v.Name)
		}
		seen[v.Name] = struct{}{}

		if v.Cardinality() < 2 {
			return fmt.Errorf("variable %s needs at least 2 states, got %d", v.Name, v.Cardinality())
		}
		states := make(map[string]struct{}, len(v.States))
		for _, st := range v.States {
			if st == "" {
				return fmt.Errorf("variable %s has an empty state name", v.Name)
			}
			if _, dup := states[st]; dup {
				return fmt.Errorf("variable %s has duplicate state name: %s", v.Name, st)
			}
			states[st] = struct{}{}
		}
	}
	return nil
}

// NumVariables returns the number of variables in the system
func (s *System) NumVariables() int {
	return len(s.vars)
}

// Variables returns the ordered variable list
func (s *System) Variables() []Variable {
	return s.vars
}

// Variable returns the variable at the given index
func (s *System) Variable(i int) (Variable, error) {
	if i < 0 || i >= len(s.vars) {
		return Variable{}, &OutOfRangeError{What: "variable index", Index: i, Limit: len(s.vars)}
	}
	return s.vars[i], nil
}

// VariableIndex resolves a variable name to its index
func (s *System) VariableIndex(name string) (int, error) {
	if i, ok := s.index[name]; ok {
		return i, nil
	}
	return 0, &UnknownVariableError{Name: name}
}

// VariableNames returns the ordered list of variable names
func (s *System) VariableNames() []string {
	names := make([]string, len(s.vars))
	for i, v := range s.vars {
		names[i] = v.Name
	}
	return names
}

// Assignments returns every assignment in canonical lexicographic order
func (s *System) Assignments() []Assignment {
	return s.ordered
}

// JointProbability returns the probability of a full assignment, or 0.0 for
// an assignment not present in the table.
func (s *System) JointProbability(a Assignment) float64 {
	return s.table[a.Key()]
}

// Total sums the entire table. A freshly constructed system totals 1 within
// float epsilon; the accessor exists for validation and diagnostics.
func (s *System) Total() float64 {
	total := 0.0
	for _, p := range s.table {
		total += p
	}
	return total
}

// CheckAssignment validates an assignment's length and per-variable ranges
func (s *System) CheckAssignment(a Assignment) error {
	if len(a) != len(s.vars) {
		return fmt.Errorf("assignment has %d values, want %d", len(a), len(s.vars))
	}
	for i, v := range a {
		if v < 0 || v >= s.vars[i].Cardinality() {
			return &OutOfRangeError{What: "state index", Index: v, Limit: s.vars[i].Cardinality()}
		}
	}
	return nil
}

// checkSelection validates parallel variable/value index lists used by the
// query engine.
func (s *System) checkSelection(variables, values []int) error {
	if len(variables) != len(values) {
		return fmt.Errorf("number of variables must match number of values")
	}
	for i, vi := range variables {
		if vi < 0 || vi >= len(s.vars) {
			return &OutOfRangeError{What: "variable index", Index: vi, Limit: len(s.vars)}
		}
		if values[i] < 0 || values[i] >= s.vars[vi].Cardinality() {
			return &OutOfRangeError{What: "state index", Index: values[i], Limit: s.vars[vi].Cardinality()}
		}
	}
	return nil
}
