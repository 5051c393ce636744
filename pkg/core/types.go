/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the probs engine. Defines the state-space model used
throughout the system including variables, state catalogs, assignments, and the
canonical encoding of assignments as table keys.
*/

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// BinaryStates is the implicit state catalog for boolean variables.
// State index 0 is "0" (false) and state index 1 is "1" (true).
var BinaryStates = []string{"0", "1"}

// Variable describes a single discrete random variable: a unique name and an
// ordered catalog of state names. The position of a state in States is its
// state index; the position of the variable in the system's variable list is
// its variable index.
type Variable struct {
	Name   string   // Unique variable name
	States []string // Ordered, distinct state names (len >= 2)
}

// Cardinality returns the number of states the variable can take
func (v Variable) Cardinality() int {
	return len(v.States)
}

// StateIndex resolves a state name to its index, or -1 if unknown
func (v Variable) StateIndex(name string) int {
	for i, s := range v.States {
		if s == name {
			return i
		}
	}
	return -1
}

// Binary reports whether the variable uses the implicit boolean catalog
func (v Variable) Binary() bool {
	return len(v.States) == 2 && v.States[0] == "0" && v.States[1] == "1"
}

// BinaryVariable builds a boolean variable with the implicit ["0","1"] states
func BinaryVariable(name string) Variable {
	return Variable{Name: name, States: BinaryStates}
}

// Assignment is a full vector of state indices, one per variable, in variable
// order. Assignments are the keys of the joint distribution.
type Assignment []int

// Key encodes an assignment as a comparable map key. Go slices cannot be map
// keys, so assignments are stored under their comma-joined index string
// ("0,2,1").
func (a Assignment) Key() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Clone returns an independent copy of the assignment
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// String renders the assignment for diagnostics
func (a Assignment) String() string {
	return "(" + a.Key() + ")"
}

// Entry pairs one full assignment with its probability. Constructors consume
// lists of entries rather than maps so callers control iteration order.
type Entry struct {
	Values Assignment
	Prob   float64
}

// Options controls the completion policies applied while building a system
// from an explicit entry list. Both policies are deliberate loader
// conveniences, surfaced as named toggles so strict and lenient paths can
// both be exercised.
type Options struct {
	// TolerateMinorDeviation rescales the table to sum to 1 when the total
	// deviates from 1 by more than 1e-6 but no more than 5% relative.
	// Without it, any such deviation above 1 is an error.
	TolerateMinorDeviation bool

	// ZeroFillMissing assigns probability 0 to every unspecified assignment
	// when more than one is missing. Without it, an incomplete table with
	// several missing assignments is an error. A single missing assignment
	// is always inferred as the remainder to 1, independent of this flag.
	ZeroFillMissing bool
}

// DefaultOptions mirrors the historical loader behavior: lenient on both axes
func DefaultOptions() Options {
	return Options{TolerateMinorDeviation: true, ZeroFillMissing: true}
}

// CardinalityProduct returns the total number of assignments for a variable
// list, i.e. the size of the full joint table.
func CardinalityProduct(vars []Variable) int {
	n := 1
	for _, v := range vars {
		n *= v.Cardinality()
	}
	return n
}

// EnumerateAssignments yields every assignment of the variable list in
// lexicographic order over state-index tuples. This is the canonical
// enumeration order everywhere in the engine: factorization, saving, and
// sampling all walk assignments this way.
func EnumerateAssignments(vars []Variable) []Assignment {
	total := CardinalityProduct(vars)
	out := make([]Assignment, 0, total)

	current := make(Assignment, len(vars))
	for {
		out = append(out, current.Clone())

		// Advance the rightmost digit, carrying leftwards
		i := len(vars) - 1
		for i >= 0 {
			current[i]++
			if current[i] < vars[i].Cardinality() {
				break
			}
			current[i] = 0
			i--
		}
		if i < 0 {
			return out
		}
	}
}

// DefaultVariableNames produces the classic single-letter names A, B, C ...
// used when no explicit names are supplied. Beyond 26 variables the names
// wrap to A1, B1, and so on.
func DefaultVariableNames(n int) []string {
	names := make([]string, n)
	for i := 0; i < n; i++ {
		letter := string(rune('A' + i%26))
		if i >= 26 {
			letter = fmt.Sprintf("%s%d", letter, i/26)
		}
		names[i] = letter
	}
	return names
}
