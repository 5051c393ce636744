/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Typed construction and lookup errors for the probs engine. Every
error names the offending variable, assignment, or observed value so callers
can surface a single actionable message without re-deriving context.
*/

package core

import "fmt"

// UnknownVariableError reports a reference to a variable name that is not
// declared in the system or network specification.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable name: %s", e.Name)
}

// OutOfRangeError reports a variable or state index outside the declared
// state space.
type OutOfRangeError struct {
	What  string // "variable index" or "state index"
	Index int
	Limit int // exclusive upper bound
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [0,%d)", e.What, e.Index, e.Limit)
}

// ProbabilityRangeError reports a probability outside [0,1].
type ProbabilityRangeError struct {
	Value float64
}

func (e *ProbabilityRangeError) Error() string {
	return fmt.Sprintf("probability must be between 0 and 1, got %v", e.Value)
}

// ExcessProbabilityError reports an explicit joint table whose entries sum to
// more than 1 beyond the negative-remainder tolerance.
type ExcessProbabilityError struct {
	Sum float64
}

func (e *ExcessProbabilityError) Error() string {
	return fmt.Sprintf("joint probabilities sum to more than 1 (sum=%v)", e.Sum)
}

// IncompleteTableError reports an entry list that neither forms a full table
// nor qualifies for the single-missing-entry inference, with zero-fill
// disabled.
type IncompleteTableError struct {
	Expected int
	Got      int
}

func (e *IncompleteTableError) Error() string {
	return fmt.Sprintf("expected %d or %d probability entries, got %d",
		e.Expected, e.Expected-1, e.Got)
}

// TotalDeviationError reports a completed table whose total is too far from 1
// for the auto-normalization policy to apply.
type TotalDeviationError struct {
	Total float64
}

func (e *TotalDeviationError) Error() string {
	return fmt.Sprintf("joint probabilities sum to %v; deviation too large for auto-normalization", e.Total)
}

// ZeroTotalProbabilityError reports a distribution whose entries sum to zero
// or below, which makes normalization and sampling meaningless.
type ZeroTotalProbabilityError struct {
	Total float64
}

func (e *ZeroTotalProbabilityError) Error() string {
	return fmt.Sprintf("total probability is zero or negative (total=%v)", e.Total)
}
