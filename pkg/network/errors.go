/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Typed validation errors for Bayesian network specifications.
Raised before any joint-table work begins; each names the offending node,
parent assignment, or observed sum.
*/

package network

import (
	"fmt"
	"strings"
)

// SelfParentError reports a node that lists itself as a parent
type SelfParentError struct {
	Variable string
}

func (e *SelfParentError) Error() string {
	return fmt.Sprintf("variable %s cannot be its own parent", e.Variable)
}

// MissingCPTError reports a declared variable without a conditional
// probability table.
type MissingCPTError struct {
	Variable string
}

func (e *MissingCPTError) Error() string {
	return fmt.Sprintf("variable %s declared but no CPT provided", e.Variable)
}

// MalformedCPTError reports a CPT row that is absent, has the wrong width, or
// does not sum to 1 within tolerance for some parent assignment.
type MalformedCPTError struct {
	Variable   string
	Assignment string // parent-assignment key, "" for a root node
	Sum        float64
	Reason     string
}

func (e *MalformedCPTError) Error() string {
	where := e.Variable
	if e.Assignment != "" {
		where = fmt.Sprintf("%s given parents (%s)", e.Variable, e.Assignment)
	}
	if e.Reason != "" {
		return fmt.Sprintf("malformed CPT for %s: %s", where, e.Reason)
	}
	return fmt.Sprintf("malformed CPT for %s: probabilities sum to %v, want 1", where, e.Sum)
}

// CyclicNetworkError reports a parent graph that is not a DAG. The factorized
// joint is only well defined for acyclic parent structures, so cycles are
// rejected up front.
type CyclicNetworkError struct {
	Variables []string // the nodes left after peeling every root layer
}

func (e *CyclicNetworkError) Error() string {
	return fmt.Sprintf("parent graph contains a cycle involving: %s", strings.Join(e.Variables, ", "))
}
