/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Bayesian network specification types for the probs engine. A Spec
is the declarative description handed over by the loaders: ordered nodes, each
with a state catalog, a parent list, and a conditional probability table keyed
by parent-state assignments.
*/

package network

import "github.com/kleascm/probs/pkg/core"

// CPT is a conditional probability table: for every assignment of the parent
// states (encoded with core.Assignment.Key over the parent list, in declared
// parent order) it holds the distribution over the child's own states. A root
// node has the single key of the empty assignment.
type CPT map[string][]float64

// RootKey is the parent-assignment key of a parentless node
var RootKey = core.Assignment(nil).Key()

// Set stores the child-state distribution for one parent assignment
func (c CPT) Set(parents core.Assignment, dist []float64) {
	c[parents.Key()] = dist
}

// BinaryRow expands the binary-child convenience form: given only
// P(child=1 | parents), the complement P(child=0 | parents) is derived.
func BinaryRow(p1 float64) []float64 {
	return []float64{1 - p1, p1}
}

// Node declares one variable of the network: its state catalog (nil means the
// implicit binary ["0","1"]), its ordered parent list, and its CPT.
type Node struct {
	Name    string
	States  []string
	Parents []string
	CPT     CPT
}

// Variable returns the node's state-space declaration
func (n Node) Variable() core.Variable {
	if n.States == nil {
		return core.BinaryVariable(n.Name)
	}
	return core.Variable{Name: n.Name, States: n.States}
}

// Spec is a complete Bayesian network description in declaration order.
// Factorize turns it into a full joint distribution.
type Spec struct {
	Nodes []Node
}

// Names returns the declared variable names in order
func (s Spec) Names() []string {
	names := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		names[i] = n.Name
	}
	return names
}
