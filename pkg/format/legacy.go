/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: legacy.go
Description: Binary legacy Bayesian network format (.net) reader. Blocks of
'<Child>: <parents|None>' headers followed by '<parent-bits>: <P(child=1)>'
CPT lines. Block boundaries are resolved by the required CPT row count, never
by lookahead heuristics.
*/

package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/network"
)

// readLegacyNetwork parses the binary legacy network variant into a spec.
// The caller has already verified the first line is a 'variables:' header.
func readLegacyNetwork(lines []line) (network.Spec, error) {
	var spec network.Spec

	names, ok := headerNames(lines[0].text)
	if !ok || len(names) == 0 {
		return spec, fmt.Errorf("network file must start with a 'variables:' line")
	}
	declared := make(map[string]int, len(names))
	for i, name := range names {
		declared[name] = i
	}

	nodes := make(map[string]network.Node, len(names))
	idx := 1
	for idx < len(lines) {
		ln := lines[idx]
		child, parentPart, ok := splitEntry(ln.text)
		if !ok {
			return spec, fmt.Errorf("line %d: invalid block header: %s", ln.num, ln.text)
		}
		if _, ok := declared[child]; !ok {
			return spec, fmt.Errorf("line %d: %w", ln.num, &core.UnknownVariableError{Name: child})
		}
		if _, dup := nodes[child]; dup {
			return spec, fmt.Errorf("line %d: duplicate definition for child %s", ln.num, child)
		}

		var parents []string
		if !strings.EqualFold(parentPart, "none") && parentPart != "" {
			for _, p := range strings.Split(parentPart, ",") {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				if p == child {
					return spec, fmt.Errorf("line %d: %w", ln.num, &network.SelfParentError{Variable: child})
				}
				if _, ok := declared[p]; !ok {
					return spec, fmt.Errorf("line %d: %w", ln.num, &core.UnknownVariableError{Name: p})
				}
				parents = append(parents, p)
			}
		}
		idx++

		// A root takes exactly one probability line, a child with k parents
		// exactly 2^k. Reading the exact count removes any ambiguity about
		// where the next block begins.
		needed := 1
		if len(parents) > 0 {
			needed = 1 << len(parents)
		}

		cpt := make(network.CPT, needed)
		for row := 0; row < needed; row++ {
			if idx >= len(lines) {
				return spec, fmt.Errorf("incomplete CPT for %s: expected %d entries, got %d", child, needed, row)
			}
			rln := lines[idx]
			left, right, ok := splitEntry(rln.text)
			if !ok {
				return spec, fmt.Errorf("line %d: invalid CPT entry: %s", rln.num, rln.text)
			}
			prob, err := strconv.ParseFloat(right, 64)
			if err != nil {
				return spec, fmt.Errorf("line %d: invalid probability: %s", rln.num, right)
			}
			if prob < 0 || prob > 1 {
				return spec, fmt.Errorf("line %d: probability out of range: %v", rln.num, prob)
			}

			if len(parents) == 0 {
				// '1: p' states P(child=1)=p, '0: p' states P(child=0)=p
				switch left {
				case "1":
					cpt.Set(nil, network.BinaryRow(prob))
				case "0":
					cpt.Set(nil, network.BinaryRow(1-prob))
				default:
					return spec, fmt.Errorf("line %d: expected '1:' or '0:' for parentless variable %s", rln.num, child)
				}
			} else {
				if !isBits(left) || len(left) != len(parents) {
					return spec, fmt.Errorf("line %d: invalid parent assignment pattern %q for child %s", rln.num, left, child)
				}
				pa := make(core.Assignment, len(left))
				for i, c := range left {
					pa[i] = int(c - '0')
				}
				if _, dup := cpt[pa.Key()]; dup {
					return spec, fmt.Errorf("line %d: duplicate CPT entry for %s pattern %s", rln.num, child, left)
				}
				cpt.Set(pa, network.BinaryRow(prob))
			}
			idx++
		}

		nodes[child] = network.Node{Name: child, Parents: parents, CPT: cpt}
	}

	// Emit nodes in declaration order; factorization validates that every
	// declared variable actually received a block.
	for _, name := range names {
		node, ok := nodes[name]
		if !ok {
			return spec, &network.MissingCPTError{Variable: name}
		}
		spec.Nodes = append(spec.Nodes, node)
	}
	return spec, nil
}
