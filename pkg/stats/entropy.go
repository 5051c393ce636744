/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: entropy.go
Description: Information-theoretic measures over the joint distribution store.
Marginal distributions, Shannon entropy in a caller-settable base, conditional
entropy, and mutual information, all computed by exhaustive summation.
*/

package stats

import (
	"fmt"
	"math"

	"github.com/kleascm/probs/pkg/core"
)

// DefaultBase is the logarithm base used when callers pass 0: entropies in bits
const DefaultBase = 2.0

// MarginalDistribution sums the joint table down to the listed variables.
// The result maps sub-assignment keys (state indices of the listed variables,
// in the listed order) to probabilities.
func MarginalDistribution(s *core.System, variables []int) (map[string]float64, error) {
	for _, vi := range variables {
		if _, err := s.Variable(vi); err != nil {
			return nil, err
		}
	}

	dist := make(map[string]float64)
	for _, a := range s.Assignments() {
		sub := make(core.Assignment, len(variables))
		for i, vi := range variables {
			sub[i] = a[vi]
		}
		dist[sub.Key()] += s.JointProbability(a)
	}
	return dist, nil
}

// Entropy computes the Shannon entropy of the marginal distribution over the
// listed variables, or of the full joint when variables is nil. Zero
// probability states contribute nothing (0*log 0 = 0 by convention). A base
// of 0 selects the default of 2.
func Entropy(s *core.System, variables []int, base float64) (float64, error) {
	base, err := resolveBase(base)
	if err != nil {
		return 0, err
	}

	var probs []float64
	if variables == nil {
		for _, a := range s.Assignments() {
			probs = append(probs, s.JointProbability(a))
		}
	} else {
		dist, err := MarginalDistribution(s, variables)
		if err != nil {
			return 0, err
		}
		for _, p := range dist {
			probs = append(probs, p)
		}
	}

	h := 0.0
	logBase := math.Log(base)
	for _, p := range probs {
		if p > 0 {
			h -= p * math.Log(p) / logBase
		}
	}
	return h, nil
}

// ConditionalEntropy computes H(target | given) = H(target, given) - H(given)
func ConditionalEntropy(s *core.System, targetVars, givenVars []int, base float64) (float64, error) {
	jointVars := append(append([]int{}, targetVars...), givenVars...)
	hJoint, err := Entropy(s, jointVars, base)
	if err != nil {
		return 0, err
	}
	hGiven, err := Entropy(s, givenVars, base)
	if err != nil {
		return 0, err
	}
	return hJoint - hGiven, nil
}

// MutualInformation computes I(x; y) = H(x) + H(y) - H(x, y)
func MutualInformation(s *core.System, x, y int, base float64) (float64, error) {
	hx, err := Entropy(s, []int{x}, base)
	if err != nil {
		return 0, err
	}
	hy, err := Entropy(s, []int{y}, base)
	if err != nil {
		return 0, err
	}
	hxy, err := Entropy(s, []int{x, y}, base)
	if err != nil {
		return 0, err
	}
	return hx + hy - hxy, nil
}

func resolveBase(base float64) (float64, error) {
	if base == 0 {
		return DefaultBase, nil
	}
	if base <= 0 || base == 1 {
		return 0, fmt.Errorf("entropy base must be positive and not 1, got %v", base)
	}
	return base, nil
}
