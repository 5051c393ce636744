/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: queries.go
Description: Query engine for the probs joint distribution store. Answers
marginal, conditional, independence, and conditional-independence queries by
exhaustive summation over the full table. All queries are pure reads.
*/

package core

import "math"

// independenceTolerance bounds the allowed gap between the joint probability
// and the product of marginals before a state pair counts as dependent.
const independenceTolerance = 1e-10

// MarginalProbability computes P(variables = values) by summing every joint
// entry whose listed positions match. Unlisted variables are summed out.
// Cost is linear in the table size; nothing is precomputed.
func (s *System) MarginalProbability(variables, values []int) (float64, error) {
	if err := s.checkSelection(variables, values); err != nil {
		return 0, err
	}

	result := 0.0
	for _, a := range s.ordered {
		match := true
		for i, vi := range variables {
			if a[vi] != values[i] {
				match = false
				break
			}
		}
		if match {
			result += s.JointProbability(a)
		}
	}
	return result, nil
}

// ConditionalProbability computes P(target = targetValues | condition =
// conditionValues) as the ratio of two marginals. Conditioning on an
// impossible event returns 0, not an error: zero is the accepted closure of
// this edge case, and the caller never sees NaN or infinity.
func (s *System) ConditionalProbability(targetVars, targetValues, conditionVars, conditionValues []int) (float64, error) {
	jointVars := append(append([]int{}, targetVars...), conditionVars...)
	jointValues := append(append([]int{}, targetValues...), conditionValues...)

	jointProb, err := s.MarginalProbability(jointVars, jointValues)
	if err != nil {
		return 0, err
	}
	conditionProb, err := s.MarginalProbability(conditionVars, conditionValues)
	if err != nil {
		return 0, err
	}

	if conditionProb == 0 {
		return 0, nil
	}
	return jointProb / conditionProb, nil
}

// IsIndependent tests pairwise independence of two variables: P(X=i,Y=j) must
// equal P(X=i)*P(Y=j) within 1e-10 for every state pair. The first failing
// pair short-circuits to false.
func (s *System) IsIndependent(x, y int) (bool, error) {
	vx, err := s.Variable(x)
	if err != nil {
		return false, err
	}
	vy, err := s.Variable(y)
	if err != nil {
		return false, err
	}

	for i := 0; i < vx.Cardinality(); i++ {
		for j := 0; j < vy.Cardinality(); j++ {
			joint, err := s.MarginalProbability([]int{x, y}, []int{i, j})
			if err != nil {
				return false, err
			}
			px, err := s.MarginalProbability([]int{x}, []int{i})
			if err != nil {
				return false, err
			}
			py, err := s.MarginalProbability([]int{y}, []int{j})
			if err != nil {
				return false, err
			}
			if math.Abs(joint-px*py) > independenceTolerance {
				return false, nil
			}
		}
	}
	return true, nil
}

// IsConditionallyIndependent tests whether x and y are independent given z:
// P(X=i,Y=j|Z=k) must equal P(X=i|Z=k)*P(Y=j|Z=k) within 1e-10 for every
// state triple.
func (s *System) IsConditionallyIndependent(x, y, given int) (bool, error) {
	vx, err := s.Variable(x)
	if err != nil {
		return false, err
	}
	vy, err := s.Variable(y)
	if err != nil {
		return false, err
	}
	vz, err := s.Variable(given)
	if err != nil {
		return false, err
	}

	for i := 0; i < vx.Cardinality(); i++ {
		for j := 0; j < vy.Cardinality(); j++ {
			for k := 0; k < vz.Cardinality(); k++ {
				jointCond, err := s.ConditionalProbability([]int{x, y}, []int{i, j}, []int{given}, []int{k})
				if err != nil {
					return false, err
				}
				condX, err := s.ConditionalProbability([]int{x}, []int{i}, []int{given}, []int{k})
				if err != nil {
					return false, err
				}
				condY, err := s.ConditionalProbability([]int{y}, []int{j}, []int{given}, []int{k})
				if err != nil {
					return false, err
				}
				if math.Abs(jointCond-condX*condY) > independenceTolerance {
					return false, nil
				}
			}
		}
	}
	return true, nil
}
