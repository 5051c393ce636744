/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: association.go
Description: 2x2 contingency measures for binary exposure/outcome pairs: odds
ratio and relative risk. Undefined results are reported through an explicit
boolean, never as a zero that could pass for a valid ratio.
*/

package stats

import (
	"fmt"

	"github.com/kleascm/probs/pkg/core"
)

// OddsRatio computes (p11*p00)/(p10*p01) for a binary exposure and outcome,
// where pxy = P(exposure=x, outcome=y). The second return is false when the
// denominator is exactly 0: the ratio is undefined, and 0 would be a valid
// ratio so it cannot double as the sentinel.
func OddsRatio(s *core.System, exposure, outcome int) (float64, bool, error) {
	if err := requireBinary(s, exposure, outcome); err != nil {
		return 0, false, err
	}

	sel := []int{exposure, outcome}
	p11, err := s.MarginalProbability(sel, []int{1, 1})
	if err != nil {
		return 0, false, err
	}
	p10, err := s.MarginalProbability(sel, []int{1, 0})
	if err != nil {
		return 0, false, err
	}
	p01, err := s.MarginalProbability(sel, []int{0, 1})
	if err != nil {
		return 0, false, err
	}
	p00, err := s.MarginalProbability(sel, []int{0, 0})
	if err != nil {
		return 0, false, err
	}

	denom := p10 * p01
	if denom == 0 {
		return 0, false, nil
	}
	return (p11 * p00) / denom, true, nil
}

// RelativeRisk computes P(outcome=1|exposure=1) / P(outcome=1|exposure=0).
// The second return is false when the baseline conditional is 0.
func RelativeRisk(s *core.System, exposure, outcome int) (float64, bool, error) {
	if err := requireBinary(s, exposure, outcome); err != nil {
		return 0, false, err
	}

	exposed, err := s.ConditionalProbability([]int{outcome}, []int{1}, []int{exposure}, []int{1})
	if err != nil {
		return 0, false, err
	}
	baseline, err := s.ConditionalProbability([]int{outcome}, []int{1}, []int{exposure}, []int{0})
	if err != nil {
		return 0, false, err
	}

	if baseline == 0 {
		return 0, false, nil
	}
	return exposed / baseline, true, nil
}

func requireBinary(s *core.System, indices ...int) error {
	for _, i := range indices {
		v, err := s.Variable(i)
		if err != nil {
			return err
		}
		if v.Cardinality() != 2 {
			return fmt.Errorf("variable %s is not binary (%d states)", v.Name, v.Cardinality())
		}
	}
	return nil
}
