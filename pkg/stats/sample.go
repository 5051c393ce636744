/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sample.go
Description: Weighted random sampling from the joint distribution store by
cumulative-distribution inversion. Probabilities are locally renormalized so
tables carrying small float drift still sample correctly.
*/

package stats

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kleascm/probs/pkg/core"
)

// Sample draws n i.i.d. assignments from the joint distribution. Assignments
// are ranked in canonical lexicographic order; a cumulative array over their
// locally renormalized probabilities is scanned linearly for the first
// threshold at or above each uniform draw. A nil rng gets a time-seeded
// source; tests pass a fixed seed for reproducibility.
func Sample(s *core.System, n int, rng *rand.Rand) ([]core.Assignment, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample count must be non-negative, got %d", n)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	assignments := s.Assignments()
	probs := make([]float64, len(assignments))
	total := 0.0
	for i, a := range assignments {
		probs[i] = s.JointProbability(a)
		total += probs[i]
	}
	if total <= 0 {
		return nil, &core.ZeroTotalProbabilityError{Total: total}
	}

	cumulative := make([]float64, len(probs))
	running := 0.0
	for i, p := range probs {
		running += p / total
		cumulative[i] = running
	}
	// Guard against float shortfall at the top of the array so a draw of
	// ~1.0 always lands on the final assignment.
	cumulative[len(cumulative)-1] = 1.0

	result := make([]core.Assignment, 0, n)
	for i := 0; i < n; i++ {
		r := rng.Float64()
		for idx, threshold := range cumulative {
			if r <= threshold {
				result = append(result, assignments[idx])
				break
			}
		}
	}
	return result, nil
}
