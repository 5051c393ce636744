/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: queries_test.go
Description: Tests for the exhaustive-summation query engine. Covers marginal
and conditional probabilities, zero-probability conditioning, and independence
testing including symmetry.
*/

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/probs/pkg/core"
)

func buildTwoVar(t *testing.T) *core.System {
	t.Helper()
	s, err := core.NewSystem(binaryVars("A", "B"), []core.Entry{
		{Values: core.Assignment{0, 0}, Prob: 0.4},
		{Values: core.Assignment{0, 1}, Prob: 0.3},
		{Values: core.Assignment{1, 0}, Prob: 0.2},
		{Values: core.Assignment{1, 1}, Prob: 0.1},
	}, core.Options{})
	require.NoError(t, err)
	return s
}

// buildIndependent builds a system where A and B are exactly independent
func buildIndependent(t *testing.T) *core.System {
	t.Helper()
	s, err := core.NewSystem(binaryVars("A", "B"), []core.Entry{
		{Values: core.Assignment{0, 0}, Prob: 0.42}, // 0.6 * 0.7
		{Values: core.Assignment{0, 1}, Prob: 0.18}, // 0.6 * 0.3
		{Values: core.Assignment{1, 0}, Prob: 0.28}, // 0.4 * 0.7
		{Values: core.Assignment{1, 1}, Prob: 0.12}, // 0.4 * 0.3
	}, core.Options{})
	require.NoError(t, err)
	return s
}

// TestMarginalProbability tests summing out unlisted variables
func TestMarginalProbability(t *testing.T) {
	s := buildTwoVar(t)

	p, err := s.MarginalProbability([]int{0}, []int{0})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, p, 1e-12)

	p, err = s.MarginalProbability([]int{1}, []int{1})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, p, 1e-12)

	// Full assignment marginal equals the joint entry
	p, err = s.MarginalProbability([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, p, 1e-12)
}

// TestMarginalProbabilityRejectsBadSelection tests selection validation
func TestMarginalProbabilityRejectsBadSelection(t *testing.T) {
	s := buildTwoVar(t)

	_, err := s.MarginalProbability([]int{5}, []int{0})
	require.Error(t, err)
	var oor *core.OutOfRangeError
	assert.ErrorAs(t, err, &oor)

	_, err = s.MarginalProbability([]int{0, 1}, []int{0})
	require.Error(t, err)
}

// TestConditionalProbability tests the ratio of marginals
func TestConditionalProbability(t *testing.T) {
	s := buildTwoVar(t)

	// P(B=1 | A=1) = 0.1 / 0.3
	p, err := s.ConditionalProbability([]int{1}, []int{1}, []int{0}, []int{1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, p, 1e-12)

	// P(B=1 | A=0) = 0.3 / 0.7
	p, err = s.ConditionalProbability([]int{1}, []int{1}, []int{0}, []int{0})
	require.NoError(t, err)
	assert.InDelta(t, 3.0/7.0, p, 1e-12)
}

// TestConditionalProbabilityZeroCondition tests that conditioning on an
// impossible event returns 0, not NaN or an error
func TestConditionalProbabilityZeroCondition(t *testing.T) {
	s, err := core.NewSystem(binaryVars("A", "B"), []core.Entry{
		{Values: core.Assignment{0, 0}, Prob: 0.5},
		{Values: core.Assignment{0, 1}, Prob: 0.5},
		{Values: core.Assignment{1, 0}, Prob: 0.0},
		{Values: core.Assignment{1, 1}, Prob: 0.0},
	}, core.Options{})
	require.NoError(t, err)

	p, err := s.ConditionalProbability([]int{1}, []int{1}, []int{0}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

// TestIsIndependent tests independence detection and failure
func TestIsIndependent(t *testing.T) {
	dependent := buildTwoVar(t)
	ind, err := dependent.IsIndependent(0, 1)
	require.NoError(t, err)
	assert.False(t, ind)

	independent := buildIndependent(t)
	ind, err = independent.IsIndependent(0, 1)
	require.NoError(t, err)
	assert.True(t, ind)
}

// TestIsIndependentSymmetry tests that the verdict does not depend on
// argument order
func TestIsIndependentSymmetry(t *testing.T) {
	for _, s := range []*core.System{buildTwoVar(t), buildIndependent(t)} {
		xy, err := s.IsIndependent(0, 1)
		require.NoError(t, err)
		yx, err := s.IsIndependent(1, 0)
		require.NoError(t, err)
		assert.Equal(t, xy, yx)
	}
}

// TestIsConditionallyIndependent tests the chain structure A -> B -> C,
// where A and C are dependent but independent given B
func TestIsConditionallyIndependent(t *testing.T) {
	vars := binaryVars("A", "B", "C")

	// P(A=1)=0.4, P(B=1|A=1)=0.7, P(B=1|A=0)=0.2,
	// P(C=1|B=1)=0.9, P(C=1|B=0)=0.1
	pa := []float64{0.6, 0.4}
	pbGivenA := [][]float64{{0.8, 0.2}, {0.3, 0.7}}
	pcGivenB := [][]float64{{0.9, 0.1}, {0.1, 0.9}}

	var entries []core.Entry
	for _, a := range core.EnumerateAssignments(vars) {
		p := pa[a[0]] * pbGivenA[a[0]][a[1]] * pcGivenB[a[1]][a[2]]
		entries = append(entries, core.Entry{Values: a.Clone(), Prob: p})
	}

	s, err := core.NewSystem(vars, entries, core.Options{})
	require.NoError(t, err)

	// A and C are marginally dependent
	ind, err := s.IsIndependent(0, 2)
	require.NoError(t, err)
	assert.False(t, ind)

	// but independent given B
	ind, err = s.IsConditionallyIndependent(0, 2, 1)
	require.NoError(t, err)
	assert.True(t, ind)
}
