/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: association_test.go
Description: Tests for odds ratio and relative risk, including the undefined
sentinel and the binary-variable requirement.
*/

package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/stats"
)

// TestOddsRatio tests the 2x2 table with cells 0.4/0.3/0.2/0.1:
// OR = (0.1*0.4)/(0.2*0.3) = 2/3
func TestOddsRatio(t *testing.T) {
	s := twoVar(t, 0.4, 0.3, 0.2, 0.1)
	or, defined, err := stats.OddsRatio(s, 0, 1)
	require.NoError(t, err)
	require.True(t, defined)
	assert.InDelta(t, 0.6666666666666666, or, 1e-12)
}

// TestOddsRatioUndefined tests the sentinel when a denominator cell is empty
func TestOddsRatioUndefined(t *testing.T) {
	// P(A=1,B=0) = 0, so p10*p01 = 0
	s := twoVar(t, 0.4, 0.3, 0, 0.3)
	or, defined, err := stats.OddsRatio(s, 0, 1)
	require.NoError(t, err)
	assert.False(t, defined)
	assert.Equal(t, 0.0, or)
}

// TestOddsRatioZeroNumerator tests that an empty numerator cell is a defined
// ratio of 0, not the undefined sentinel
func TestOddsRatioZeroNumerator(t *testing.T) {
	s := twoVar(t, 0.4, 0.3, 0.3, 0)
	or, defined, err := stats.OddsRatio(s, 0, 1)
	require.NoError(t, err)
	require.True(t, defined)
	assert.Equal(t, 0.0, or)
}

// TestRelativeRisk tests RR = (0.1/0.3) / (0.3/0.7) = 7/9 for the
// 0.4/0.3/0.2/0.1 table
func TestRelativeRisk(t *testing.T) {
	s := twoVar(t, 0.4, 0.3, 0.2, 0.1)
	rr, defined, err := stats.RelativeRisk(s, 0, 1)
	require.NoError(t, err)
	require.True(t, defined)
	assert.InDelta(t, 7.0/9.0, rr, 1e-12)
}

// TestRelativeRiskUndefined tests the sentinel when the baseline risk is 0
func TestRelativeRiskUndefined(t *testing.T) {
	// P(B=1 | A=0) = 0
	s := twoVar(t, 0.5, 0, 0.3, 0.2)
	rr, defined, err := stats.RelativeRisk(s, 0, 1)
	require.NoError(t, err)
	assert.False(t, defined)
	assert.Equal(t, 0.0, rr)
}

// TestAssociationRequiresBinary tests rejection of multi-valued variables
func TestAssociationRequiresBinary(t *testing.T) {
	weather := core.Variable{Name: "Weather", States: []string{"Sunny", "Rainy", "Snowy"}}
	s, err := core.NewSystem(
		[]core.Variable{weather, core.BinaryVariable("Late")},
		[]core.Entry{
			{Values: core.Assignment{0, 0}, Prob: 0.4},
			{Values: core.Assignment{0, 1}, Prob: 0.1},
			{Values: core.Assignment{1, 0}, Prob: 0.1},
			{Values: core.Assignment{1, 1}, Prob: 0.2},
			{Values: core.Assignment{2, 0}, Prob: 0.05},
			{Values: core.Assignment{2, 1}, Prob: 0.15},
		},
		core.Options{},
	)
	require.NoError(t, err)

	_, _, err = stats.OddsRatio(s, 0, 1)
	assert.ErrorContains(t, err, "not binary")

	_, _, err = stats.RelativeRisk(s, 0, 1)
	assert.ErrorContains(t, err, "not binary")
}

// TestAssociationRejectsBadIndex tests index validation
func TestAssociationRejectsBadIndex(t *testing.T) {
	s := twoVar(t, 0.4, 0.3, 0.2, 0.1)
	_, _, err := stats.OddsRatio(s, 0, 5)
	require.Error(t, err)
	var oor *core.OutOfRangeError
	assert.ErrorAs(t, err, &oor)
}
