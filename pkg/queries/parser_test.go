/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser_test.go
Description: Tests for the textual query layer: probability and independence
query forms, negation syntax, named-state assignments, and the single-letter
fallback convention.
*/

package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/queries"
)

// rainLate is the 0.4/0.3/0.2/0.1 table over Rain and Late
func rainLate(t *testing.T) *core.System {
	t.Helper()
	s, err := core.NewSystem(
		[]core.Variable{core.BinaryVariable("Rain"), core.BinaryVariable("Late")},
		[]core.Entry{
			{Values: core.Assignment{0, 0}, Prob: 0.4},
			{Values: core.Assignment{0, 1}, Prob: 0.3},
			{Values: core.Assignment{1, 0}, Prob: 0.2},
			{Values: core.Assignment{1, 1}, Prob: 0.1},
		},
		core.Options{},
	)
	require.NoError(t, err)
	return s
}

func weather(t *testing.T) *core.System {
	t.Helper()
	s, err := core.NewSystem(
		[]core.Variable{
			{Name: "Weather", States: []string{"Sunny", "Rainy"}},
			{Name: "Traffic", States: []string{"Light", "Heavy"}},
		},
		[]core.Entry{
			{Values: core.Assignment{0, 0}, Prob: 0.42},
			{Values: core.Assignment{0, 1}, Prob: 0.18},
			{Values: core.Assignment{1, 0}, Prob: 0.08},
			{Values: core.Assignment{1, 1}, Prob: 0.32},
		},
		core.Options{},
	)
	require.NoError(t, err)
	return s
}

// TestEvaluateMarginal tests P(X) and P(X,Y) forms
func TestEvaluateMarginal(t *testing.T) {
	s := rainLate(t)

	r, err := queries.Evaluate(s, "P(Rain)")
	require.NoError(t, err)
	assert.Equal(t, queries.KindProbability, r.Kind)
	assert.InDelta(t, 0.3, r.Prob, 1e-12)

	r, err = queries.Evaluate(s, "P(Rain, Late)")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, r.Prob, 1e-12)
}

// TestEvaluateNegation tests ~X, Not(X), and ~(X) forms
func TestEvaluateNegation(t *testing.T) {
	s := rainLate(t)

	for _, q := range []string{"P(~Rain)", "P(Not(Rain))", "P(~(Rain))"} {
		r, err := queries.Evaluate(s, q)
		require.NoError(t, err, q)
		assert.InDelta(t, 0.7, r.Prob, 1e-12, q)
	}

	r, err := queries.Evaluate(s, "P(Rain, ~Late)")
	require.NoError(t, err)
	assert.InDelta(t, 0.2, r.Prob, 1e-12)
}

// TestEvaluateConditional tests P(X|Y) forms
func TestEvaluateConditional(t *testing.T) {
	s := rainLate(t)

	// P(Late | Rain) = 0.1 / 0.3
	r, err := queries.Evaluate(s, "P(Late | Rain)")
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, r.Prob, 1e-12)

	// P(Late | ~Rain) = 0.3 / 0.7
	r, err = queries.Evaluate(s, "P(Late | ~Rain)")
	require.NoError(t, err)
	assert.InDelta(t, 3.0/7.0, r.Prob, 1e-12)
}

// TestEvaluateNamedStates tests explicit '=<state>' assignments on
// multi-valued variables
func TestEvaluateNamedStates(t *testing.T) {
	s := weather(t)

	r, err := queries.Evaluate(s, "P(Weather=Rainy)")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, r.Prob, 1e-12)

	// P(Traffic=Heavy | Weather=Sunny) = 0.18 / 0.6
	r, err = queries.Evaluate(s, "P(Traffic=Heavy | Weather=Sunny)")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, r.Prob, 1e-12)

	_, err = queries.Evaluate(s, "P(Weather=Foggy)")
	assert.ErrorContains(t, err, "not a state")
}

// TestEvaluateSingleLetterFallback tests that 'B' resolves positionally when
// no variable carries that literal name
func TestEvaluateSingleLetterFallback(t *testing.T) {
	s := rainLate(t)

	// B is the second variable, Late
	r, err := queries.Evaluate(s, "P(B)")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, r.Prob, 1e-12)

	_, err = queries.Evaluate(s, "P(E)")
	assert.ErrorContains(t, err, "out of range")
}

// TestEvaluateIndependence tests IsIndep and IsCondIndep queries
func TestEvaluateIndependence(t *testing.T) {
	dependent := rainLate(t)
	r, err := queries.Evaluate(dependent, "IsIndep(Rain, Late)")
	require.NoError(t, err)
	assert.Equal(t, queries.KindBoolean, r.Kind)
	assert.False(t, r.Truth)
	assert.Equal(t, "No", r.String())

	// exact product table: marginals 0.6/0.4 and 0.7/0.3
	independent, err := core.NewSystem(
		[]core.Variable{core.BinaryVariable("Rain"), core.BinaryVariable("Late")},
		[]core.Entry{
			{Values: core.Assignment{0, 0}, Prob: 0.42},
			{Values: core.Assignment{0, 1}, Prob: 0.18},
			{Values: core.Assignment{1, 0}, Prob: 0.28},
			{Values: core.Assignment{1, 1}, Prob: 0.12},
		},
		core.Options{},
	)
	require.NoError(t, err)

	r, err = queries.Evaluate(independent, "IsIndep(Rain, Late)")
	require.NoError(t, err)
	assert.True(t, r.Truth)
	assert.Equal(t, "Yes", r.String())
}

// TestEvaluateConditionalIndependence tests the IsCondIndep(A,B|C) form on a
// chain where the middle variable screens off the ends
func TestEvaluateConditionalIndependence(t *testing.T) {
	vars := []core.Variable{
		core.BinaryVariable("A"),
		core.BinaryVariable("B"),
		core.BinaryVariable("C"),
	}
	pa := []float64{0.6, 0.4}
	pbGivenA := [][]float64{{0.8, 0.2}, {0.3, 0.7}}
	pcGivenB := [][]float64{{0.9, 0.1}, {0.1, 0.9}}

	var entries []core.Entry
	for _, a := range core.EnumerateAssignments(vars) {
		prob := pa[a[0]] * pbGivenA[a[0]][a[1]] * pcGivenB[a[1]][a[2]]
		entries = append(entries, core.Entry{Values: a, Prob: prob})
	}
	s, err := core.NewSystem(vars, entries, core.Options{})
	require.NoError(t, err)

	r, err := queries.Evaluate(s, "IsCondIndep(A, C | B)")
	require.NoError(t, err)
	assert.True(t, r.Truth)

	r, err = queries.Evaluate(s, "IsIndep(A, C)")
	require.NoError(t, err)
	assert.False(t, r.Truth)
}

// TestEvaluateRejectsUnknownForms tests the error paths of the dispatcher
func TestEvaluateRejectsUnknownForms(t *testing.T) {
	s := rainLate(t)
	for _, q := range []string{"Q(Rain)", "", "IsIndep(Rain)", "P(Ghost)"} {
		_, err := queries.Evaluate(s, q)
		assert.Error(t, err, q)
	}
}

// TestEvaluateConflictingToken tests rejection of '~X=state' with a non-zero
// state
func TestEvaluateConflictingToken(t *testing.T) {
	s := weather(t)
	_, err := queries.Evaluate(s, "P(~Weather=Rainy)")
	assert.ErrorContains(t, err, "conflicting")
}

// TestEvaluateArithmetic tests expressions mixing P(...) terms and numbers
func TestEvaluateArithmetic(t *testing.T) {
	s := rainLate(t)

	// P(Rain,Late)/P(Rain) is the conditional by hand
	v, err := queries.EvaluateArithmetic(s, "P(Rain, Late) / P(Rain)")
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, v, 1e-12)

	v, err = queries.EvaluateArithmetic(s, "2 * P(Late) - 0.3")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	v, err = queries.EvaluateArithmetic(s, "(P(Rain) + P(~Rain)) * -1")
	require.NoError(t, err)
	assert.InDelta(t, -1.0, v, 1e-12)
}

// TestEvaluateArithmeticDivisionByZero tests the guarded divide
func TestEvaluateArithmeticDivisionByZero(t *testing.T) {
	s := rainLate(t)
	_, err := queries.EvaluateArithmetic(s, "1 / (P(Rain) - P(Rain))")
	assert.ErrorContains(t, err, "division by zero")
}

// TestEvaluateArithmeticMalformed tests rejection of garbage expressions
func TestEvaluateArithmeticMalformed(t *testing.T) {
	s := rainLate(t)
	for _, expr := range []string{"P(Rain) +", "1 + foo", "(1 + 2", "P(Ghost) + 1"} {
		_, err := queries.EvaluateArithmetic(s, expr)
		assert.Error(t, err, expr)
	}
}
