/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: network_test.go
Description: Tests for both Bayesian network text variants: the binary legacy
format with bit-pattern CPT rows and the multi-valued format with named-state
declarations.
*/

package format_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/format"
	"github.com/kleascm/probs/pkg/network"
)

const legacyChain = `variables: A,B,C
A: None
1: 0.4
B: A
0: 0.2
1: 0.7
C: B
0: 0.1
1: 0.9
`

// TestReadLegacyNetwork tests the binary chain A -> B -> C
func TestReadLegacyNetwork(t *testing.T) {
	s, err := format.ReadNetwork(strings.NewReader(legacyChain))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, s.VariableNames())
	assert.Len(t, s.Assignments(), 8)

	// P(B=1) = 0.4*0.7 + 0.6*0.2
	pb, err := s.MarginalProbability([]int{1}, []int{1})
	require.NoError(t, err)
	assert.InDelta(t, 0.40, pb, 1e-12)
}

// TestReadLegacyNetworkZeroForm tests the '0: p' root shorthand meaning
// P(child=0)=p
func TestReadLegacyNetworkZeroForm(t *testing.T) {
	input := "variables: A\nA: None\n0: 0.3\n"
	s, err := format.ReadNetwork(strings.NewReader(input))
	require.NoError(t, err)

	p, err := s.MarginalProbability([]int{0}, []int{1})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, p, 1e-12)
}

// TestReadLegacyNetworkErrors tests structural rejections
func TestReadLegacyNetworkErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no header", "A: None\n1: 0.4\n"},
		{"undeclared child", "variables: A\nB: None\n1: 0.4\n"},
		{"undeclared parent", "variables: A,B\nA: None\n1: 0.4\nB: C\n0: 0.2\n1: 0.7\n"},
		{"self parent", "variables: A\nA: A\n0: 0.2\n1: 0.7\n"},
		{"incomplete cpt", "variables: A,B\nA: None\n1: 0.4\nB: A\n0: 0.2\n"},
		{"duplicate cpt row", "variables: A,B\nA: None\n1: 0.4\nB: A\n0: 0.2\n0: 0.3\n"},
		{"probability out of range", "variables: A\nA: None\n1: 1.4\n"},
		{"duplicate block", "variables: A\nA: None\n1: 0.4\nA: None\n1: 0.5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := format.ReadNetwork(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

// TestReadLegacyNetworkMissingBlock tests that every declared variable must
// receive a CPT block
func TestReadLegacyNetworkMissingBlock(t *testing.T) {
	input := "variables: A,B\nA: None\n1: 0.4\n"
	_, err := format.ReadNetwork(strings.NewReader(input))
	require.Error(t, err)
	var missing *network.MissingCPTError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "B", missing.Variable)
}

const weatherTraffic = `variable Weather {Sunny, Rainy}
variable Traffic {Light, Heavy}

Weather <- None
Sunny: 0.6
Rainy: 0.4

Traffic <- (Weather)
(Heavy | Sunny): 0.3
(Heavy | Rainy): 0.8
`

// TestReadMultiValuedNetwork tests the named-state variant with binary
// complement rows
func TestReadMultiValuedNetwork(t *testing.T) {
	s, err := format.ReadNetwork(strings.NewReader(weatherTraffic))
	require.NoError(t, err)

	assert.Equal(t, []string{"Weather", "Traffic"}, s.VariableNames())
	vars := s.Variables()
	assert.Equal(t, []string{"Sunny", "Rainy"}, vars[0].States)
	assert.Equal(t, []string{"Light", "Heavy"}, vars[1].States)

	// P(Traffic=Heavy | Weather=Sunny) is the declared CPT entry
	p, err := s.ConditionalProbability([]int{1}, []int{1}, []int{0}, []int{0})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, p, 1e-12)

	// (Light | Sunny) was never written; the complement rule fills it in
	p, err = s.ConditionalProbability([]int{1}, []int{0}, []int{0}, []int{0})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, p, 1e-12)
}

// TestReadMultiValuedThreeStates tests a fully enumerated three-state root
func TestReadMultiValuedThreeStates(t *testing.T) {
	input := `variable Weather {Sunny, Rainy, Snowy}
Weather <- None
Sunny: 0.5
Rainy: 0.3
Snowy: 0.2
`
	s, err := format.ReadNetwork(strings.NewReader(input))
	require.NoError(t, err)

	p, err := s.MarginalProbability([]int{0}, []int{2})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, p, 1e-12)
}

// TestReadMultiValuedImplicitBinary tests a bare 'variable Name' declaration
func TestReadMultiValuedImplicitBinary(t *testing.T) {
	input := "variable Rain\nRain <- None\n1: 0.25\n"
	s, err := format.ReadNetwork(strings.NewReader(input))
	require.NoError(t, err)

	vars := s.Variables()
	assert.Equal(t, []string{"0", "1"}, vars[0].States)
	p, err := s.MarginalProbability([]int{0}, []int{1})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p, 1e-12)
}

// TestReadMultiValuedErrors tests structural rejections in the state-aware
// variant
func TestReadMultiValuedErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"single state", "variable A {Only}\nA <- None\nOnly: 1.0\n"},
		{"unterminated states", "variable A {X, Y\nA <- None\nX: 0.5\n"},
		{"unknown child state", "variable A {X, Y}\nA <- None\nZ: 0.5\n"},
		{"unknown parent state", strings.Replace(weatherTraffic, "(Heavy | Rainy)", "(Heavy | Foggy)", 1)},
		{"bare row with parents", "variable A {X, Y}\nvariable B {P, Q}\nA <- None\nX: 0.5\nB <- (A)\nP: 0.5\n"},
		{"conditional row without parents", "variable A {X, Y}\nA <- None\n(X | Y): 0.5\n"},
		{"three-state missing row", "variable A {X, Y, Z}\nA <- None\nX: 0.5\nY: 0.3\n"},
		{"duplicate row", "variable A {X, Y}\nA <- None\nX: 0.5\nX: 0.6\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := format.ReadNetwork(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

// TestReadNetworkDispatch tests that the first meaningful line selects the
// variant
func TestReadNetworkDispatch(t *testing.T) {
	s, err := format.ReadNetwork(strings.NewReader("# comment first\n\n" + weatherTraffic))
	require.NoError(t, err)
	assert.Equal(t, 4, len(s.Assignments()))
}

// TestReadNetworkEmpty tests rejection of a file with no content
func TestReadNetworkEmpty(t *testing.T) {
	_, err := format.ReadNetwork(strings.NewReader("# nothing here\n"))
	assert.Error(t, err)
}

// TestLoadNetworkFile tests extension dispatch through the path entry point
func TestLoadNetworkFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/chain.net"
	require.NoError(t, writeFile(path, legacyChain))

	s, err := format.Load(path, format.DefaultLoaderOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.4, mustMarginal(t, s, 0, 1), 1e-12)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func mustMarginal(t *testing.T, s *core.System, variable, value int) float64 {
	t.Helper()
	p, err := s.MarginalProbability([]int{variable}, []int{value})
	require.NoError(t, err)
	return p
}
