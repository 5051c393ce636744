/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inp_test.go
Description: Tests for the enumerated joint format reader and writer: headers,
comments, loader policies, round-tripping, and rejection of malformed input.
*/

package format_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/format"
)

// TestReadJoint tests a complete two-variable table with header and comments
func TestReadJoint(t *testing.T) {
	input := `# joint table of rain and traffic
variables: Rain,Traffic
00: 0.4
01: 0.3   # light traffic, dry day
10: 0.2
11: 0.1
`
	s, err := format.ReadJoint(strings.NewReader(input), format.LoaderOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Rain", "Traffic"}, s.VariableNames())
	assert.InDelta(t, 0.3, s.JointProbability(core.Assignment{0, 1}), 1e-12)
	assert.InDelta(t, 1.0, s.Total(), 1e-12)
}

// TestReadJointDefaultNames tests name synthesis when no header is present
func TestReadJointDefaultNames(t *testing.T) {
	input := "00: 0.4\n01: 0.3\n10: 0.2\n11: 0.1\n"
	s, err := format.ReadJoint(strings.NewReader(input), format.LoaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, s.VariableNames())
}

// TestReadJointNameCountMismatch tests falling back to default names when the
// header disagrees with the pattern width
func TestReadJointNameCountMismatch(t *testing.T) {
	input := "variables: X,Y,Z\n00: 0.5\n01: 0.2\n10: 0.2\n11: 0.1\n"
	s, err := format.ReadJoint(strings.NewReader(input), format.LoaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, s.VariableNames())
}

// TestReadJointNameOverride tests that caller-supplied names win over the file
func TestReadJointNameOverride(t *testing.T) {
	input := "variables: X,Y\n00: 0.5\n01: 0.2\n10: 0.2\n11: 0.1\n"
	opts := format.LoaderOptions{Names: []string{"Rain", "Late"}}
	s, err := format.ReadJoint(strings.NewReader(input), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rain", "Late"}, s.VariableNames())
}

// TestReadJointInfersMissingEntry tests single-missing-assignment completion
func TestReadJointInfersMissingEntry(t *testing.T) {
	input := "00: 0.4\n01: 0.3\n10: 0.2\n"
	s, err := format.ReadJoint(strings.NewReader(input), format.LoaderOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, s.JointProbability(core.Assignment{1, 1}), 1e-12)
}

// TestReadJointZeroFill tests the zero-fill policy for sparse tables
func TestReadJointZeroFill(t *testing.T) {
	input := "00: 0.6\n11: 0.4\n"

	_, err := format.ReadJoint(strings.NewReader(input), format.LoaderOptions{})
	require.Error(t, err)
	var incomplete *core.IncompleteTableError
	assert.ErrorAs(t, err, &incomplete)

	s, err := format.ReadJoint(strings.NewReader(input), format.LoaderOptions{ZeroFillMissing: true})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.JointProbability(core.Assignment{0, 1}))
	assert.InDelta(t, 1.0, s.Total(), 1e-12)
}

// TestReadJointMalformed tests line-level rejections with source positions
func TestReadJointMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"bad pattern", "0x: 0.5\n11: 0.5\n"},
		{"bad probability", "00: lots\n"},
		{"probability above one", "00: 1.5\n"},
		{"missing colon", "00 0.5\n"},
		{"inconsistent width", "00: 0.5\n110: 0.5\n"},
		{"empty file", "# only comments\n\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := format.ReadJoint(strings.NewReader(tc.input), format.LoaderOptions{})
			assert.Error(t, err)
		})
	}
}

// TestWriteJointRoundTrip tests that saving and reloading preserves the table
func TestWriteJointRoundTrip(t *testing.T) {
	s, err := format.ReadJoint(strings.NewReader("variables: A,B\n00: 0.4\n01: 0.3\n10: 0.2\n11: 0.1\n"), format.LoaderOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.WriteJoint(&buf, s))

	reloaded, err := format.ReadJoint(&buf, format.LoaderOptions{})
	require.NoError(t, err)

	assert.Equal(t, s.VariableNames(), reloaded.VariableNames())
	for _, a := range s.Assignments() {
		assert.InDelta(t, s.JointProbability(a), reloaded.JointProbability(a), 1e-9)
	}
}

// TestWriteJointRejectsMultiValued tests that a multi-valued system has no
// bit-string encoding
func TestWriteJointRejectsMultiValued(t *testing.T) {
	s, err := core.NewSystem(
		[]core.Variable{{Name: "Weather", States: []string{"Sunny", "Rainy", "Snowy"}}},
		[]core.Entry{
			{Values: core.Assignment{0}, Prob: 0.5},
			{Values: core.Assignment{1}, Prob: 0.3},
			{Values: core.Assignment{2}, Prob: 0.2},
		},
		core.Options{},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = format.WriteJoint(&buf, s)
	assert.ErrorContains(t, err, "not binary")
}

// TestLoadAndSaveFiles tests the path-based entry points end to end
func TestLoadAndSaveFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "table.inp")
	out := filepath.Join(dir, "copy.inp")
	require.NoError(t, os.WriteFile(in, []byte("variables: A,B\n00: 0.4\n01: 0.3\n10: 0.2\n11: 0.1\n"), 0644))

	s, err := format.Load(in, format.DefaultLoaderOptions())
	require.NoError(t, err)
	require.NoError(t, format.Save(out, s))

	copied, err := format.Load(out, format.DefaultLoaderOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.3, copied.JointProbability(core.Assignment{0, 1}), 1e-9)
}

// TestLoadMissingFile tests the open error path
func TestLoadMissingFile(t *testing.T) {
	_, err := format.Load(filepath.Join(t.TempDir(), "absent.inp"), format.DefaultLoaderOptions())
	assert.ErrorContains(t, err, "failed to open")
}
