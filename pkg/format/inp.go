/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inp.go
Description: Enumerated joint format (.inp) reader and writer. Each line gives
one explicit joint entry as '<binary-string>: <probability>'; completion of
missing entries is delegated to the store's named policies.
*/

package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/probs/pkg/core"
)

// LoaderOptions are the named toggles for the loader's convenience policies.
// They map one-to-one onto the store's completion options.
type LoaderOptions struct {
	// TolerateMinorDeviation auto-normalizes totals within 5% of 1
	TolerateMinorDeviation bool
	// ZeroFillMissing treats absent assignments as probability 0 when more
	// than one is missing
	ZeroFillMissing bool
	// Names overrides the file's variable names when non-nil
	Names []string
}

// DefaultLoaderOptions matches the historical lenient loader behavior
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{TolerateMinorDeviation: true, ZeroFillMissing: true}
}

func (o LoaderOptions) coreOptions() core.Options {
	return core.Options{
		TolerateMinorDeviation: o.TolerateMinorDeviation,
		ZeroFillMissing:        o.ZeroFillMissing,
	}
}

// ReadJoint parses an enumerated joint table from r and builds a system.
// Variables are binary; the variable count is taken from the first entry's
// bit-string length and every entry must agree.
func ReadJoint(r io.Reader, opts LoaderOptions) (*core.System, error) {
	lines, err := cleanLines(r)
	if err != nil {
		return nil, err
	}

	var fileNames []string
	var entries []core.Entry
	numVariables := 0

	for _, ln := range lines {
		if names, ok := headerNames(ln.text); ok {
			fileNames = names
			continue
		}

		left, right, ok := splitEntry(ln.text)
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format: %s", ln.num, ln.text)
		}
		if !isBits(left) {
			return nil, fmt.Errorf("line %d: invalid binary pattern: %s", ln.num, left)
		}
		prob, err := strconv.ParseFloat(right, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid probability: %s", ln.num, right)
		}
		if prob < 0 || prob > 1 {
			return nil, fmt.Errorf("line %d: probability must be between 0 and 1: %v", ln.num, prob)
		}

		if numVariables == 0 {
			numVariables = len(left)
		} else if len(left) != numVariables {
			return nil, fmt.Errorf("line %d: inconsistent binary pattern length: %s", ln.num, left)
		}

		values := make(core.Assignment, len(left))
		for i, c := range left {
			values[i] = int(c - '0')
		}
		entries = append(entries, core.Entry{Values: values, Prob: prob})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid probability entries found")
	}

	names := opts.Names
	if names == nil {
		names = fileNames
	}
	if names != nil && len(names) != numVariables {
		logrus.Warnf("expected %d variable names, got %d; using default names", numVariables, len(names))
		names = nil
	}
	if names == nil {
		names = core.DefaultVariableNames(numVariables)
	}

	vars := make([]core.Variable, numVariables)
	for i, name := range names {
		vars[i] = core.BinaryVariable(name)
	}

	return core.NewSystem(vars, entries, opts.coreOptions())
}

// WriteJoint saves a binary system in the enumerated joint format with fixed
// 10-decimal probabilities, one assignment per line in canonical order.
// Multi-valued systems have no bit-string encoding and are rejected.
func WriteJoint(w io.Writer, s *core.System) error {
	for _, v := range s.Variables() {
		if !v.Binary() {
			return fmt.Errorf("variable %s is not binary; the enumerated format holds boolean tables only", v.Name)
		}
	}

	if _, err := fmt.Fprintf(w, "variables: %s\n", strings.Join(s.VariableNames(), ",")); err != nil {
		return err
	}

	for _, a := range s.Assignments() {
		bits := make([]byte, len(a))
		for i, v := range a {
			bits[i] = byte('0' + v)
		}
		if _, err := fmt.Fprintf(w, "%s: %.10f\n", bits, s.JointProbability(a)); err != nil {
			return err
		}
	}
	return nil
}
