/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: load.go
Description: Entry points for loading and saving probability files. Dispatches
on file extension (.net for Bayesian networks, anything else for enumerated
joint tables) and on the network variant detected from the first line.
*/

package format

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/network"
)

// Load reads a probability file and builds a fresh system. '.net' files are
// parsed as Bayesian networks and factorized; everything else is read as an
// enumerated joint table.
func Load(path string, opts LoaderOptions) (*core.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".net") {
		sys, err := ReadNetwork(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return sys, nil
	}

	sys, err := ReadJoint(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sys, nil
}

// ReadNetwork parses either network variant from r and factorizes it into a
// joint distribution. The multi-valued variant opens with 'variable'
// declarations; the binary legacy variant opens with a 'variables:' header.
func ReadNetwork(r io.Reader) (*core.System, error) {
	lines, err := cleanLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty network file")
	}

	spec, err := parseNetwork(lines)
	if err != nil {
		return nil, err
	}
	return network.Factorize(spec)
}

// parseNetwork dispatches on the network variant and returns the raw spec
// without factorizing.
func parseNetwork(lines []line) (network.Spec, error) {
	if isMultiValued(lines) {
		return readMultiValuedNetwork(lines)
	}
	return readLegacyNetwork(lines)
}

// Save writes a system to path in the enumerated joint format
func Save(path string, s *core.System) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJoint(f, s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
