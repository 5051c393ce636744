/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Text presentation for joint distributions. Renders joint tables,
marginal summaries, independence matrices, and conditional probability tables
with configurable numeric precision.
*/

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/stats"
)

// DefaultPrecision is the number of significant digits used when no
// precision is configured.
const DefaultPrecision = 6

// Formatter renders probabilities and distribution tables as text.
// Precision controls the number of digits after the decimal point;
// zero or negative means DefaultPrecision.
type Formatter struct {
	Precision int
}

// NewFormatter returns a formatter with the default precision.
func NewFormatter() *Formatter {
	return &Formatter{Precision: DefaultPrecision}
}

func (f *Formatter) precision() int {
	if f == nil || f.Precision <= 0 {
		return DefaultPrecision
	}
	return f.Precision
}

// Prob formats a single probability value.
func (f *Formatter) Prob(p float64) string {
	return strconv.FormatFloat(p, 'f', f.precision(), 64)
}

// WriteVariables writes the variable catalog with state labels.
func (f *Formatter) WriteVariables(w io.Writer, s *core.System) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Variable\tStates")
	for _, v := range s.Variables() {
		fmt.Fprintf(tw, "%s\t{%s}\n", v.Name, strings.Join(v.States, ","))
	}
	return tw.Flush()
}

// WriteJointTable writes every assignment with its probability, in
// canonical enumeration order.
func (f *Formatter) WriteJointTable(w io.Writer, s *core.System) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tP\n", strings.Join(s.VariableNames(), " "))
	vars := s.Variables()
	for _, a := range s.Assignments() {
		labels := make([]string, len(a))
		for i, si := range a {
			labels[i] = vars[i].States[si]
		}
		fmt.Fprintf(tw, "%s\t%s\n", strings.Join(labels, " "), f.Prob(s.JointProbability(a)))
	}
	return tw.Flush()
}

// WriteMarginals writes the marginal distribution of every variable.
func (f *Formatter) WriteMarginals(w io.Writer, s *core.System) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Variable\tState\tP")
	for i, v := range s.Variables() {
		for si, state := range v.States {
			p, err := s.MarginalProbability([]int{i}, []int{si})
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, state, f.Prob(p))
		}
	}
	return tw.Flush()
}

// WriteIndependenceTable writes the pairwise independence matrix. Cell
// (i, j) holds "Yes" when variables i and j are independent under the
// joint distribution.
func (f *Formatter) WriteIndependenceTable(w io.Writer, s *core.System) error {
	n := s.NumVariables()
	names := s.VariableNames()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(names, "\t"))
	for i := 0; i < n; i++ {
		cells := make([]string, n)
		for j := 0; j < n; j++ {
			if i == j {
				cells[j] = "-"
				continue
			}
			ind, err := s.IsIndependent(i, j)
			if err != nil {
				return err
			}
			cells[j] = yesNo(ind)
		}
		fmt.Fprintf(tw, "%s\t%s\n", names[i], strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// WriteConditionalIndependenceTable writes the pairwise conditional
// independence matrix given a conditioning variable.
func (f *Formatter) WriteConditionalIndependenceTable(w io.Writer, s *core.System, given int) error {
	n := s.NumVariables()
	names := s.VariableNames()
	if given < 0 || given >= n {
		return &core.OutOfRangeError{What: "variable", Index: given, Limit: n}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "given %s\t%s\n", names[given], strings.Join(names, "\t"))
	for i := 0; i < n; i++ {
		cells := make([]string, n)
		for j := 0; j < n; j++ {
			if i == j || i == given || j == given {
				cells[j] = "-"
				continue
			}
			ind, err := s.IsConditionallyIndependent(i, j, given)
			if err != nil {
				return err
			}
			cells[j] = yesNo(ind)
		}
		fmt.Fprintf(tw, "%s\t%s\n", names[i], strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// WriteConditionalTable writes P(target | condition) for every state
// combination of one target and one conditioning variable.
func (f *Formatter) WriteConditionalTable(w io.Writer, s *core.System, target, condition int) error {
	tv, err := s.Variable(target)
	if err != nil {
		return err
	}
	cv, err := s.Variable(condition)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "P(%s | %s)\t%s\n", tv.Name, cv.Name, strings.Join(cv.States, "\t"))
	for ti, tstate := range tv.States {
		cells := make([]string, cv.Cardinality())
		for ci := range cv.States {
			p, err := s.ConditionalProbability([]int{target}, []int{ti}, []int{condition}, []int{ci})
			if err != nil {
				return err
			}
			cells[ci] = f.Prob(p)
		}
		fmt.Fprintf(tw, "%s=%s\t%s\n", tv.Name, tstate, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// WriteSummary writes a one-screen overview of the system: variables,
// assignment count, total mass, and joint entropy.
func (f *Formatter) WriteSummary(w io.Writer, s *core.System) error {
	h, err := stats.Entropy(s, nil, stats.DefaultBase)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Variables:   %d (%s)\n", s.NumVariables(), strings.Join(s.VariableNames(), ", "))
	fmt.Fprintf(w, "Assignments: %d\n", len(s.Assignments()))
	fmt.Fprintf(w, "Total mass:  %s\n", f.Prob(s.Total()))
	fmt.Fprintf(w, "Entropy:     %s bits\n", f.Prob(h))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
