/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: repl.go
Description: Interactive query session for probs. Reads queries line by line
from standard input and evaluates each against the loaded distribution until
"exit" or EOF. Also accepts session commands: help, open, save, and precision.
*/

package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/format"
	"github.com/kleascm/probs/pkg/report"
)

// RunRepl starts an interactive query session
func RunRepl(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	s, err := loadSystem(args[0])
	if err != nil {
		return err
	}

	return runSession(s, newFormatter(), args[0], os.Stdin, os.Stdout)
}

// runSession drives the read-eval-print loop over the given streams. The
// loaded system and formatter can change mid-session via open and precision.
func runSession(s *core.System, f *report.Formatter, path string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Loaded %s with %d variables. Type a query, \"help\" for commands, or \"exit\" to quit.\n",
		path, s.NumVariables())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "probs> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "help":
			printSessionHelp(out)
			continue
		case "open":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: open <file>")
				continue
			}
			loaded, err := loadSystem(fields[1])
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				continue
			}
			s = loaded
			path = fields[1]
			fmt.Fprintf(out, "Loaded %s with %d variables.\n", path, s.NumVariables())
			continue
		case "save":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: save <file>")
				continue
			}
			if err := format.Save(fields[1], s); err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				continue
			}
			fmt.Fprintf(out, "Saved %s.\n", fields[1])
			continue
		case "precision":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: precision <digits>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				fmt.Fprintln(out, "precision must be a positive integer")
				continue
			}
			f = &report.Formatter{Precision: n}
			continue
		}

		record := evaluateQuery(s, f, line)
		if record.Error != "" {
			fmt.Fprintf(out, "error: %s\n", record.Error)
			continue
		}
		fmt.Fprintln(out, record.Result)
	}

	return scanner.Err()
}

func printSessionHelp(out io.Writer) {
	fmt.Fprint(out, `Queries:
  P(A)  P(A,~B|C)  P(Weather=Rainy)     probability of an event
  IsIndep(A,B)  IsCondIndep(A,B|C)      independence tests
  P(A,B)/P(B)  2*P(A)-1                 arithmetic over probabilities
Commands:
  open <file>          load a different distribution
  save <file>          write the current table in enumerated format
  precision <digits>   set output precision
  help                 show this text
  exit                 leave the session
`)
}
