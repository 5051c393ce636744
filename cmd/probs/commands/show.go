/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: show.go
Description: Show command implementation for probs. Loads a joint distribution
and displays its variables, joint table, marginals, and independence structure
on standard output.
*/

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunShow displays a loaded distribution
func RunShow(cmd *cobra.Command, args []string) error {
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

	f := newFormatter()

	if err := f.WriteSummary(os.Stdout, s); err != nil {
		return err
	}
	fmt.Println()

	if err := f.WriteVariables(os.Stdout, s); err != nil {
		return err
	}

	if viper.GetBool("show.joint") {
		fmt.Println()
		if err := f.WriteJointTable(os.Stdout, s); err != nil {
			return err
		}
	}

	if viper.GetBool("show.marginals") {
		fmt.Println()
		if err := f.WriteMarginals(os.Stdout, s); err != nil {
			return err
		}
	}

	if viper.GetBool("show.independence") {
		fmt.Println()
		if err := f.WriteIndependenceTable(os.Stdout, s); err != nil {
			return err
		}
	}

	if given := viper.GetString("show.given"); given != "" {
		g, err := resolveVariable(s, given)
		if err != nil {
			return err
		}
		fmt.Println()
		if err := f.WriteConditionalIndependenceTable(os.Stdout, s, g); err != nil {
			return err
		}
	}

	if cond := viper.GetString("show.conditional"); cond != "" {
		parts := strings.SplitN(cond, "|", 2)
		if len(parts) != 2 {
			return fmt.Errorf("expected Target|Condition, got %q", cond)
		}
		target, err := resolveVariable(s, parts[0])
		if err != nil {
			return err
		}
		condition, err := resolveVariable(s, parts[1])
		if err != nil {
			return err
		}
		fmt.Println()
		if err := f.WriteConditionalTable(os.Stdout, s, target, condition); err != nil {
			return err
		}
	}

	return nil
}
