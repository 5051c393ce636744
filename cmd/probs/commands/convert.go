/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: convert.go
Description: Convert command implementation for probs. Expands a Bayesian
network file into the full joint distribution and writes it as an enumerated
table file.
*/

package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kleascm/probs/pkg/format"
)

// RunConvert converts a network file to an enumerated table
func RunConvert(cmd *cobra.Command, args []string) error {
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

	if err := format.Save(args[1], s); err != nil {
		return fmt.Errorf("failed to save %s: %w", args[1], err)
	}
	logrus.WithFields(logrus.Fields{
		"path":        args[1],
		"assignments": len(s.Assignments()),
	}).Info("Distribution saved")

	fmt.Printf("Wrote %d assignments to %s\n", len(s.Assignments()), args[1])
	return nil
}
