/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Report command implementation for probs. Generates a comprehensive
HTML report for a loaded distribution, including summary cards, marginal
charts, the joint table, the independence matrix, and query results.
*/

package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/probs/pkg/interfaces"
	"github.com/kleascm/probs/pkg/report"
)

// RunReport generates an HTML report for a loaded distribution
func RunReport(cmd *cobra.Command, args []string) error {
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

	var records []interfaces.QueryRecord
	for _, query := range viper.GetStringSlice("report.queries") {
		records = append(records, evaluateQuery(s, f, query))
	}

	generator := report.NewGenerator(viper.GetString("report.output_dir"), logrus.StandardLogger(), f)
	data, err := generator.Build(
		viper.GetString("report.title"),
		args[0],
		cmd.Root().Version,
		report.NewSessionID(),
		s,
		records,
	)
	if err != nil {
		return fmt.Errorf("failed to build report data: %w", err)
	}

	path, err := generator.Generate(data)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}
