/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: query.go
Description: Query command implementation for probs. Evaluates probability,
independence, and arithmetic queries against a loaded distribution with
per-query timing and optional session metrics output.
*/

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/interfaces"
	"github.com/kleascm/probs/pkg/queries"
	"github.com/kleascm/probs/pkg/report"
	"github.com/kleascm/probs/pkg/utils"
)

// RunQuery evaluates query strings against a loaded distribution
func RunQuery(cmd *cobra.Command, args []string) error {
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
	metrics := &interfaces.SessionMetrics{
		SessionID:   report.NewSessionID(),
		InputPath:   args[0],
		Variables:   s.NumVariables(),
		Assignments: len(s.Assignments()),
		Config:      Config(args[0]),
		StartTime:   time.Now(),
	}

	var firstErr error
	for _, query := range args[1:] {
		record := evaluateQuery(s, f, query)
		metrics.Queries = append(metrics.Queries, record)

		if record.Error != "" {
			fmt.Printf("%s: error: %s\n", query, record.Error)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %s", query, record.Error)
			}
			continue
		}
		fmt.Printf("%s = %s\n", query, record.Result)
	}
	metrics.EndTime = time.Now()

	if viper.GetBool("query.metrics") {
		path, err := utils.WriteMetricsResult("query", "1.0.0", metrics)
		if err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logrus.WithField("path", path).Info("Session metrics written")
	}

	return firstErr
}

// evaluateQuery evaluates one query string, falling back to arithmetic
// evaluation when the string is not a plain query
func evaluateQuery(s *core.System, f *report.Formatter, query string) (record interfaces.QueryRecord) {
	record = interfaces.QueryRecord{
		Query:     query,
		Timestamp: time.Now(),
	}
	start := time.Now()
	defer func() {
		record.Duration = time.Since(start)
		logrus.WithFields(logrus.Fields{
			"query":    query,
			"result":   record.Result,
			"duration": record.Duration,
		}).Info("Query evaluated")
	}()

	if isArithmetic(query) {
		v, err := queries.EvaluateArithmetic(s, query)
		if err != nil {
			record.Error = err.Error()
			return record
		}
		record.Result = f.Prob(v)
		return record
	}

	result, err := queries.Evaluate(s, query)
	if err != nil {
		record.Error = err.Error()
		return record
	}
	if result.Kind == queries.KindProbability {
		record.Result = f.Prob(result.Prob)
	} else {
		record.Result = result.String()
	}
	return record
}

// isArithmetic reports whether a query combines probability terms with
// operators rather than being a single plain query
func isArithmetic(query string) bool {
	trimmed := strings.TrimSpace(query)
	if strings.HasPrefix(trimmed, "IsIndep(") || strings.HasPrefix(trimmed, "IsCondIndep(") {
		return false
	}
	if !strings.HasPrefix(trimmed, "P(") {
		// '2 * P(A)' style expressions lead with a number or sign
		return strings.Contains(trimmed, "P(")
	}
	depth := 0
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(trimmed)-1 {
				return true
			}
		}
	}
	return false
}
