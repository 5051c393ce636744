/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for probs. Provides comprehensive
command-line options, configuration management, and a beautiful user interface
for querying joint probability distributions with advanced logging capabilities.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/probs/cmd/probs/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Loader configuration
	tolerateDeviation bool
	zeroFill          bool
	variableNames     []string

	// Presentation configuration
	precision int

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logCompress bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "probs",
		Short: "Probs - Probability systems query engine",
		Long: `Probs is a query engine for finite joint probability distributions over
discrete random variables. It loads distributions from enumerated tables or
Bayesian network files, answers marginal, conditional, and independence
queries, and computes information-theoretic and epidemiological measures.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")

	// Add loader flags
	rootCmd.PersistentFlags().BoolVar(&tolerateDeviation, "tolerate-deviation", true, "Auto-normalize tables with minor total deviation")
	rootCmd.PersistentFlags().BoolVar(&zeroFill, "zero-fill", true, "Fill missing assignments with zero probability")
	rootCmd.PersistentFlags().StringSliceVar(&variableNames, "names", []string{}, "Variable names overriding the file header")

	// Add presentation flags
	rootCmd.PersistentFlags().IntVar(&precision, "precision", 6, "Digits after the decimal point in output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_compress", rootCmd.PersistentFlags().Lookup("log-compress"))
	viper.BindPFlag("tolerate_deviation", rootCmd.PersistentFlags().Lookup("tolerate-deviation"))
	viper.BindPFlag("zero_fill", rootCmd.PersistentFlags().Lookup("zero-fill"))
	viper.BindPFlag("names", rootCmd.PersistentFlags().Lookup("names"))
	viper.BindPFlag("precision", rootCmd.PersistentFlags().Lookup("precision"))

	// Add show command
	showCmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display a joint distribution",
		Long: `Load a joint distribution from an enumerated table (.inp) or Bayesian
network (.net) file and display its variables, joint table, marginals,
and independence structure.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunShow,
	}

	showCmd.Flags().Bool("joint", true, "Print the full joint table")
	showCmd.Flags().Bool("marginals", false, "Print marginal distributions")
	showCmd.Flags().Bool("independence", false, "Print the pairwise independence matrix")
	showCmd.Flags().String("given", "", "Print the conditional independence matrix given this variable")
	showCmd.Flags().String("conditional", "", "Print a conditional table (format: Target|Condition)")

	viper.BindPFlag("show.joint", showCmd.Flags().Lookup("joint"))
	viper.BindPFlag("show.marginals", showCmd.Flags().Lookup("marginals"))
	viper.BindPFlag("show.independence", showCmd.Flags().Lookup("independence"))
	viper.BindPFlag("show.given", showCmd.Flags().Lookup("given"))
	viper.BindPFlag("show.conditional", showCmd.Flags().Lookup("conditional"))

	rootCmd.AddCommand(showCmd)

	// Add query command
	queryCmd := &cobra.Command{
		Use:   "query <file> <query>...",
		Short: "Evaluate probability and independence queries",
		Long: `Evaluate one or more query strings against a loaded distribution. Supports
probability queries like "P(A, ~B)", conditional queries like "P(A | B)",
independence queries like "IsIndep(A, B)" and "IsCondIndep(A, B | C)", and
arithmetic expressions combining probability terms, e.g. "P(A, B) / P(B)".`,
		Args: cobra.MinimumNArgs(2),
		RunE: commands.RunQuery,
	}

	queryCmd.Flags().Bool("metrics", false, "Write session metrics JSON to the metrics directory")
	viper.BindPFlag("query.metrics", queryCmd.Flags().Lookup("metrics"))

	rootCmd.AddCommand(queryCmd)

	// Add stats command
	statsCmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Compute information-theoretic and association measures",
		Long: `Compute entropy, conditional entropy, mutual information, odds ratio,
and relative risk for variables of a loaded distribution.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunStats,
	}

	statsCmd.Flags().StringSlice("entropy", []string{}, "Variables for entropy (empty = full joint)")
	statsCmd.Flags().StringSlice("entropy-given", []string{}, "Conditioning variables for conditional entropy")
	statsCmd.Flags().Float64("base", 2, "Logarithm base for entropy measures")
	statsCmd.Flags().String("mutual", "", "Mutual information pair (format: X,Y)")
	statsCmd.Flags().String("odds-ratio", "", "Odds ratio pair (format: Exposure,Outcome)")
	statsCmd.Flags().String("relative-risk", "", "Relative risk pair (format: Exposure,Outcome)")

	viper.BindPFlag("stats.entropy", statsCmd.Flags().Lookup("entropy"))
	viper.BindPFlag("stats.entropy_given", statsCmd.Flags().Lookup("entropy-given"))
	viper.BindPFlag("stats.base", statsCmd.Flags().Lookup("base"))
	viper.BindPFlag("stats.mutual", statsCmd.Flags().Lookup("mutual"))
	viper.BindPFlag("stats.odds_ratio", statsCmd.Flags().Lookup("odds-ratio"))
	viper.BindPFlag("stats.relative_risk", statsCmd.Flags().Lookup("relative-risk"))

	rootCmd.AddCommand(statsCmd)

	// Add sample command
	sampleCmd := &cobra.Command{
		Use:   "sample <file>",
		Short: "Draw random samples from a distribution",
		Long: `Draw independent samples from the joint distribution using inverse
transform sampling and print one assignment per line.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunSample,
	}

	sampleCmd.Flags().Int("n", 10, "Number of samples to draw")
	sampleCmd.Flags().Int64("seed", 0, "Random seed (0 = time-based)")

	viper.BindPFlag("sample.n", sampleCmd.Flags().Lookup("n"))
	viper.BindPFlag("sample.seed", sampleCmd.Flags().Lookup("seed"))

	rootCmd.AddCommand(sampleCmd)

	// Add convert command
	convertCmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a network file to an enumerated table",
		Long: `Load a Bayesian network (.net) file, expand it into the full joint
distribution, and write the result as an enumerated table (.inp) file.`,
		Args: cobra.ExactArgs(2),
		RunE: commands.RunConvert,
	}

	rootCmd.AddCommand(convertCmd)

	// Add report command
	reportCmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Generate a beautiful HTML report",
		Long: `Generate a comprehensive HTML report for a loaded distribution with
summary cards, marginal charts, the joint table, the pairwise independence
matrix, and the results of any supplied queries.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunReport,
	}

	reportCmd.Flags().String("output-dir", "./reports", "Output directory for report files")
	reportCmd.Flags().String("title", "Probs Report", "Report title")
	reportCmd.Flags().StringSlice("queries", []string{}, "Queries to evaluate and include in the report")

	viper.BindPFlag("report.output_dir", reportCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("report.title", reportCmd.Flags().Lookup("title"))
	viper.BindPFlag("report.queries", reportCmd.Flags().Lookup("queries"))

	rootCmd.AddCommand(reportCmd)

	// Add repl command
	replCmd := &cobra.Command{
		Use:   "repl <file>",
		Short: "Interactive query session",
		Long: `Start an interactive session against a loaded distribution. Each line is
evaluated as a query or arithmetic expression; "exit" or EOF ends the session.
Session commands: help, open <file>, save <file>, precision <digits>.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunRepl,
	}

	rootCmd.AddCommand(replCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
