/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for probs commands. Provides common configuration
loading, logging setup, distribution loading, and variable resolution used
across all command implementations.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/format"
	"github.com/kleascm/probs/pkg/interfaces"
	"github.com/kleascm/probs/pkg/logging"
	"github.com/kleascm/probs/pkg/queries"
	"github.com/kleascm/probs/pkg/report"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("PROBS")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system. When a log directory is
// configured the engine logger takes over: file output, rotation, and the
// engine formatter, mirrored onto the standard logger.
func SetupLogging() error {
	logLevel := viper.GetString("log_level")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)

	if dir := viper.GetString("log_dir"); dir != "" {
		logFormat := logging.LogFormat(viper.GetString("log_format"))
		if viper.GetBool("json_logs") {
			logFormat = logging.LogFormatJSON
		}
		config := &logging.LoggerConfig{
			Level:     logging.LogLevel(logLevel),
			Format:    logFormat,
			OutputDir: dir,
			MaxFiles:  viper.GetInt("log_max_files"),
			MaxSize:   viper.GetInt64("log_max_size"),
			Timestamp: true,
			Colors:    false,
			Compress:  viper.GetBool("log_compress"),
		}
		engineLogger, err := logging.NewLogger(config)
		if err != nil {
			return fmt.Errorf("failed to setup file logging: %w", err)
		}
		std := logrus.StandardLogger()
		std.SetOutput(engineLogger.GetLogger().Out)
		std.SetFormatter(engineLogger.GetLogger().Formatter)
		return nil
	}

	if viper.GetBool("json_logs") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return nil
}

// Config snapshots the bound configuration for session records
func Config(inputPath string) interfaces.EngineConfig {
	return interfaces.EngineConfig{
		InputPath:  inputPath,
		OutputDir:  viper.GetString("report.output_dir"),
		Precision:  viper.GetInt("precision"),
		Base:       viper.GetFloat64("stats.base"),
		Samples:    viper.GetInt("sample.n"),
		Seed:       viper.GetInt64("sample.seed"),
		Tolerate:   viper.GetBool("tolerate_deviation"),
		ZeroFill:   viper.GetBool("zero_fill"),
		Names:      viper.GetStringSlice("names"),
		Queries:    viper.GetStringSlice("report.queries"),
		LogLevel:   viper.GetString("log_level"),
		LogFile:    viper.GetString("log_dir"),
		JSONLogs:   viper.GetBool("json_logs"),
		HTMLReport: viper.GetString("report.output_dir") != "",
	}
}

// loaderOptions assembles loader options from the bound configuration
func loaderOptions() format.LoaderOptions {
	opts := format.LoaderOptions{
		TolerateMinorDeviation: viper.GetBool("tolerate_deviation"),
		ZeroFillMissing:        viper.GetBool("zero_fill"),
	}
	if names := viper.GetStringSlice("names"); len(names) > 0 {
		opts.Names = names
	}
	return opts
}

// loadSystem loads a distribution honoring the configured loader options
func loadSystem(path string) (*core.System, error) {
	s, err := format.Load(path, loaderOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"path":        path,
		"variables":   s.NumVariables(),
		"assignments": len(s.Assignments()),
	}).Info("Distribution loaded")
	return s, nil
}

// newFormatter assembles a text formatter from the bound configuration
func newFormatter() *report.Formatter {
	return &report.Formatter{Precision: viper.GetInt("precision")}
}

// resolveVariable maps a variable name to its index in the system, honoring
// the same single-letter positional fallback the query language uses so that
// flags like --odds-ratio=A,B and queries like P(A) agree on what A means
func resolveVariable(s *core.System, name string) (int, error) {
	return queries.ResolveVariable(s, name)
}

// resolvePair parses "X,Y" into two variable indices
func resolvePair(s *core.System, spec string) (int, int, error) {
	parts := strings.SplitN(spec, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two comma-separated variables, got %q", spec)
	}
	x, err := resolveVariable(s, parts[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := resolveVariable(s, parts[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
