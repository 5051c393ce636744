/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Covers logger creation, config
validation, the engine formatter's message prefixes, engine-specific log
methods, and log file analysis.
*/

package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/probs/pkg/logging"
)

// TestLoggerCreation tests logger creation with different configurations
func TestLoggerCreation(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	logger.Close()

	config := &logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: t.TempDir(),
		MaxFiles:  5,
		MaxSize:   1024 * 1024,
		Timestamp: true,
		Colors:    false,
	}
	logger, err = logging.NewLogger(config)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	defer logger.Close()
}

// TestLoggerConfigValidation tests config validation rules
func TestLoggerConfigValidation(t *testing.T) {
	valid := logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatText,
		OutputDir: "./logs",
		MaxFiles:  10,
		MaxSize:   1024,
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*logging.LoggerConfig)
	}{
		{"empty output dir", func(c *logging.LoggerConfig) { c.OutputDir = "" }},
		{"zero max files", func(c *logging.LoggerConfig) { c.MaxFiles = 0 }},
		{"zero max size", func(c *logging.LoggerConfig) { c.MaxSize = 0 }},
		{"bad format", func(c *logging.LoggerConfig) { c.Format = "xml" }},
		{"bad level", func(c *logging.LoggerConfig) { c.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

// TestEngineLogMethods tests the engine-specific log methods end to end
func TestEngineLogMethods(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatCustom,
		OutputDir: dir,
		MaxFiles:  5,
		MaxSize:   1024 * 1024,
		Colors:    false,
	})
	require.NoError(t, err)

	logger.LogLoad("table.inp", 2, 4, nil)
	logger.LogFactorization(3, 8, 1.0, nil)
	logger.LogQuery("P(Rain)", "0.3", 50*time.Microsecond, nil)
	logger.LogSampling(100, time.Millisecond, nil)
	logger.LogSave("copy.inp", 4, nil)
	logger.Close()

	files, err := filepath.Glob(filepath.Join(dir, "probs_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	log := string(content)
	assert.Contains(t, log, "Distribution loaded")
	assert.Contains(t, log, "Network factorized")
	assert.Contains(t, log, "Query evaluated")
	assert.Contains(t, log, "Samples drawn")
	assert.Contains(t, log, "Distribution saved")
}

// TestEngineFormatterPrefixes tests the message-to-prefix mapping
func TestEngineFormatterPrefixes(t *testing.T) {
	formatter := &logging.EngineFormatter{}

	cases := map[string]string{
		"Distribution loaded": "[LOAD]",
		"Network factorized":  "[FACTOR]",
		"Query evaluated":     "[QUERY]",
		"Samples drawn":       "[SAMPLE]",
		"Distribution saved":  "[SAVE]",
		"Report generated":    "[REPORT]",
	}
	for msg, prefix := range cases {
		entry := &logrus.Entry{
			Logger:  logrus.New(),
			Level:   logrus.InfoLevel,
			Message: msg,
			Time:    time.Now(),
		}
		out, err := formatter.Format(entry)
		require.NoError(t, err)
		assert.Contains(t, string(out), prefix, msg)
	}

	// An unrelated message carries no prefix
	entry := &logrus.Entry{Logger: logrus.New(), Level: logrus.InfoLevel, Message: "hello", Time: time.Now()}
	out, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "[")
}

// TestEngineFormatterFields tests field-specific value rendering
func TestEngineFormatterFields(t *testing.T) {
	formatter := &logging.EngineFormatter{ShowDurations: true}

	longQuery := strings.Repeat("P(A) + ", 20)
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.InfoLevel,
		Message: "Query evaluated",
		Time:    time.Now(),
		Data: logrus.Fields{
			"duration": 1500 * time.Microsecond,
			"total":    0.9999999999,
			"query":    longQuery,
		},
	}
	out, err := formatter.Format(entry)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "duration=1.5ms")
	assert.Contains(t, s, "total=0.9999999999")
	assert.Contains(t, s, "...")
	assert.NotContains(t, s, longQuery)
}

// TestLogManager tests rotation, retention cleanup, and stats
func TestLogManager(t *testing.T) {
	dir := t.TempDir()
	big := strings.Repeat("INFO Query evaluated\n", 100)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "probs_a.log"), []byte(big), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "probs_b.log"), []byte("INFO small\n"), 0644))

	// Rotation with compression moves the oversized file aside as .gz
	manager := logging.NewLogManager(dir, 1, 100, true)
	require.NoError(t, manager.RotateLogs())

	rotated, err := filepath.Glob(filepath.Join(dir, "probs_a.log.*.gz"))
	require.NoError(t, err)
	assert.Len(t, rotated, 1)
	_, err = os.Stat(filepath.Join(dir, "probs_a.log"))
	assert.True(t, os.IsNotExist(err))

	stats, err := manager.GetLogStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, 1, stats.CompressedFiles)
	assert.Equal(t, 1, stats.UncompressedFiles)

	// Retention keeps only the newest file
	require.NoError(t, manager.CleanupOldLogs())
	remaining, err := filepath.Glob(filepath.Join(dir, "probs_*.log*"))
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

// TestLogAnalyzer tests counting engine events across log files
func TestLogAnalyzer(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"INFO [LOAD] Distribution loaded path=a.inp",
		"INFO [QUERY] Query evaluated query=P(A)",
		"INFO [QUERY] Query evaluated query=P(B)",
		"INFO [SAMPLE] Samples drawn count=10",
		"ERROR something went wrong",
		"WARNING total drifted",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "probs_20260828_120000.log"), []byte(content), 0644))

	analysis, err := logging.NewLogAnalyzer(dir).AnalyzeLogs()
	require.NoError(t, err)

	assert.Equal(t, int64(1), analysis.LoadCount)
	assert.Equal(t, int64(2), analysis.QueryCount)
	assert.Equal(t, int64(1), analysis.SamplingCount)
	assert.Equal(t, int64(0), analysis.SaveCount)
	assert.Equal(t, int64(1), analysis.ErrorCount)

	summary := analysis.GetLogSummary()
	assert.Contains(t, summary, "Queries: 2")
}
