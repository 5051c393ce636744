/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared configuration and contracts for the probs engine. Defines the
engine configuration bound by the CLI and the session records shared between the
commands, the reporting layer, and the metrics writer.
*/

package interfaces

import (
	"time"
)

// EngineConfig represents the configuration for the engine
type EngineConfig struct {
	InputPath  string
	OutputDir  string
	Precision  int
	Base       float64
	Samples    int
	Seed       int64
	Tolerate   bool
	ZeroFill   bool
	Names      []string
	Queries    []string
	LogLevel   string
	LogFile    string
	JSONLogs   bool
	HTMLReport bool
}

// QueryRecord captures a single evaluated query for reporting
type QueryRecord struct {
	Query     string        `json:"query"`
	Result    string        `json:"result"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SessionMetrics aggregates the outcome of a query session
type SessionMetrics struct {
	SessionID   string        `json:"session_id"`
	InputPath   string        `json:"input_path"`
	Variables   int           `json:"variables"`
	Assignments int           `json:"assignments"`
	Config      EngineConfig  `json:"config"`
	Queries     []QueryRecord `json:"queries"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
}
