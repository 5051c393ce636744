/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: HTML report system for the probs engine. Generates beautiful
web reports with distribution summaries, marginal charts, independence
matrices, and query session results.
*/

package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/interfaces"
	"github.com/kleascm/probs/pkg/stats"
)

// Generator creates HTML reports for analyzed distributions
type Generator struct {
	outputDir string
	logger    *logrus.Logger
	templates *template.Template
	formatter *Formatter
}

// Data contains all data for report generation
type Data struct {
	Title       string                   `json:"title"`
	GeneratedAt time.Time                `json:"generated_at"`
	Version     string                   `json:"version"`
	SessionID   string                   `json:"session_id"`
	InputPath   string                   `json:"input_path"`
	Variables   []VariableSummary        `json:"variables"`
	Assignments int                      `json:"assignments"`
	Total       string                   `json:"total"`
	Entropy     string                   `json:"entropy"`
	JointRows   []JointRow               `json:"joint_rows"`
	Marginals   []MarginalRow            `json:"marginals"`
	Pairs       []IndependencePair       `json:"pairs"`
	Queries     []interfaces.QueryRecord `json:"queries"`
	Charts      *ChartData               `json:"charts"`
}

// VariableSummary describes one variable of the system
type VariableSummary struct {
	Name   string   `json:"name"`
	States []string `json:"states"`
}

// JointRow is one line of the joint probability table
type JointRow struct {
	Labels string `json:"labels"`
	Prob   string `json:"prob"`
}

// MarginalRow is one state of one variable with its marginal probability
type MarginalRow struct {
	Variable string  `json:"variable"`
	State    string  `json:"state"`
	Prob     float64 `json:"prob"`
}

// IndependencePair records the pairwise independence verdict for two variables
type IndependencePair struct {
	X           string `json:"x"`
	Y           string `json:"y"`
	Independent bool   `json:"independent"`
}

// ChartData contains chart configuration and data
type ChartData struct {
	MarginalChart *ChartConfig `json:"marginal_chart"`
	QueryChart    *ChartConfig `json:"query_chart"`
}

// ChartConfig contains chart configuration
type ChartConfig struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Data    interface{} `json:"data"`
	Options interface{} `json:"options"`
}

// NewGenerator creates a new report generator
func NewGenerator(outputDir string, logger *logrus.Logger, formatter *Formatter) *Generator {
	if formatter == nil {
		formatter = NewFormatter()
	}
	funcs := template.FuncMap{
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
	}
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
		templates: template.Must(template.New("report").Funcs(funcs).Parse(reportTemplate)),
		formatter: formatter,
	}
}

// NewSessionID returns a fresh identifier for a report session
func NewSessionID() string {
	return uuid.New().String()
}

// Build assembles report data from a system and its query records
func (g *Generator) Build(title, inputPath, version, sessionID string, s *core.System, queries []interfaces.QueryRecord) (*Data, error) {
	h, err := stats.Entropy(s, nil, stats.DefaultBase)
	if err != nil {
		return nil, err
	}

	vars := s.Variables()
	summaries := make([]VariableSummary, len(vars))
	for i, v := range vars {
		summaries[i] = VariableSummary{Name: v.Name, States: v.States}
	}

	assignments := s.Assignments()
	rows := make([]JointRow, 0, len(assignments))
	for _, a := range assignments {
		labels := make([]byte, 0, 2*len(a))
		for i, si := range a {
			if i > 0 {
				labels = append(labels, ' ')
			}
			labels = append(labels, vars[i].States[si]...)
		}
		rows = append(rows, JointRow{Labels: string(labels), Prob: g.formatter.Prob(s.JointProbability(a))})
	}

	var marginals []MarginalRow
	for i, v := range vars {
		for si, state := range v.States {
			p, err := s.MarginalProbability([]int{i}, []int{si})
			if err != nil {
				return nil, err
			}
			marginals = append(marginals, MarginalRow{Variable: v.Name, State: state, Prob: p})
		}
	}

	var pairs []IndependencePair
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			ind, err := s.IsIndependent(i, j)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, IndependencePair{X: vars[i].Name, Y: vars[j].Name, Independent: ind})
		}
	}

	data := &Data{
		Title:       title,
		GeneratedAt: time.Now(),
		Version:     version,
		SessionID:   sessionID,
		InputPath:   inputPath,
		Variables:   summaries,
		Assignments: len(assignments),
		Total:       g.formatter.Prob(s.Total()),
		Entropy:     g.formatter.Prob(h),
		JointRows:   rows,
		Marginals:   marginals,
		Pairs:       pairs,
		Queries:     queries,
	}
	g.prepareChartData(data)
	return data, nil
}

// Generate creates the HTML report on disk and returns its path
func (g *Generator) Generate(data *Data) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile := filepath.Join(g.outputDir, fmt.Sprintf("report_%s.html", data.SessionID))
	file, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := g.templates.Execute(file, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	if g.logger != nil {
		g.logger.Infof("Report generated successfully: %s", outputFile)
	}
	return outputFile, nil
}

// prepareChartData prepares chart configurations
func (g *Generator) prepareChartData(data *Data) {
	data.Charts = &ChartData{
		MarginalChart: g.createMarginalChart(data),
		QueryChart:    g.createQueryChart(data),
	}
}

// createMarginalChart creates the marginal distribution chart configuration
func (g *Generator) createMarginalChart(data *Data) *ChartConfig {
	labels := make([]string, len(data.Marginals))
	values := make([]float64, len(data.Marginals))
	for i, m := range data.Marginals {
		labels[i] = fmt.Sprintf("%s=%s", m.Variable, m.State)
		values[i] = m.Prob
	}

	return &ChartConfig{
		Type:  "bar",
		Title: "Marginal Probabilities",
		Data: map[string]interface{}{
			"labels": labels,
			"datasets": []map[string]interface{}{
				{
					"label":           "P",
					"data":            values,
					"borderColor":     "rgb(75, 192, 192)",
					"backgroundColor": "rgba(75, 192, 192, 0.2)",
				},
			},
		},
		Options: map[string]interface{}{
			"responsive": true,
			"scales": map[string]interface{}{
				"y": map[string]interface{}{
					"beginAtZero": true,
					"max":         1,
				},
			},
		},
	}
}

// createQueryChart creates the query duration chart configuration
func (g *Generator) createQueryChart(data *Data) *ChartConfig {
	labels := make([]string, len(data.Queries))
	values := make([]float64, len(data.Queries))
	for i, q := range data.Queries {
		labels[i] = q.Query
		values[i] = float64(q.Duration.Microseconds())
	}

	return &ChartConfig{
		Type:  "bar",
		Title: "Query Durations",
		Data: map[string]interface{}{
			"labels": labels,
			"datasets": []map[string]interface{}{
				{
					"label":           "µs",
					"data":            values,
					"borderColor":     "rgb(153, 102, 255)",
					"backgroundColor": "rgba(153, 102, 255, 0.2)",
				},
			},
		},
		Options: map[string]interface{}{
			"responsive": true,
			"scales": map[string]interface{}{
				"y": map[string]interface{}{
					"beginAtZero": true,
				},
			},
		},
	}
}
