/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: Probs.go
Description: Batch analysis runner for probs. Scans a directory of distribution files (.inp and .net), loads each one, computes a standard battery of measures (total mass, entropy, marginals, pairwise independence), and writes detailed HTML/JSON reports to ./probs_output. Modular, clean, and beautiful.
*/

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kleascm/probs/pkg/format"
	"github.com/kleascm/probs/pkg/stats"
)

type AnalysisResult struct {
	File        string   `json:"file"`
	Status      string   `json:"status"`
	Error       string   `json:"error,omitempty"`
	Variables   []string `json:"variables,omitempty"`
	Assignments int      `json:"assignments,omitempty"`
	Total       float64  `json:"total,omitempty"`
	Entropy     float64  `json:"entropy,omitempty"`
	Marginals   []string `json:"marginals,omitempty"`
	Independent []string `json:"independent,omitempty"`
	Dependent   []string `json:"dependent,omitempty"`
	Duration    string   `json:"duration"`
}

func analyzeFile(path string) AnalysisResult {
	start := time.Now()
	result := AnalysisResult{File: path, Status: "ok"}

	s, err := format.Load(path, format.DefaultLoaderOptions())
	if err != nil {
		result.Status = "error"
		result.Error = err.Error()
		result.Duration = time.Since(start).String()
		return result
	}

	result.Variables = s.VariableNames()
	result.Assignments = len(s.Assignments())
	result.Total = s.Total()

	h, err := stats.Entropy(s, nil, stats.DefaultBase)
	if err != nil {
		result.Status = "error"
		result.Error = err.Error()
		result.Duration = time.Since(start).String()
		return result
	}
	result.Entropy = h

	vars := s.Variables()
	for i, v := range vars {
		for si, state := range v.States {
			p, err := s.MarginalProbability([]int{i}, []int{si})
			if err != nil {
				result.Status = "error"
				result.Error = err.Error()
				result.Duration = time.Since(start).String()
				return result
			}
			result.Marginals = append(result.Marginals, fmt.Sprintf("P(%s=%s)=%.6f", v.Name, state, p))
		}
	}

	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			pair := fmt.Sprintf("%s,%s", vars[i].Name, vars[j].Name)
			ind, err := s.IsIndependent(i, j)
			if err != nil {
				result.Status = "error"
				result.Error = err.Error()
				result.Duration = time.Since(start).String()
				return result
			}
			if ind {
				result.Independent = append(result.Independent, pair)
			} else {
				result.Dependent = append(result.Dependent, pair)
			}
		}
	}

	result.Duration = time.Since(start).String()
	return result
}

func main() {
	var results []AnalysisResult
	outputDir := "./probs_output"
	defer func() {
		if r := recover(); r != nil {
			timestamp := time.Now().Format("2006-01-02_15-04-05")
			jsonPath := filepath.Join(outputDir, fmt.Sprintf("probs_report_panic_%s.json", timestamp))
			htmlPath := filepath.Join(outputDir, fmt.Sprintf("probs_report_panic_%s.html", timestamp))
			jsonData, _ := json.MarshalIndent(results, "", "  ")
			os.WriteFile(jsonPath, jsonData, 0644)
			writeHTMLReport(htmlPath, results)
		}
	}()

	inputDir := "./networks"
	if len(os.Args) > 1 {
		inputDir = os.Args[1]
	}
	os.MkdirAll(outputDir, 0755)

	var files []string
	for _, pattern := range []string{"*.inp", "*.net"} {
		matches, _ := filepath.Glob(filepath.Join(inputDir, pattern))
		files = append(files, matches...)
	}

	for _, file := range files {
		results = append(results, analyzeFile(file))
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	jsonPath := filepath.Join(outputDir, fmt.Sprintf("probs_report_final_%s.json", timestamp))
	htmlPath := filepath.Join(outputDir, fmt.Sprintf("probs_report_final_%s.html", timestamp))
	jsonData, _ := json.MarshalIndent(results, "", "  ")
	os.WriteFile(jsonPath, jsonData, 0644)
	writeHTMLReport(htmlPath, results)
	fmt.Printf("Analyzed %d files, reports in %s\n", len(files), outputDir)
}

func writeHTMLReport(path string, results []AnalysisResult) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	f.WriteString("<html><head><title>Probs Analysis Report</title><style>body{font-family:sans-serif;}table{border-collapse:collapse;}th,td{border:1px solid #ccc;padding:4px;}th{background:#eee;}tr.error{background:#fdd;}tr.ok{background:#dfd;}</style></head><body>")
	f.WriteString("<h1>Probs Analysis Report</h1><table><tr><th>File</th><th>Status</th><th>Error</th><th>Variables</th><th>Assignments</th><th>Total</th><th>Entropy</th><th>Marginals</th><th>Independent Pairs</th><th>Duration</th></tr>")
	for _, r := range results {
		f.WriteString(fmt.Sprintf("<tr class='%s'><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%.10f</td><td>%.6f</td><td><pre>%s</pre></td><td>%s</td><td>%s</td></tr>",
			r.Status, r.File, r.Status, htmlEscape(r.Error), strings.Join(r.Variables, " "), r.Assignments, r.Total, r.Entropy,
			htmlEscape(strings.Join(r.Marginals, "\n")), strings.Join(r.Independent, " "), r.Duration))
	}
	f.WriteString("</table></body></html>")
}

func htmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}
