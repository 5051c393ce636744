/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lex.go
Description: Shared lexical helpers for the probs text formats. Handles blank
lines, full-line and trailing '#' comments, and the 'variables:' header shared
by the enumerated and legacy network formats.
*/

package format

import (
	"bufio"
	"io"
	"strings"
)

// line is one meaningful input line with its 1-based source position
type line struct {
	num  int
	text string
}

// cleanLines reads every line, strips comments and blanks, and keeps source
// line numbers for error messages. Only the first '#' matters: the formats
// have no string literals that could contain one.
func cleanLines(r io.Reader) ([]line, error) {
	var out []line
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if i := strings.Index(text, "#"); i >= 0 {
			text = strings.TrimSpace(text[:i])
			if text == "" {
				continue
			}
		}
		out = append(out, line{num: num, text: text})
	}
	return out, scanner.Err()
}

// headerNames parses a 'variables: A,B,C' header (case-insensitive keyword)
// and reports whether the line was a header at all.
func headerNames(text string) ([]string, bool) {
	if !strings.HasPrefix(strings.ToLower(text), "variables:") {
		return nil, false
	}
	rest := text[len("variables:"):]
	var names []string
	for _, part := range strings.Split(rest, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names, true
}

// splitEntry splits '<left>: <right>' on the first colon
func splitEntry(text string) (left, right string, ok bool) {
	i := strings.Index(text, ":")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:]), true
}

// isBits reports whether s is a non-empty string of 0s and 1s
func isBits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}
