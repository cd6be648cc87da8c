package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loadRules reads one grammar rule per line from filename, skipping
// blank lines and lines starting with "#" (a comment — distinct from
// the grammar's own epsilon symbol, which only ever appears inside a
// rule's right-hand side, never at the start of a line by itself).
func loadRules(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return rules, nil
}
