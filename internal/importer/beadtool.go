// Package importer parses beading pattern files into domain patterns.
// Supported inputs: BeadTool-style shorthand exports, plain delimited
// text, text extracted from PDF scans, and gzip-compressed project
// archives.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rowloom/internal/domain"
)

// ErrNoRows is returned when no pattern rows could be parsed.
var ErrNoRows = errors.New("no pattern rows found")

// ParseBeadTool parses a BeadTool shorthand export. Lines that are not
// row lines (tool banners, color legends, page footers) are skipped. A
// leading step list without a "Row N" prefix is accepted as row 1, which
// some exports produce for the combined first rows.
func ParseBeadTool(name, text string) (domain.Pattern, error) {
	pattern := domain.Pattern{Name: name}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if number, rest, ok := splitRowLine(line); ok {
			steps, err := parseSteps(rest)
			if err != nil {
				return domain.Pattern{}, fmt.Errorf("row %d: %w", number, err)
			}
			pattern.Rows = append(pattern.Rows, domain.Row{Number: number, Steps: steps})
			continue
		}

		// An unprefixed step list before any row line is the first row.
		if len(pattern.Rows) == 0 && looksLikeSteps(line) {
			steps, err := parseSteps(line)
			if err != nil {
				return domain.Pattern{}, fmt.Errorf("row 1: %w", err)
			}
			pattern.Rows = append(pattern.Rows, domain.Row{Number: 1, Steps: steps})
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.Pattern{}, fmt.Errorf("reading pattern: %w", err)
	}
	if len(pattern.Rows) == 0 {
		return domain.Pattern{}, ErrNoRows
	}
	return pattern, nil
}

// splitRowLine matches a "Row N (L|R) ..." line and returns the row number
// and the remainder. The combined "Row 1&2" form keeps the first number;
// the Combine12 display setting renders it as a joined row.
func splitRowLine(line string) (int, string, bool) {
	if !strings.HasPrefix(line, "Row ") && !strings.HasPrefix(line, "Row\t") {
		return 0, "", false
	}
	rest := strings.TrimSpace(line[len("Row"):])

	// Row number, optionally "N&M".
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	number, err := strconv.Atoi(rest[:i])
	if err != nil {
		return 0, "", false
	}
	rest = rest[i:]
	if strings.HasPrefix(rest, "&") {
		rest = rest[1:]
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		rest = rest[j:]
	}

	// Left/right designator.
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(L)") || strings.HasPrefix(rest, "(R)") {
		rest = rest[3:]
	}
	return number, strings.TrimSpace(rest), true
}

// parseSteps parses a comma-separated "(count)color" list.
func parseSteps(s string) ([]domain.Step, error) {
	var steps []domain.Step
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		step, err := parseShorthandStep(field)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if len(steps) == 0 {
		return nil, errors.New("empty step list")
	}
	return steps, nil
}

func parseShorthandStep(field string) (domain.Step, error) {
	if !strings.HasPrefix(field, "(") {
		return domain.Step{}, fmt.Errorf("malformed step %q", field)
	}
	close := strings.IndexByte(field, ')')
	if close < 0 {
		return domain.Step{}, fmt.Errorf("malformed step %q", field)
	}
	count, err := strconv.Atoi(strings.TrimSpace(field[1:close]))
	if err != nil || count < 1 {
		return domain.Step{}, fmt.Errorf("bad bead count in step %q", field)
	}
	color := strings.TrimSpace(field[close+1:])
	if color == "" {
		return domain.Step{}, fmt.Errorf("missing color in step %q", field)
	}
	return domain.Step{Count: count, Color: color}, nil
}

// looksLikeSteps reports whether the line is a bare "(n)color" list.
func looksLikeSteps(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "(") {
		return false
	}
	_, err := parseShorthandStep(strings.Split(line, ",")[0])
	return err == nil
}
