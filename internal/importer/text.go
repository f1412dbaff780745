package importer

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"rowloom/internal/domain"
)

// ParseDelimited parses a plain-text pattern: one row per line, steps
// separated by commas or whitespace. Accepted step forms are "(3)A",
// "3A", and a bare color name (count 1).
func ParseDelimited(name, text string) (domain.Pattern, error) {
	pattern := domain.Pattern{Name: name}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	rowNumber := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rowNumber++

		var steps []domain.Step
		for _, token := range splitTokens(line) {
			step, err := parseLooseStep(token)
			if err != nil {
				return domain.Pattern{}, fmt.Errorf("row %d: %w", rowNumber, err)
			}
			steps = append(steps, step)
		}
		if len(steps) == 0 {
			rowNumber--
			continue
		}
		pattern.Rows = append(pattern.Rows, domain.Row{Number: rowNumber, Steps: steps})
	}
	if err := scanner.Err(); err != nil {
		return domain.Pattern{}, fmt.Errorf("reading pattern: %w", err)
	}
	if len(pattern.Rows) == 0 {
		return domain.Pattern{}, ErrNoRows
	}
	return pattern, nil
}

func splitTokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// parseLooseStep accepts "(3)A", "3A", "3xA", and bare "A".
func parseLooseStep(token string) (domain.Step, error) {
	if strings.HasPrefix(token, "(") {
		return parseShorthandStep(token)
	}

	digits := 0
	for digits < len(token) && token[digits] >= '0' && token[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return domain.Step{Count: 1, Color: token}, nil
	}
	count, err := strconv.Atoi(token[:digits])
	if err != nil || count < 1 {
		return domain.Step{}, fmt.Errorf("bad bead count in %q", token)
	}
	color := strings.TrimPrefix(token[digits:], "x")
	if color == "" {
		return domain.Step{}, fmt.Errorf("missing color in %q", token)
	}
	return domain.Step{Count: count, Color: color}, nil
}
