package importer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rowloom/internal/domain"
)

// ParseAuto picks a parser from the content: BeadTool shorthand when any
// row line is present, plain delimited text otherwise.
func ParseAuto(name, text string) (domain.Pattern, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if _, _, ok := splitRowLine(strings.TrimSpace(scanner.Text())); ok {
			return ParseBeadTool(name, text)
		}
	}
	return ParseDelimited(name, text)
}

// LooksLikePattern reports whether text contains at least one parseable
// row line. Used to sniff candidate files during directory scans.
func LooksLikePattern(text string) bool {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if _, _, ok := splitRowLine(line); ok {
			return true
		}
		if looksLikeSteps(line) {
			return true
		}
	}
	return false
}

// ImportPatternFile reads and parses a pattern file. The pattern name is
// the file basename without extension.
func ImportPatternFile(path string) (domain.Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Pattern{}, fmt.Errorf("reading pattern file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseAuto(name, string(data))
}
