package importer

import (
	"bufio"
	"regexp"
	"strings"

	"rowloom/internal/domain"
)

// PDF text extractors produce noisy output: page footers, bare page
// numbers, and row lines wrapped mid-step. ParsePDFText normalizes the
// extracted text and feeds the BeadTool parser. Decoding the PDF binary
// itself is a collaborator's job; this operates on extracted text only.

var (
	pageFooterLine = regexp.MustCompile(`^\s*Page\s+\d+(\s+of\s+\d+)?\s*$`)
	bareNumberLine = regexp.MustCompile(`^\s*\d+\s*$`)
)

// ParsePDFText parses pattern text extracted from a PDF scan.
func ParsePDFText(name, text string) (domain.Pattern, error) {
	return ParseBeadTool(name, NormalizeExtractedText(text))
}

// NormalizeExtractedText removes page artifacts and rejoins row lines the
// extractor wrapped.
func NormalizeExtractedText(text string) string {
	var lines []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || pageFooterLine.MatchString(line) || bareNumberLine.MatchString(line) {
			continue
		}

		// A continuation of a wrapped row line: no "Row" prefix, but the
		// previous kept line was a row line.
		if !strings.HasPrefix(line, "Row ") && len(lines) > 0 &&
			strings.HasPrefix(lines[len(lines)-1], "Row ") && looksLikeSteps(line) {
			lines[len(lines)-1] = lines[len(lines)-1] + ", " + strings.TrimPrefix(line, ",")
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
