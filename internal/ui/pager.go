package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"rowloom/internal/domain"
)

// openPatternPager shows the whole pattern in the ov pager. The terminal
// is handed over to ov and restored when it exits.
func (m *Model) openPatternPager(proj *domain.Project, settings domain.Settings) tea.Cmd {
	content := renderFullPattern(proj, settings)
	return func() tea.Msg {
		return pagerDoneMsg{err: m.showInPager(content)}
	}
}

func (m *Model) showInPager(content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// renderFullPattern renders every row as plain text for the pager,
// honoring the display settings but not the position highlight.
func renderFullPattern(proj *domain.Project, settings domain.Settings) string {
	var b strings.Builder
	b.WriteString(proj.Name)
	b.WriteString(fmt.Sprintf("  (%d rows, %d beads)\n\n", len(proj.Pattern.Rows), proj.Pattern.TotalBeads()))

	marked := make(map[int]bool, len(proj.MarkedRows))
	for _, n := range proj.MarkedRows {
		marked[n] = true
	}
	var flam domain.FLAM
	if settings.FlamMarkers {
		flam = domain.BuildFLAM(proj.Pattern)
	}

	rows := proj.Pattern.Rows
	for i, row := range rows {
		if settings.Combine12 && i == 1 && len(rows) > 1 && rows[0].Number == 1 {
			continue
		}
		label := fmt.Sprintf("Row %d", row.Number)
		if settings.Combine12 && i == 0 && len(rows) > 1 && row.Number == 1 {
			label = "Row 1&2"
		}
		if settings.LRDesignators {
			label += " " + designator(row.Number)
		}
		if marked[row.Number] {
			label += " [done]"
		}

		steps := row.Steps
		if settings.Combine12 && i == 0 && len(rows) > 1 && row.Number == 1 {
			steps = append(append([]domain.Step{}, steps...), rows[1].Steps...)
		}

		cells := make([]string, 0, len(steps))
		for _, step := range steps {
			cell := fmt.Sprintf("(%d)%s", step.Count, step.Color)
			if flam != nil {
				if span, ok := flam[step.Color]; ok {
					if span.First == row.Number {
						cell += "^"
					}
					if span.Last == row.Number {
						cell += "$"
					}
				}
			}
			cells = append(cells, cell)
		}
		b.WriteString(fmt.Sprintf("%-12s %s\n", label, strings.Join(cells, ", ")))
	}
	return b.String()
}
