package ui

import (
	"fmt"
	"strings"

	"rowloom/internal/domain"
	"rowloom/internal/store"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var body string
	if m.view == viewTracking {
		body = m.renderTracking()
	} else {
		body = m.renderProjects()
	}

	var b strings.Builder
	b.WriteString(body)
	if m.inputMode != inputNone && m.inputMode != inputConfirmDelete {
		b.WriteString("\n" + m.input.View())
	}
	if m.inputMode == inputConfirmDelete {
		b.WriteString("\n" + statusStyle.Render(m.input.Placeholder))
	}
	if line := m.renderNotification(); line != "" {
		b.WriteString("\n" + line)
	}
	return b.String()
}

func (m *Model) renderProjects() string {
	state := m.store.State()
	sorted := store.Select(m.store, store.SortedProjects).Value()
	settings := store.SelectAllSettings(state)

	var b strings.Builder
	b.WriteString(titleStyle.Render("rowloom"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d projects, sorted by %s", len(sorted), settings.ProjectSort)))
	b.WriteString("\n\n")

	switch {
	case store.SelectProjectsLoading(state):
		b.WriteString(dimStyle.Render("  loading..."))
	case store.SelectProjectsError(state) != "":
		b.WriteString(notifyErrorStyle.Render("  " + store.SelectProjectsError(state)))
	case len(sorted) == 0:
		b.WriteString(dimStyle.Render("  no projects yet. press i to import a pattern file."))
	default:
		for i, p := range sorted {
			total := p.Pattern.TotalBeads()
			done := beadsBefore(p.Pattern, domain.Clamp(p.Pattern, p.Position))
			line := fmt.Sprintf("%-30s %4d rows  %5.1f%%  %s",
				p.Name, len(p.Pattern.Rows), percent(done, total),
				p.UpdatedAt.Format("2006-01-02 15:04"))
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render("> " + line))
			} else {
				b.WriteString(stepStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter open · i import · d delete · s sort · ? help · q quit"))
	return b.String()
}

func (m *Model) renderTracking() string {
	state := m.store.State()
	proj := store.SelectCurrentProject(state)
	if proj == nil {
		return ""
	}
	settings := store.SelectAllSettings(state)
	pos := domain.Clamp(proj.Pattern, proj.Position)

	var b strings.Builder
	total := proj.Pattern.TotalBeads()
	done := beadsBefore(proj.Pattern, pos)
	b.WriteString(titleStyle.Render(proj.Name))
	if len(proj.Pattern.Rows) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  row %d/%d · bead %d/%d (%.1f%%)",
			proj.Pattern.Rows[pos.Row].Number, len(proj.Pattern.Rows), done+1, total, percent(done, total))))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderRows(proj, settings, pos))

	b.WriteString("\n")
	b.WriteString(m.renderTrackingStatus(settings))
	return b.String()
}

// renderRows renders the visible window of pattern rows around the
// current position.
func (m *Model) renderRows(proj *domain.Project, settings domain.Settings, pos domain.Position) string {
	rows := proj.Pattern.Rows
	if len(rows) == 0 {
		return dimStyle.Render("  empty pattern")
	}

	visible := m.height - 7
	if visible < 3 {
		visible = 3
	}
	start := pos.Row - settings.ScrollOffset
	if start+visible > len(rows) {
		start = len(rows) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	marked := make(map[int]bool, len(proj.MarkedRows))
	for _, n := range proj.MarkedRows {
		marked[n] = true
	}
	var flam domain.FLAM
	if settings.FlamMarkers {
		flam = domain.BuildFLAM(proj.Pattern)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		// A combined first row covers rows 1 and 2 in one line.
		if settings.Combine12 && i == 1 && len(rows) > 1 && rows[0].Number == 1 {
			continue
		}
		b.WriteString(m.renderRow(rows, i, settings, pos, marked, flam))
		b.WriteString("\n")
	}
	if end < len(rows) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more rows (v for full pattern)", len(rows)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(rows []domain.Row, idx int, settings domain.Settings, pos domain.Position, marked map[int]bool, flam domain.FLAM) string {
	row := rows[idx]

	label := fmt.Sprintf("Row %d", row.Number)
	if settings.Combine12 && idx == 0 && len(rows) > 1 && row.Number == 1 {
		label = "Row 1&2"
	}
	if settings.LRDesignators {
		label += " " + designator(row.Number)
	}
	line := rowNumberStyle.Render(label)

	steps := make([]renderedStep, 0, len(row.Steps)+4)
	for s := range row.Steps {
		steps = append(steps, renderedStep{row: idx, step: s})
	}
	if settings.Combine12 && idx == 0 && len(rows) > 1 && row.Number == 1 {
		for s := range rows[1].Steps {
			steps = append(steps, renderedStep{row: 1, step: s})
		}
	}
	// Even rows are worked back the other way on some looms.
	if settings.FlipWorking && row.Number%2 == 0 {
		for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
			steps[i], steps[j] = steps[j], steps[i]
		}
	}

	cells := make([]string, 0, len(steps))
	for _, rs := range steps {
		cells = append(cells, m.renderStep(rows, rs, settings, pos, marked, flam))
	}
	return line + strings.Join(cells, " ")
}

type renderedStep struct {
	row  int
	step int
}

func (m *Model) renderStep(rows []domain.Row, rs renderedStep, settings domain.Settings, pos domain.Position, marked map[int]bool, flam domain.FLAM) string {
	step := rows[rs.row].Steps[rs.step]

	text := fmt.Sprintf("(%d)%s", step.Count, step.Color)
	if settings.Zoom {
		text = " " + text + " "
	}
	if flam != nil {
		if span, ok := flam[step.Color]; ok {
			if span.First == rows[rs.row].Number {
				text += flamStyle.Render("^")
			}
			if span.Last == rows[rs.row].Number {
				text += flamStyle.Render("$")
			}
		}
	}

	here := domain.Position{Row: rs.row, Step: rs.step}
	switch {
	case here == pos:
		return currentStepStyle.Render(text)
	case marked[rows[rs.row].Number]:
		return markedRowStyle.Render(text)
	case here.Row < pos.Row || (here.Row == pos.Row && here.Step < pos.Step):
		return doneStepStyle.Render(text)
	default:
		return stepStyle.Render(text)
	}
}

func (m *Model) renderTrackingStatus(settings domain.Settings) string {
	mode := "nav"
	switch store.SelectMarkMode(m.store.State()) {
	case domain.MarkModeDone:
		mode = "marking done"
	case domain.MarkModeClear:
		mode = "clearing marks"
	}
	flags := []string{}
	if settings.Zoom {
		flags = append(flags, "zoom")
	}
	if settings.FlamMarkers {
		flags = append(flags, "flam")
	}
	if settings.Combine12 {
		flags = append(flags, "1&2")
	}
	if settings.FlipWorking {
		flags = append(flags, "flip")
	}
	status := fmt.Sprintf("mode: %s · advance ×%d", mode, settings.MultiAdvance)
	if len(flags) > 0 {
		status += " · " + strings.Join(flags, ",")
	}
	return dimStyle.Render(status + " · space step · J row · g jump · v pattern · ? help")
}

func (m *Model) renderNotification() string {
	n := store.SelectActiveNotification(m.store.State())
	if n == nil {
		return ""
	}
	switch n.Level {
	case domain.NotifyError:
		return notifyErrorStyle.Render(n.Message)
	case domain.NotifyWarning:
		return notifyWarnStyle.Render(n.Message)
	default:
		return notifyInfoStyle.Render(n.Message)
	}
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	row := func(key, desc string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", key)), descStyle.Render(desc)))
	}

	b.WriteString(titleStyle.Render("rowloom help"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Projects"))
	b.WriteString("\n")
	row("j/k", "move")
	row("enter", "open project")
	row("i", "import pattern file")
	row("d", "delete project")
	row("s", "cycle sort order")
	b.WriteString(headerStyle.Render("Tracking"))
	b.WriteString("\n")
	row("space/l/h", "advance / retreat one step")
	row("a", "advance several steps")
	row("J/K", "next / previous row")
	row("g", "jump to row")
	row("x", "toggle done mark on this row")
	row("m", "cycle mark mode")
	row("u", "undo last change")
	row("r", "rename project")
	row("v", "full pattern in pager")
	row("esc/q", "back to projects")
	b.WriteString(headerStyle.Render("Display"))
	b.WriteString("\n")
	row("z", "zoom cells")
	row("f", "first/last color markers")
	row("L", "(L)/(R) designators")
	row("c", "combine rows 1 and 2")
	row("w", "flip even rows")
	row("+/-", "multi-advance step count")
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("press any key to close"))
	return b.String()
}

func designator(rowNumber int) string {
	if rowNumber%2 == 1 {
		return "(L)"
	}
	return "(R)"
}

// beadsBefore counts the beads strictly before pos.
func beadsBefore(p domain.Pattern, pos domain.Position) int {
	total := 0
	for i := 0; i < pos.Row && i < len(p.Rows); i++ {
		total += p.Rows[i].BeadCount()
	}
	if pos.Row < len(p.Rows) {
		for s := 0; s < pos.Step && s < len(p.Rows[pos.Row].Steps); s++ {
			total += p.Rows[pos.Row].Steps[s].Count
		}
	}
	return total
}

func percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
