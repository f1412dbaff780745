package domain

import "time"

// Step is a run of identical beads within a row.
type Step struct {
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Row is a single pattern row.
type Row struct {
	Number int    `json:"number"`
	Steps  []Step `json:"steps"`
}

// Pattern is a parsed beading pattern.
type Pattern struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// BeadCount returns the total number of beads in the row.
func (r Row) BeadCount() int {
	total := 0
	for _, s := range r.Steps {
		total += s.Count
	}
	return total
}

// TotalBeads returns the total number of beads in the pattern.
func (p Pattern) TotalBeads() int {
	total := 0
	for _, r := range p.Rows {
		total += r.BeadCount()
	}
	return total
}

// Position is the tracked location inside a pattern: a row index and a
// step index within that row (both zero-based).
type Position struct {
	Row  int `json:"row"`
	Step int `json:"step"`
}

// ColorSpan records the first and last row a bead color appears on.
type ColorSpan struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// FLAM is the first/last appearance map: color -> span. It drives the
// first/last-row markers in the tracking view.
type FLAM map[string]ColorSpan

// BuildFLAM computes the first/last appearance map for a pattern.
func BuildFLAM(p Pattern) FLAM {
	flam := make(FLAM)
	for _, row := range p.Rows {
		for _, step := range row.Steps {
			span, seen := flam[step.Color]
			if !seen {
				flam[step.Color] = ColorSpan{First: row.Number, Last: row.Number}
				continue
			}
			if row.Number < span.First {
				span.First = row.Number
			}
			if row.Number > span.Last {
				span.Last = row.Number
			}
			flam[step.Color] = span
		}
	}
	return flam
}

// Project is a pattern plus tracking state.
type Project struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	SourcePath string    `json:"source_path,omitempty"` // file it was imported from ("" if pasted)
	Pattern    Pattern   `json:"pattern"`
	Position   Position  `json:"position"`
	MarkedRows []int     `json:"marked_rows,omitempty"` // rows flagged done in mark mode
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Settings holds the display and stepping preferences.
type Settings struct {
	Combine12     bool   `json:"combine12" toml:"combine12"`           // render rows 1 and 2 as a combined first row
	LRDesignators bool   `json:"lr_designators" toml:"lr_designators"` // show (L)/(R) row designators
	FlamMarkers   bool   `json:"flam_markers" toml:"flam_markers"`     // mark first/last appearance of each color
	Zoom          bool   `json:"zoom" toml:"zoom"`                     // wide bead cells
	ScrollOffset  int    `json:"scroll_offset" toml:"scroll_offset"`   // rows of context kept above the current row
	MultiAdvance  int    `json:"multi_advance" toml:"multi_advance"`   // step count for bulk advance
	FlipWorking   bool   `json:"flip_working" toml:"flip_working"`     // reverse step order on even rows
	ProjectSort   string `json:"project_sort" toml:"project_sort"`    // name | created | updated
}

// DefaultSettings returns the settings used before any are persisted.
func DefaultSettings() Settings {
	return Settings{
		Combine12:     false,
		LRDesignators: true,
		FlamMarkers:   false,
		Zoom:          false,
		ScrollOffset:  2,
		MultiAdvance:  3,
		FlipWorking:   false,
		ProjectSort:   "updated",
	}
}

// NotificationLevel classifies a notification.
type NotificationLevel string

const (
	NotifyInfo    NotificationLevel = "info"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

// Notification is a transient message surfaced in the status line.
type Notification struct {
	ID        string
	Level     NotificationLevel
	Message   string
	CreatedAt time.Time
}

// MarkMode values. Default means keys navigate; the marking modes change
// what advancing does to the current row.
const (
	MarkModeDefault = 0
	MarkModeDone    = 1 // advancing marks rows as done
	MarkModeClear   = 2 // advancing clears marks
)
