package domain

// Advance moves pos forward by n steps, clamping at the last step of the
// last row. Row/step indices are zero-based into p.Rows.
func Advance(p Pattern, pos Position, n int) Position {
	for i := 0; i < n; i++ {
		next, ok := nextStep(p, pos)
		if !ok {
			return pos
		}
		pos = next
	}
	return pos
}

// Retreat moves pos backward by n steps, clamping at the first step.
func Retreat(p Pattern, pos Position, n int) Position {
	for i := 0; i < n; i++ {
		prev, ok := prevStep(p, pos)
		if !ok {
			return pos
		}
		pos = prev
	}
	return pos
}

// AdvanceRow moves to the first step of the next row, clamping at the
// last row.
func AdvanceRow(p Pattern, pos Position) Position {
	if pos.Row+1 >= len(p.Rows) {
		return pos
	}
	return Position{Row: pos.Row + 1, Step: 0}
}

// RetreatRow moves to the first step of the previous row, or row start
// when already on the first row.
func RetreatRow(p Pattern, pos Position) Position {
	if pos.Row == 0 {
		return Position{}
	}
	return Position{Row: pos.Row - 1, Step: 0}
}

// JumpToRow moves to the first step of the 1-based row number. Out of
// range numbers clamp to the nearest row.
func JumpToRow(p Pattern, number int) Position {
	if len(p.Rows) == 0 {
		return Position{}
	}
	idx := number - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.Rows) {
		idx = len(p.Rows) - 1
	}
	return Position{Row: idx, Step: 0}
}

// Clamp returns pos adjusted to lie within p, for patterns that shrank
// after a re-import.
func Clamp(p Pattern, pos Position) Position {
	if len(p.Rows) == 0 {
		return Position{}
	}
	if pos.Row >= len(p.Rows) {
		pos.Row = len(p.Rows) - 1
		pos.Step = 0
	}
	if pos.Row < 0 {
		pos.Row = 0
	}
	if n := len(p.Rows[pos.Row].Steps); pos.Step >= n {
		pos.Step = n - 1
	}
	if pos.Step < 0 {
		pos.Step = 0
	}
	return pos
}

func nextStep(p Pattern, pos Position) (Position, bool) {
	if pos.Row >= len(p.Rows) {
		return pos, false
	}
	if pos.Step+1 < len(p.Rows[pos.Row].Steps) {
		return Position{Row: pos.Row, Step: pos.Step + 1}, true
	}
	if pos.Row+1 < len(p.Rows) {
		return Position{Row: pos.Row + 1, Step: 0}, true
	}
	return pos, false
}

func prevStep(p Pattern, pos Position) (Position, bool) {
	if pos.Step > 0 {
		return Position{Row: pos.Row, Step: pos.Step - 1}, true
	}
	if pos.Row > 0 {
		prevRow := pos.Row - 1
		lastStep := len(p.Rows[prevRow].Steps) - 1
		if lastStep < 0 {
			lastStep = 0
		}
		return Position{Row: prevRow, Step: lastStep}, true
	}
	return pos, false
}
