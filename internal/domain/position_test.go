package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func steppedPattern() Pattern {
	return Pattern{
		Name: "test",
		Rows: []Row{
			{Number: 1, Steps: []Step{{Count: 3, Color: "A"}, {Count: 2, Color: "B"}}},
			{Number: 2, Steps: []Step{{Count: 5, Color: "A"}}},
			{Number: 3, Steps: []Step{{Count: 1, Color: "C"}, {Count: 1, Color: "A"}, {Count: 4, Color: "B"}}},
		},
	}
}

func TestAdvanceCrossesRows(t *testing.T) {
	p := steppedPattern()

	pos := Advance(p, Position{}, 1)
	require.Equal(t, Position{Row: 0, Step: 1}, pos)

	pos = Advance(p, pos, 1)
	require.Equal(t, Position{Row: 1, Step: 0}, pos)

	pos = Advance(p, pos, 2)
	require.Equal(t, Position{Row: 2, Step: 1}, pos)
}

func TestAdvanceClampsAtEnd(t *testing.T) {
	p := steppedPattern()
	end := Position{Row: 2, Step: 2}
	require.Equal(t, end, Advance(p, end, 1))
	require.Equal(t, end, Advance(p, Position{}, 100))
}

func TestRetreatCrossesRows(t *testing.T) {
	p := steppedPattern()

	pos := Retreat(p, Position{Row: 1, Step: 0}, 1)
	require.Equal(t, Position{Row: 0, Step: 1}, pos)

	require.Equal(t, Position{}, Retreat(p, Position{}, 1))
	require.Equal(t, Position{}, Retreat(p, Position{Row: 2, Step: 2}, 100))
}

func TestRowMoves(t *testing.T) {
	p := steppedPattern()

	require.Equal(t, Position{Row: 1, Step: 0}, AdvanceRow(p, Position{Row: 0, Step: 1}))
	require.Equal(t, Position{Row: 2, Step: 0}, AdvanceRow(p, Position{Row: 1, Step: 0}))
	require.Equal(t, Position{Row: 2, Step: 0}, AdvanceRow(p, Position{Row: 2, Step: 1}))

	require.Equal(t, Position{Row: 1, Step: 0}, RetreatRow(p, Position{Row: 2, Step: 2}))
	require.Equal(t, Position{}, RetreatRow(p, Position{Row: 0, Step: 1}))
}

func TestJumpToRowClamps(t *testing.T) {
	p := steppedPattern()

	require.Equal(t, Position{Row: 1, Step: 0}, JumpToRow(p, 2))
	require.Equal(t, Position{}, JumpToRow(p, -5))
	require.Equal(t, Position{Row: 2, Step: 0}, JumpToRow(p, 99))
	require.Equal(t, Position{}, JumpToRow(Pattern{}, 3))
}

func TestClampAfterShrink(t *testing.T) {
	p := steppedPattern()

	require.Equal(t, Position{Row: 2, Step: 0}, Clamp(p, Position{Row: 9, Step: 4}))
	require.Equal(t, Position{Row: 1, Step: 0}, Clamp(p, Position{Row: 1, Step: 7}))
	require.Equal(t, Position{}, Clamp(Pattern{}, Position{Row: 3, Step: 1}))
}
