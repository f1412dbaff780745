package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowloom/internal/domain"
)

const beadToolSample = `***Created with BeadTool 4***
Pattern: desert cuff
A = DB0010 (Black)
B = DB0203 (Cream)

Row 1&2 (L) (3)A, (2)B, (1)A
Row 3 (R) (4)B, (2)A
Row 4 (L) (6)B
Page 1 of 1
`

func TestParseBeadTool(t *testing.T) {
	pattern, err := ParseBeadTool("desert cuff", beadToolSample)
	require.NoError(t, err)

	require.Len(t, pattern.Rows, 3)
	assert.Equal(t, 1, pattern.Rows[0].Number, "combined 1&2 keeps the first number")
	assert.Equal(t, []domain.Step{{Count: 3, Color: "A"}, {Count: 2, Color: "B"}, {Count: 1, Color: "A"}}, pattern.Rows[0].Steps)
	assert.Equal(t, 3, pattern.Rows[1].Number)
	assert.Equal(t, 6, pattern.Rows[0].BeadCount())
	assert.Equal(t, 18, pattern.TotalBeads())
}

func TestParseBeadToolUnprefixedFirstRow(t *testing.T) {
	pattern, err := ParseBeadTool("p", "(2)A, (2)B\nRow 2 (R) (4)A\n")
	require.NoError(t, err)
	require.Len(t, pattern.Rows, 2)
	assert.Equal(t, 1, pattern.Rows[0].Number)
	assert.Equal(t, 2, pattern.Rows[1].Number)
}

func TestParseBeadToolErrors(t *testing.T) {
	_, err := ParseBeadTool("p", "just some prose\n")
	require.ErrorIs(t, err, ErrNoRows)

	_, err = ParseBeadTool("p", "Row 1 (L) (x)A\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestParseDelimited(t *testing.T) {
	pattern, err := ParseDelimited("simple", "# bracelet\n3A 2B\n(4)C, D\n")
	require.NoError(t, err)

	require.Len(t, pattern.Rows, 2)
	assert.Equal(t, []domain.Step{{Count: 3, Color: "A"}, {Count: 2, Color: "B"}}, pattern.Rows[0].Steps)
	assert.Equal(t, []domain.Step{{Count: 4, Color: "C"}, {Count: 1, Color: "D"}}, pattern.Rows[1].Steps)
}

func TestParseAutoDetectsFormat(t *testing.T) {
	bead, err := ParseAuto("p", "Row 1 (L) (2)A\n")
	require.NoError(t, err)
	assert.Equal(t, 2, bead.Rows[0].Steps[0].Count)

	plain, err := ParseAuto("p", "2A 1B\n")
	require.NoError(t, err)
	assert.Equal(t, "A", plain.Rows[0].Steps[0].Color)
}

func TestParsePDFTextNormalizesArtifacts(t *testing.T) {
	extracted := "Row 1 (L) (3)A,\n(2)B\nPage 1 of 3\n7\nRow 2 (R) (5)A\n"
	pattern, err := ParsePDFText("scan", extracted)
	require.NoError(t, err)

	require.Len(t, pattern.Rows, 2)
	assert.Equal(t, []domain.Step{{Count: 3, Color: "A"}, {Count: 2, Color: "B"}}, pattern.Rows[0].Steps,
		"wrapped row line must be rejoined")
}

func TestArchiveRoundTrip(t *testing.T) {
	project := domain.Project{
		ID:   3,
		Name: "cuff",
		Pattern: domain.Pattern{
			Name: "cuff",
			Rows: []domain.Row{{Number: 1, Steps: []domain.Step{{Count: 2, Color: "A"}}}},
		},
		Position:  domain.Position{Row: 0, Step: 1},
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, project))

	got, err := ReadArchive(&buf)
	require.NoError(t, err)
	assert.Equal(t, project, got)
}

func TestReadArchiveRejectsGarbage(t *testing.T) {
	_, err := ReadArchive(bytes.NewReader([]byte("not gzip")))
	require.Error(t, err)
}

func TestImportPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuff.txt")
	require.NoError(t, os.WriteFile(path, []byte(beadToolSample), 0o644))

	pattern, err := ImportPatternFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cuff", pattern.Name)
	assert.Len(t, pattern.Rows, 3)
}

func TestBuildFLAM(t *testing.T) {
	pattern, err := ParseBeadTool("p", beadToolSample)
	require.NoError(t, err)

	flam := domain.BuildFLAM(pattern)
	assert.Equal(t, domain.ColorSpan{First: 1, Last: 3}, flam["A"])
	assert.Equal(t, domain.ColorSpan{First: 1, Last: 4}, flam["B"])
}
