package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config-dir", dir))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestImportListExportRoundTrip(t *testing.T) {
	dir := t.TempDir()

	pattern := filepath.Join(dir, "cuff.txt")
	require.NoError(t, os.WriteFile(pattern, []byte("Row 1 (L) (3)A, (2)B\nRow 2 (R) (5)A\n"), 0o644))

	out := runCommand(t, dir, "import", pattern)
	require.Contains(t, out, `imported "cuff"`)
	require.Contains(t, out, "2 rows")

	out = runCommand(t, dir, "projects")
	require.Contains(t, out, "cuff")
	require.Contains(t, out, "row 1 step 1")

	archive := filepath.Join(dir, "cuff.rlz")
	out = runCommand(t, dir, "export", "1", archive)
	require.Contains(t, out, "exported")

	// Re-importing the archive creates a second project.
	out = runCommand(t, dir, "import", archive)
	require.Contains(t, out, "project 2")
}

func TestImportDirectoryScans(t *testing.T) {
	dir := t.TempDir()
	patterns := filepath.Join(dir, "patterns")
	require.NoError(t, os.MkdirAll(patterns, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(patterns, "a.txt"), []byte("Row 1 (L) (3)A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(patterns, "b.pat"), []byte("(2)B, (1)C\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(patterns, "notes.txt"), []byte("groceries\n"), 0o644))

	out := runCommand(t, dir, "import", patterns)
	require.Contains(t, out, `imported "a"`)
	require.Contains(t, out, `imported "b"`)
	require.NotContains(t, out, "notes")

	out = runCommand(t, dir, "projects")
	require.Contains(t, out, "a")
	require.Contains(t, out, "b")
}

func TestExportUnknownProjectFails(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"export", "99", filepath.Join(dir, "x.rlz"), "--config-dir", dir})
	require.Error(t, rootCmd.Execute())
}

func TestImportUnparseableFileFails(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("Row 1 (L) (x)A\n"), 0o644))

	rootCmd.SetArgs([]string{"import", bad, "--config-dir", dir})
	require.Error(t, rootCmd.Execute())
}
