package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanFindsPatternFiles(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "cuff.txt", "Row 1 (L) (3)A, (2)B\n")
	b := write(t, dir, "nested/bracelet.pat", "(5)A\n(2)B, (3)C\n")
	write(t, dir, "notes.txt", "shopping list\nmilk\n")
	write(t, dir, "photo.jpg", "Row 1 (L) (3)A\n") // wrong extension
	write(t, dir, ".stash/hidden.txt", "Row 1 (L) (3)A\n")

	found, err := NewScanner(nil).Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{a, b}, found)
}

func TestScanHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "cuff.txt", "Row 1 (L) (3)A\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner(nil).Scan(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanEmptyDir(t *testing.T) {
	found, err := NewScanner(nil).Scan(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, found)
}
