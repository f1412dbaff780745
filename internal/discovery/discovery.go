// Package discovery finds importable pattern files in the filesystem.
package discovery

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"rowloom/internal/importer"
)

// Extensions considered pattern candidates before content sniffing.
var candidateExts = map[string]bool{
	".txt": true,
	".pat": true,
	".bt":  true,
	".btw": true,
}

const sniffLimit = 64 * 1024

// Scanner walks directories looking for files that parse as patterns.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a scanner.
func NewScanner(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{logger: logger}
}

// Scan walks root and returns the paths of files whose extension and
// content both look like a pattern, sorted for stable output. Hidden
// directories are skipped. The walk honors ctx cancellation.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("scan skip", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !candidateExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if s.sniff(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	s.logger.Info("scan complete", zap.String("root", root), zap.Int("found", len(found)))
	return found, nil
}

// sniff reads the head of the file and checks for a parseable row line.
func (s *Scanner) sniff(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head, err := io.ReadAll(io.LimitReader(f, sniffLimit))
	if err != nil {
		return false
	}
	return importer.LooksLikePattern(string(head))
}
