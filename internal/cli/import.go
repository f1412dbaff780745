package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rowloom/internal/discovery"
	"rowloom/internal/domain"
	"rowloom/internal/importer"
	"rowloom/internal/persist"
)

var importCmd = &cobra.Command{
	Use:   "import FILE|DIR",
	Short: "Import a pattern file, a rowloom archive, or every pattern in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return importDirectory(cmd, path)
		}

		var project domain.Project
		if isArchive(path) {
			p, err := importer.ImportArchiveFile(path)
			if err != nil {
				return fmt.Errorf("import archive: %w", err)
			}
			p.ID = 0 // stored ids never travel between databases
			project = p
		} else {
			pattern, err := importer.ImportPatternFile(path)
			if err != nil {
				return fmt.Errorf("import pattern: %w", err)
			}
			project = domain.Project{Name: pattern.Name, SourcePath: path, Pattern: pattern}
		}

		db, err := persist.Open(cmd.Context(), paths.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		saved, err := db.SaveProject(cmd.Context(), project)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %q: project %d, %d rows, %d beads\n",
			saved.Name, saved.ID, len(saved.Pattern.Rows), saved.Pattern.TotalBeads())
		return nil
	},
}

// importDirectory scans dir for pattern files and imports each one.
func importDirectory(cmd *cobra.Command, dir string) error {
	found, err := discovery.NewScanner(logger).Scan(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(found) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no pattern files under %s\n", dir)
		return nil
	}

	db, err := persist.Open(cmd.Context(), paths.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, path := range found {
		pattern, err := importer.ImportPatternFile(path)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "skipped %s: %v\n", path, err)
			continue
		}
		saved, err := db.SaveProject(cmd.Context(), domain.Project{
			Name: pattern.Name, SourcePath: path, Pattern: pattern,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %q: project %d, %d rows\n",
			saved.Name, saved.ID, len(saved.Pattern.Rows))
	}
	return nil
}

// isArchive sniffs the gzip magic bytes.
func isArchive(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	magic, err := bufio.NewReader(f).Peek(2)
	return err == nil && magic[0] == 0x1f && magic[1] == 0x8b
}
