package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rowloom/internal/importer"
	"rowloom/internal/persist"
)

var exportCmd = &cobra.Command{
	Use:   "export ID FILE",
	Short: "Export a project as a compressed archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("project id must be a number: %q", args[0])
		}

		db, err := persist.Open(cmd.Context(), paths.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		project, err := db.GetProject(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := importer.ExportFile(args[1], project); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %q to %s\n", project.Name, args[1])
		return nil
	},
}
