package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rowloom/internal/domain"
	"rowloom/internal/persist"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := persist.Open(cmd.Context(), paths.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		projects, err := db.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no projects")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tROWS\tPOSITION\tUPDATED")
		for _, p := range projects {
			pos := domain.Clamp(p.Pattern, p.Position)
			place := "-"
			if len(p.Pattern.Rows) > 0 {
				place = fmt.Sprintf("row %d step %d", p.Pattern.Rows[pos.Row].Number, pos.Step+1)
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
				p.ID, p.Name, len(p.Pattern.Rows), place, p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}
