package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/agentx-labs/sitefleet/internal/config"
	"github.com/agentx-labs/sitefleet/internal/fleet"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups <site-dir>",
	Short: "List the update backups kept inside a site",
	Long: `List the backups that 'update' wrote inside a site, oldest first.
Restoring one is a manual copy from the listed directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		backups, err := fleet.ListBackups(args[0], config.Current().BackupDir)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(out, "No backups found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CREATED\tVERSION\tTEMPLATE\tFILES\tRUN\tDIR")
		for _, b := range backups {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				b.CreatedAt.UTC().Format(time.RFC3339), b.Version, b.TemplateVersion, b.Files, b.RunID, b.Dir)
		}
		return w.Flush()
	},
}
