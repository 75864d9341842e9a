package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/sitefleet/internal/profile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profilesCmd)
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the built-in site profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := profile.Load()
		if err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		for _, p := range reg.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Title(), p.Description)
		}
		return w.Flush()
	},
}
