package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/sitefleet/internal/config"
	"github.com/agentx-labs/sitefleet/internal/manifest"
	"github.com/agentx-labs/sitefleet/internal/registry"
	"github.com/spf13/cobra"
)

var sitesTemplate string

func init() {
	sitesCmd.Flags().StringVar(&sitesTemplate, "template", "", "Template directory to compare versions against")
	rootCmd.AddCommand(sitesCmd)
}

var sitesCmd = &cobra.Command{
	Use:   "sites <base-dir>",
	Short: "List managed sites under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		settings := config.Current()

		opts := registry.ScanOptions{
			Marker: settings.Marker,
			Logger: newLogger(cmd.ErrOrStderr()),
		}
		templateVersion := ""
		if sitesTemplate != "" {
			pkg, err := manifest.Read(sitesTemplate)
			if err != nil {
				return fmt.Errorf("reading template manifest: %w", err)
			}
			templateVersion = pkg.Version
			opts.Skip = []string{sitesTemplate}
		}

		result, err := registry.Scan(args[0], opts)
		if err != nil {
			return err
		}
		for _, warn := range result.Warnings {
			fmt.Fprintf(out, "Warning: %s\n", warn)
		}
		if len(result.Sites) == 0 {
			fmt.Fprintln(out, "No managed sites found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tSTATUS\tPATH")
		for _, s := range result.Sites {
			status := "-"
			if templateVersion != "" {
				status = "current"
				if s.Behind(templateVersion) {
					status = "behind " + templateVersion
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.Version, status, s.Path)
		}
		return w.Flush()
	},
}
