package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agentx-labs/sitefleet/internal/config"
	"github.com/agentx-labs/sitefleet/internal/fleet"
	"github.com/agentx-labs/sitefleet/internal/registry"
	"github.com/agentx-labs/sitefleet/internal/runner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	updateDryRun bool
	updateDiff   bool
	updateYes    bool
)

func init() {
	updateCmd.Flags().BoolVarP(&updateDryRun, "dry-run", "d", false, "Report what would change without writing")
	updateCmd.Flags().BoolVar(&updateDiff, "diff", false, "Show a unified diff for each conflicting file")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update <base-dir> <template-dir>",
	Short: "Sync template files into every site under a directory",
	Long: `Find every managed site directly under <base-dir>, back it up, copy the
template-owned files from <template-dir> into it, then reinstall and rebuild.
Each site's configuration and content stay untouched.

Examples:
  sitefleet update ~/sites ~/plumbing-template --dry-run --diff
  sitefleet update ~/sites ~/plumbing-template --yes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, templateDir := args[0], args[1]
		out := cmd.OutOrStdout()
		settings := config.Current()

		u := &fleet.Updater{
			TemplateDir: templateDir,
			DryRun:      updateDryRun,
			ShowDiff:    updateDiff,
			Runner:      newRunner(cmd),
			Steps:       updateSteps(settings),
			Marker:      settings.Marker,
			BackupDir:   settings.BackupDir,
			Logger:      newLogger(cmd.ErrOrStderr()),
			Out:         out,
		}
		if !updateYes {
			u.Confirm = confirmUpdate(cmd.InOrStdin(), out)
		}

		report, err := u.UpdateAll(cmd.Context(), baseDir)
		if err != nil {
			return err
		}
		if len(report.Sites) > 0 {
			printUpdateSummary(out, report)
		}
		return nil
	},
}

func updateSteps(s config.Settings) []runner.Step {
	return []runner.Step{
		{Name: "dependency install", Argv: s.Install},
		{Name: "build", Argv: s.Build},
	}
}

// confirmUpdate asks once for the whole batch. A non-terminal stdin declines,
// so scripts must pass --yes.
func confirmUpdate(in io.Reader, out io.Writer) fleet.ConfirmFunc {
	return func(sites []registry.Site) (bool, error) {
		if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
			fmt.Fprintln(out, "stdin is not a terminal; pass --yes to update without confirmation.")
			return false, nil
		}

		fmt.Fprintf(out, "\n? Proceed with updating %d site(s)? (y/N) ", len(sites))
		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return false, scanner.Err()
		}
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}
}

func printUpdateSummary(out io.Writer, report *fleet.BatchReport) {
	fmt.Fprintln(out, "\nSummary:")
	for i := range report.Sites {
		rep := &report.Sites[i]
		if rep.Err != nil {
			fmt.Fprintf(out, "  ✗ %s: %v\n", rep.Site.Name, rep.Err)
			continue
		}
		fmt.Fprintf(out, "  ✓ %s: %d created, %d conflicts, %d unchanged, %d written\n",
			rep.Site.Name,
			rep.Count(fleet.Create),
			len(rep.Conflicts()),
			rep.Count(fleet.SkipIdentical),
			rep.Writes(),
		)
		if rep.Backup != "" {
			fmt.Fprintf(out, "    backup: %s\n", rep.Backup)
		}
		for _, sr := range rep.Steps {
			if !sr.OK() {
				fmt.Fprintf(out, "    ✗ %s: %s\n", sr.Step, sr.Hint)
			}
		}
	}
	fmt.Fprintf(out, "  run id: %s\n", report.RunID)
}
