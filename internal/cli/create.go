package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/sitefleet/internal/branding"
	"github.com/agentx-labs/sitefleet/internal/compose"
	"github.com/agentx-labs/sitefleet/internal/config"
	"github.com/agentx-labs/sitefleet/internal/manifest"
	"github.com/agentx-labs/sitefleet/internal/profile"
	"github.com/agentx-labs/sitefleet/internal/runner"
	"github.com/agentx-labs/sitefleet/internal/scaffold"
	"github.com/agentx-labs/sitefleet/internal/siteconfig"
	"github.com/spf13/cobra"
)

// defaultProfile is used when answers come from a file and --profile is unset.
const defaultProfile = "residential"

var (
	createDir      string
	createProfile  string
	createAnswers  string
	createTemplate string
)

func init() {
	createCmd.Flags().StringVar(&createDir, "dir", ".", "Parent directory for the new site")
	createCmd.Flags().StringVar(&createProfile, "profile", "", "Profile to start from (prompted when unset)")
	createCmd.Flags().StringVar(&createAnswers, "answers", "", "YAML file of dotted-path answers (skips prompts)")
	createCmd.Flags().StringVar(&createTemplate, "template", "", "Template directory (default: template_dir setting)")
	rootCmd.AddCommand(createCmd)
}

// newRunner builds the runner for external commands. Tests replace it.
var newRunner = func(cmd *cobra.Command) runner.Runner {
	r := &runner.ExecRunner{}
	if verbose {
		r.Stdout = cmd.ErrOrStderr()
		r.Stderr = cmd.ErrOrStderr()
	}
	return r
}

var createCmd = &cobra.Command{
	Use:   "create <site-name>",
	Short: "Scaffold a new site from the template",
	Long: `Copy the template into <dir>/<site-name>, ask for the site's details,
write its configuration, then initialize a repository, install dependencies,
and run a first build.

Examples:
  sitefleet create smith-plumbing
  sitefleet create smith-plumbing --profile emergency --dir ~/sites
  sitefleet create smith-plumbing --answers answers.yaml --template ~/plumbing-template`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := scaffold.ValidateName(name); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		settings := config.Current()

		templateDir, err := resolveTemplateDir(createTemplate, settings)
		if err != nil {
			return err
		}

		reg, err := profile.Load()
		if err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}

		prompter := compose.NewPrompter(cmd.InOrStdin(), out)
		answers := compose.AnswerFunc(prompter.Answers)
		profileName := createProfile

		if createAnswers != "" {
			loaded, err := compose.LoadAnswersFile(createAnswers)
			if err != nil {
				return err
			}
			answers = compose.Fixed(loaded)
			if profileName == "" {
				profileName = defaultProfile
			}
		}
		if profileName == "" {
			profileName, err = prompter.SelectProfile(reg)
			if err != nil {
				return fmt.Errorf("selecting profile: %w", err)
			}
		}

		s := &scaffold.Scaffolder{
			TemplateDir: templateDir,
			Composer:    &compose.Composer{Profiles: reg},
			Answers:     answers,
			Runner:      newRunner(cmd),
			Steps:       createSteps(settings),
			BackupDir:   settings.BackupDir,
			Logger:      newLogger(cmd.ErrOrStderr()),
			Out:         out,
		}

		fmt.Fprintf(out, "Creating new site: %s\n", name)
		result, err := s.Create(cmd.Context(), name, createDir, profileName)
		if err != nil {
			return err
		}

		printCreateResult(cmd, result)
		return nil
	},
}

func createSteps(s config.Settings) []runner.Step {
	return []runner.Step{
		{Name: "repository init", Argv: s.VCSInit},
		{Name: "dependency install", Argv: s.Install},
		{Name: "build", Argv: s.Build},
	}
}

// resolveTemplateDir picks the template from the flag, then the template_dir
// setting, then the working directory when it is itself a marked template.
func resolveTemplateDir(flag string, s config.Settings) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if s.TemplateDir != "" {
		return s.TemplateDir, nil
	}
	cwd, err := os.Getwd()
	if err == nil {
		if pkg, err := manifest.Read(cwd); err == nil && pkg.HasMarker(s.Marker) {
			return cwd, nil
		}
	}
	return "", fmt.Errorf("no template directory: pass --template or run '%s config set template_dir <path>'", branding.CLIName())
}

func printCreateResult(cmd *cobra.Command, result *scaffold.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\n✅ Successfully created new site: %s\n", result.Site.Name)
	fmt.Fprintf(out, "   Location: %s\n", result.Site.Path)
	fmt.Fprintf(out, "   Files:    %d\n", len(result.Files))

	if failed := result.Failed(); len(failed) > 0 {
		fmt.Fprintln(out, "\nSome setup steps did not complete:")
		for _, sr := range failed {
			fmt.Fprintf(out, "  ✗ %s: %s\n", sr.Step, sr.Detail)
			fmt.Fprintf(out, "    %s\n", sr.Hint)
		}
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. cd %s\n", filepath.Base(result.Site.Path))
	fmt.Fprintf(out, "  2. Review and customize %s\n", siteconfig.ArtifactPath)
	fmt.Fprintln(out, "  3. Add your logo and images to public/images/")
	fmt.Fprintln(out, "  4. Run 'npm run dev' to start the development server")
	fmt.Fprintln(out, "  5. Deploy to your hosting platform")
}
