package scaffold

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentx-labs/sitefleet/internal/branding"
	"github.com/agentx-labs/sitefleet/internal/compose"
	"github.com/agentx-labs/sitefleet/internal/manifest"
	"github.com/agentx-labs/sitefleet/internal/profile"
	"github.com/agentx-labs/sitefleet/internal/registry"
	"github.com/agentx-labs/sitefleet/internal/runner"
	"github.com/agentx-labs/sitefleet/internal/siteconfig"
	"github.com/agentx-labs/sitefleet/internal/templateset"
)

//go:embed templates/README.md.tmpl
var templatesFS embed.FS

var readmeTemplate = template.Must(template.ParseFS(templatesFS, "templates/README.md.tmpl"))

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var (
	// ErrInvalidName is returned for site names outside [a-z0-9-].
	ErrInvalidName = errors.New("site name must contain only lowercase letters, numbers, and hyphens")
	// ErrAlreadyExists is returned when the target directory is present.
	ErrAlreadyExists = errors.New("target directory already exists")
	// ErrInsideTemplate is returned when the target would land inside the
	// template tree being copied.
	ErrInsideTemplate = errors.New("target directory is inside the template directory")
)

// StepError wraps the failure of a required creation step. The target
// directory has been removed by the time it is returned.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Result describes a created site.
type Result struct {
	Site registry.Site
	// Files lists the template files copied, relative to the site root.
	Files  []string
	Config *siteconfig.SiteConfig
	// Steps holds the outcome of each post-create command in order.
	Steps []runner.StepResult
}

// Failed returns the post-create steps that did not succeed.
func (r *Result) Failed() []runner.StepResult {
	var out []runner.StepResult
	for _, s := range r.Steps {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Scaffolder creates site instances.
type Scaffolder struct {
	TemplateDir string
	Composer    *compose.Composer
	Answers     compose.AnswerFunc
	Runner      runner.Runner
	// Steps run after the files are written, in order. Failures are
	// recorded, never fatal.
	Steps []runner.Step
	// BackupDir is the site-relative backup directory added to .gitignore.
	// Empty means templateset.DefaultBackupDir.
	BackupDir string
	Logger    *slog.Logger
	// Out receives one progress line per phase. Nil discards.
	Out io.Writer
}

// ValidateName checks a site name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Create builds targetDir/siteName from the template using profileName.
func (s *Scaffolder) Create(ctx context.Context, siteName, targetDir, profileName string) (*Result, error) {
	logger := s.logger()
	if err := ValidateName(siteName); err != nil {
		return nil, err
	}

	dest, err := filepath.Abs(filepath.Join(targetDir, siteName))
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}
	if _, err := os.Lstat(dest); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, dest)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking target directory: %w", err)
	}

	prof, err := s.Composer.Profiles.Get(profileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", compose.ErrUnknownProfile, err)
	}
	if info, err := os.Stat(s.TemplateDir); err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", s.TemplateDir)
	}
	if inside, err := isWithin(s.TemplateDir, dest); err != nil {
		return nil, fmt.Errorf("resolving template directory: %w", err)
	} else if inside {
		return nil, fmt.Errorf("%w: %s is under %s, choose a parent directory outside the template", ErrInsideTemplate, dest, s.TemplateDir)
	}

	logger.Debug("creating site", "name", siteName, "path", dest, "profile", profileName)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, &StepError{Step: "create directory", Err: err}
	}

	res, err := s.populate(ctx, dest, siteName, prof)
	if err != nil {
		if rmErr := os.RemoveAll(dest); rmErr != nil {
			logger.Error("rollback failed", "path", dest, "err", rmErr)
			return nil, errors.Join(err, fmt.Errorf("removing %s: %w", dest, rmErr))
		}
		logger.Debug("rolled back partial site", "path", dest)
		return nil, err
	}
	return res, nil
}

// populate runs every step after the directory exists. Any returned error
// is fatal and triggers rollback.
func (s *Scaffolder) populate(ctx context.Context, dest, siteName string, prof *profile.Profile) (*Result, error) {
	logger := s.logger()
	out := s.out()

	fmt.Fprintln(out, "Copying template files...")
	files, err := templateset.CopyTree(osfs.New(s.TemplateDir), osfs.New(dest), func(rel string) bool {
		if templateset.Excluded(rel) {
			logger.Debug("excluding", "path", rel)
			return true
		}
		logger.Debug("including", "path", rel)
		return false
	})
	if err != nil {
		return nil, &StepError{Step: "copy template", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &StepError{Step: "copy template", Err: err}
	}

	fmt.Fprintln(out, "Please provide site configuration details:")
	var answers compose.Answers
	if s.Answers != nil {
		answers, err = s.Answers(prof)
		if err != nil {
			return nil, &StepError{Step: "collect answers", Err: err}
		}
	}
	cfg, err := s.Composer.Compose(prof.Name, answers)
	if err != nil {
		return nil, &StepError{Step: "compose configuration", Err: err}
	}

	if err := writeArtifacts(dest, siteName, s.backupDir(), cfg); err != nil {
		return nil, &StepError{Step: "write configuration", Err: err}
	}
	logger.Debug("wrote site artifacts", "config", siteconfig.ArtifactPath, "readme", templateset.ReadmeArtifact)

	res := &Result{
		Site:   siteRecord(siteName, dest),
		Files:  files,
		Config: cfg,
	}
	r := s.Runner
	if r == nil {
		r = &runner.ExecRunner{}
	}
	res.Steps = runner.RunSteps(ctx, r, dest, s.Steps, out)
	for _, sr := range res.Failed() {
		logger.Warn("post-create step failed", "step", sr.Step, "detail", sr.Detail)
	}
	return res, nil
}

func writeArtifacts(dest, siteName, backupDir string, cfg *siteconfig.SiteConfig) error {
	body, err := siteconfig.RenderArtifact(cfg)
	if err != nil {
		return err
	}
	configPath := filepath.Join(dest, filepath.FromSlash(siteconfig.ArtifactPath))
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, body, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", siteconfig.ArtifactPath, err)
	}

	readme, err := RenderReadme(siteName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dest, templateset.ReadmeArtifact), readme, 0644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}

	return EnsureGitignore(dest, filepath.ToSlash(filepath.Clean(backupDir))+"/")
}

// isWithin reports whether target is root or lies beneath it, after
// resolving symlinks on the parts of both paths that exist.
func isWithin(root, target string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(resolveExisting(absRoot), resolveExisting(target))
	if err != nil {
		// Different volumes.
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// resolveExisting evaluates symlinks in the longest existing prefix of p and
// re-appends the missing tail.
func resolveExisting(p string) string {
	tail := ""
	for cur := p; ; {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(resolved, tail)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		tail = filepath.Join(filepath.Base(cur), tail)
		cur = parent
	}
}

// RenderReadme produces the instance README for siteName.
func RenderReadme(siteName string) ([]byte, error) {
	data := struct {
		SiteName   string
		CLIName    string
		ConfigPath string
	}{siteName, branding.CLIName(), siteconfig.ArtifactPath}

	var buf bytes.Buffer
	if err := readmeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering README: %w", err)
	}
	return buf.Bytes(), nil
}

// siteRecord describes the new instance the way a registry scan would.
func siteRecord(name, dest string) registry.Site {
	site := registry.Site{Name: name, Path: dest, Version: manifest.UnknownVersion}
	if pkg, err := manifest.Read(dest); err == nil {
		site.Version = pkg.Version
	}
	return site
}

func (s *Scaffolder) backupDir() string {
	if s.BackupDir == "" {
		return templateset.DefaultBackupDir
	}
	return s.BackupDir
}

func (s *Scaffolder) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

func (s *Scaffolder) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}
