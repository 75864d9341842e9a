package fleet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"

	"github.com/agentx-labs/sitefleet/internal/manifest"
	"github.com/agentx-labs/sitefleet/internal/registry"
	"github.com/agentx-labs/sitefleet/internal/runner"
	"github.com/agentx-labs/sitefleet/internal/templateset"
)

// DefaultBackupDir is the directory inside each site that holds backups.
const DefaultBackupDir = templateset.DefaultBackupDir

// ConfirmFunc is asked once per batch with the discovered sites. Returning
// false cancels the batch without error.
type ConfirmFunc func(sites []registry.Site) (bool, error)

// Updater pushes template changes to managed sites.
type Updater struct {
	TemplateDir string
	// DryRun reports decisions without writing, backing up, or running
	// commands.
	DryRun bool
	// ShowDiff attaches and prints a unified diff for every conflict.
	ShowDiff bool
	Runner   runner.Runner
	// Steps run in every site after a successful sync (install, build).
	Steps []runner.Step
	// Confirm gates the batch. Nil proceeds without asking.
	Confirm   ConfirmFunc
	Marker    string
	BackupDir string
	Logger    *slog.Logger
	Out       io.Writer
	Now       func() time.Time
}

// UpdateAll scans baseDir for sites and updates each one in name order.
// Only a failure to read the template or to list baseDir is returned as an
// error; per-site failures land in the site's report.
func (u *Updater) UpdateAll(ctx context.Context, baseDir string) (*BatchReport, error) {
	logger := u.logger()
	out := u.out()

	if info, err := os.Stat(u.TemplateDir); err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", u.TemplateDir)
	}
	if !filepath.IsLocal(u.backupDir()) {
		return nil, fmt.Errorf("backup directory %q must be a relative path inside each site", u.backupDir())
	}

	report := &BatchReport{
		RunID:           uuid.New().String(),
		DryRun:          u.DryRun,
		TemplateVersion: manifest.UnknownVersion,
	}
	if pkg, err := manifest.Read(u.TemplateDir); err == nil {
		report.TemplateVersion = pkg.Version
	}

	fmt.Fprintln(out, "Finding website instances...")
	scan, err := registry.Scan(baseDir, registry.ScanOptions{
		Marker: u.Marker,
		Skip:   []string{u.TemplateDir},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	report.Warnings = scan.Warnings
	report.Discovered = scan.Sites
	for _, w := range scan.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}

	if len(scan.Sites) == 0 {
		fmt.Fprintln(out, "No plumbing website instances found.")
		return report, nil
	}

	fmt.Fprintln(out, "\nFound the following sites:")
	for _, s := range scan.Sites {
		note := ""
		if s.Behind(report.TemplateVersion) {
			note = fmt.Sprintf(", template is %s", report.TemplateVersion)
		}
		fmt.Fprintf(out, "- %s (version: %s%s)\n", s.Name, s.Version, note)
	}

	if u.Confirm != nil {
		ok, err := u.Confirm(scan.Sites)
		if err != nil {
			return report, fmt.Errorf("confirming update: %w", err)
		}
		if !ok {
			report.Declined = true
			fmt.Fprintln(out, "Update cancelled.")
			return report, nil
		}
	}

	templateFS := osfs.New(u.TemplateDir)
	files, err := templateset.ExpandSyncList(templateFS)
	if err != nil {
		return report, fmt.Errorf("resolving sync list: %w", err)
	}
	logger.Debug("resolved sync list", "files", len(files), "run_id", report.RunID)

	for _, site := range scan.Sites {
		rep := u.updateSite(ctx, site, templateFS, files, report)
		report.Sites = append(report.Sites, rep)
	}

	if failed := len(report.Failed()); failed > 0 {
		fmt.Fprintf(out, "\nUpdate process completed with %d failed site(s).\n", failed)
	} else {
		fmt.Fprintln(out, "\n✅ Update process completed!")
	}
	if u.DryRun {
		fmt.Fprintln(out, "\nThis was a dry run. No changes were made.")
	}
	return report, nil
}

// updateSite runs the per-site sequence: backup, sync, post-steps.
func (u *Updater) updateSite(ctx context.Context, site registry.Site, templateFS billy.Filesystem, files []string, batch *BatchReport) SiteReport {
	logger := u.logger().With("site", site.Name)
	out := u.out()
	rep := SiteReport{Site: site}

	fmt.Fprintf(out, "\nUpdating site: %s\n", site.Name)
	logger.Debug("paths", "site", site.Path, "template", u.TemplateDir)

	fail := func(err error) SiteReport {
		rep.Err = err
		logger.Error("site update failed", "err", err)
		fmt.Fprintf(out, "✗ Error updating site %s: %v\n", site.Name, err)
		return rep
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if !u.DryRun {
		fmt.Fprintln(out, "Creating backup...")
		dir, err := backupSite(site, u.backupDir(), Snapshot{
			RunID:           batch.RunID,
			CreatedAt:       u.now(),
			Site:            site.Name,
			Version:         site.Version,
			TemplateVersion: batch.TemplateVersion,
		})
		rep.Backup = dir
		if err != nil {
			return fail(fmt.Errorf("backup: %w", err))
		}
		logger.Debug("backup written", "dir", dir)
	}

	fmt.Fprintln(out, "Copying template files...")
	siteFS := osfs.New(site.Path)
	for _, rel := range files {
		change, ok, err := u.syncFile(templateFS, siteFS, rel, logger)
		if err != nil {
			return fail(fmt.Errorf("syncing %s: %w", rel, err))
		}
		if ok {
			rep.Changes = append(rep.Changes, change)
		}
	}

	if !u.DryRun {
		r := u.Runner
		if r == nil {
			r = &runner.ExecRunner{}
		}
		rep.Steps = runner.RunSteps(ctx, r, site.Path, u.Steps, out)
		for _, sr := range rep.Steps {
			if !sr.OK() {
				logger.Warn("post-update step failed", "step", sr.Step, "detail", sr.Detail)
				fmt.Fprintf(out, "  ✗ %s failed: %s\n", sr.Step, sr.Hint)
			}
		}
	}

	fmt.Fprintf(out, "✅ Successfully updated site: %s\n", site.Name)
	return rep
}

// syncFile decides and, outside dry-run, applies the change for one path.
// ok is false when the template no longer has the path.
func (u *Updater) syncFile(templateFS, siteFS billy.Filesystem, rel string, logger *slog.Logger) (change FileChange, ok bool, err error) {
	out := u.out()
	change = FileChange{Path: rel}

	src, err := util.ReadFile(templateFS, rel)
	srcExists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return change, false, fmt.Errorf("reading template file: %w", err)
	}

	dst, err := util.ReadFile(siteFS, rel)
	dstExists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return change, false, fmt.Errorf("reading site file: %w", err)
	}

	d, ok := Decide(srcExists, dstExists, bytes.Equal(src, dst), u.DryRun)
	if !ok {
		logger.Debug("template file not found, skipping", "path", rel)
		return change, false, nil
	}
	change.Decision = d

	switch d {
	case SkipIdentical:
		logger.Debug("identical to template", "path", rel)
	case Create:
		if u.DryRun {
			fmt.Fprintf(out, "Would create: %s\n", rel)
		}
	case ConflictSkip, ConflictOverwrite:
		logger.Warn("file differs from template", "path", rel, "decision", d.String())
		fmt.Fprintf(out, "Potential conflict: %s exists and differs from template.\n", rel)
		if d == ConflictSkip {
			fmt.Fprintln(out, "  (Dry run) This file would be overwritten.")
		} else {
			fmt.Fprintln(out, "  Overwriting existing file.")
		}
		if u.ShowDiff {
			change.Diff = RenderDiff(DiffLines(string(dst), string(src)), rel)
			fmt.Fprintf(out, "--- Diff ---\n%s---\n", change.Diff)
		}
	}

	if d.Writes() && !u.DryRun {
		if err := templateset.CopyFile(templateFS, siteFS, rel); err != nil {
			return change, false, fmt.Errorf("copying: %w", err)
		}
		change.Written = true
		logger.Debug("copied", "path", rel, "decision", d.String())
	}
	return change, true, nil
}

func (u *Updater) logger() *slog.Logger {
	if u.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return u.Logger
}

func (u *Updater) out() io.Writer {
	if u.Out == nil {
		return io.Discard
	}
	return u.Out
}

func (u *Updater) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}

func (u *Updater) backupDir() string {
	if u.BackupDir == "" {
		return DefaultBackupDir
	}
	return u.BackupDir
}
