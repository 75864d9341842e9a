package fleet

import (
	"github.com/agentx-labs/sitefleet/internal/registry"
	"github.com/agentx-labs/sitefleet/internal/runner"
)

// FileChange records the decision taken for one synced path.
type FileChange struct {
	Path     string
	Decision Decision
	// Written is true when the template file was copied.
	Written bool
	// Diff holds a unified diff for conflicts when diffs were requested.
	Diff string
}

// SiteReport is the outcome of updating one site.
type SiteReport struct {
	Site registry.Site
	// Backup is the snapshot directory, empty in dry-run mode.
	Backup  string
	Changes []FileChange
	Steps   []runner.StepResult
	// Err is set when the site could not be fully synced. Later sites are
	// still processed.
	Err error
}

// Count returns how many changes carry decision d.
func (r *SiteReport) Count(d Decision) int {
	n := 0
	for _, c := range r.Changes {
		if c.Decision == d {
			n++
		}
	}
	return n
}

// Writes returns the number of files copied into the site.
func (r *SiteReport) Writes() int {
	n := 0
	for _, c := range r.Changes {
		if c.Written {
			n++
		}
	}
	return n
}

// Conflicts returns the changes whose site content differed from the
// template.
func (r *SiteReport) Conflicts() []FileChange {
	var out []FileChange
	for _, c := range r.Changes {
		if c.Decision.Conflict() {
			out = append(out, c)
		}
	}
	return out
}

// BatchReport is the outcome of one UpdateAll call.
type BatchReport struct {
	RunID           string
	DryRun          bool
	TemplateVersion string
	// Discovered lists every site the scan found, before confirmation.
	Discovered []registry.Site
	// Warnings carries per-entry scan warnings.
	Warnings []string
	// Declined is true when the operator refused the batch.
	Declined bool
	Sites    []SiteReport
}

// Failed returns the reports of sites that ended with an error.
func (b *BatchReport) Failed() []SiteReport {
	var out []SiteReport
	for _, s := range b.Sites {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}
