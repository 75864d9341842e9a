//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/sitefleet/internal/compose"
	"github.com/agentx-labs/sitefleet/internal/fleet"
	"github.com/agentx-labs/sitefleet/internal/profile"
	"github.com/agentx-labs/sitefleet/internal/registry"
	"github.com/agentx-labs/sitefleet/internal/scaffold"
	"github.com/agentx-labs/sitefleet/internal/siteconfig"
	"github.com/agentx-labs/sitefleet/internal/tree"
)

const marker = "plumbing-website"

func answers(name, city string) compose.Answers {
	return compose.Answers{
		{Path: tree.MustParsePath("business.name"), Value: name},
		{Path: tree.MustParsePath("business.city"), Value: city},
		{Path: tree.MustParsePath("business.state"), Value: "OR"},
		{Path: tree.MustParsePath("business.zip"), Value: "97201"},
		{Path: tree.MustParsePath("contact.phone"), Value: "(503) 555-0100"},
		{Path: tree.MustParsePath("contact.email"), Value: "office@example.com"},
		{Path: tree.MustParsePath("contact.address"), Value: "1 Main St"},
	}
}

// TestCreateThenUpdateFleet covers the full lifecycle:
// create two sites -> change the template -> dry run -> update -> re-run.
func TestCreateThenUpdateFleet(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	reg, err := profile.Load()
	if err != nil {
		t.Fatalf("profile.Load: %v", err)
	}

	// Step 1: Scaffold two sites from different profiles.
	sites := map[string]string{"north-plumbing": "residential", "south-plumbing": "emergency"}
	for name, prof := range sites {
		s := &scaffold.Scaffolder{
			TemplateDir: env.TemplateDir,
			Composer:    &compose.Composer{Profiles: reg},
			Answers:     compose.Fixed(answers(name, "Portland")),
			Runner:      noopRunner(),
		}
		res, err := s.Create(ctx, name, env.BaseDir, prof)
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		if len(res.Failed()) != 0 {
			t.Fatalf("Create(%s) failed steps: %v", name, res.Failed())
		}
	}

	north := filepath.Join(env.BaseDir, "north-plumbing")
	assertFileContains(t, filepath.Join(north, siteconfig.ArtifactPath), "north-plumbing")
	assertFileNotExists(t, filepath.Join(north, "node_modules"))
	assertFileNotExists(t, filepath.Join(north, ".git", "HEAD"))
	assertFileContains(t, filepath.Join(north, ".gitignore"), "backup/")

	// Step 2: Both sites are discovered at the template version.
	scan, err := registry.Scan(env.BaseDir, registry.ScanOptions{Marker: marker})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scan.Sites) != 2 {
		t.Fatalf("Scan found %d sites, want 2", len(scan.Sites))
	}

	// Step 3: Ship a new template version and hand-edit one site.
	writeFile(t, filepath.Join(env.TemplateDir, "package.json"), `{"name":"plumbing-website","version":"1.1.0"}`)
	writeFile(t, filepath.Join(env.TemplateDir, "src/components/Header.tsx"), "export const Header = () => <header>v2</header>;\n")
	writeFile(t, filepath.Join(env.TemplateDir, "src/components/Footer.tsx"), "export const Footer = () => <footer />;\n")
	writeFile(t, filepath.Join(north, "src/app/page.tsx"), "// local edit\n")
	configBefore := readFile(t, filepath.Join(north, siteconfig.ArtifactPath))

	// Step 4: A dry run reports but writes nothing.
	dry := &fleet.Updater{TemplateDir: env.TemplateDir, DryRun: true, Runner: noopRunner(), Marker: marker}
	report, err := dry.UpdateAll(ctx, env.BaseDir)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	for _, rep := range report.Sites {
		if rep.Writes() != 0 {
			t.Errorf("dry run wrote %d files in %s", rep.Writes(), rep.Site.Name)
		}
	}
	assertFileContains(t, filepath.Join(north, "src/app/page.tsx"), "local edit")
	assertFileNotExists(t, filepath.Join(north, "backup"))

	// Step 5: A real run syncs template files and keeps the site config.
	u := &fleet.Updater{TemplateDir: env.TemplateDir, Runner: noopRunner(), Marker: marker}
	report, err = u.UpdateAll(ctx, env.BaseDir)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(report.Failed()) != 0 {
		t.Fatalf("failed sites: %v", report.Failed())
	}
	for _, rep := range report.Sites {
		assertFileExists(t, filepath.Join(rep.Backup, fleet.SnapshotFile))
	}
	assertFileContains(t, filepath.Join(north, "src/components/Header.tsx"), "v2")
	assertFileExists(t, filepath.Join(north, "src/components/Footer.tsx"))
	assertFileContains(t, filepath.Join(north, "src/app/page.tsx"), "return null")
	if got := readFile(t, filepath.Join(north, siteconfig.ArtifactPath)); got != configBefore {
		t.Errorf("site config changed by update:\n%s", got)
	}

	// The backup holds the pre-update hand edit.
	entries, err := os.ReadDir(filepath.Join(north, "backup"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("backup dir entries = %v (err %v), want 1", entries, err)
	}
	assertFileContains(t, filepath.Join(north, "backup", entries[0].Name(), "src/app/page.tsx"), "local edit")

	// Step 6: Re-running is idempotent.
	report, err = u.UpdateAll(ctx, env.BaseDir)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	for _, rep := range report.Sites {
		if rep.Writes() != 0 {
			t.Errorf("second update wrote %d files in %s", rep.Writes(), rep.Site.Name)
		}
	}
}
