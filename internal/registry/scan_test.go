package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/sitefleet/internal/manifest"
)

const marker = "plumbing-website"

// writeSite creates baseDir/name with the given package.json contents. An
// empty manifest leaves package.json out.
func writeSite(t *testing.T, baseDir, name, pkgJSON string) string {
	t.Helper()
	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if pkgJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkgJSON), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScanFindsMarkedSites(t *testing.T) {
	base := t.TempDir()
	writeSite(t, base, "zeta", `{"name":"zeta-plumbing-website","version":"1.0.0"}`)
	writeSite(t, base, "alpha", `{"name":"plumbing-website"}`)
	writeSite(t, base, "other", `{"name":"some-other-app","version":"1.0.0"}`)
	writeSite(t, base, "empty", "")
	if err := os.WriteFile(filepath.Join(base, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := Scan(base, ScanOptions{Marker: marker})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Sites) != 2 {
		t.Fatalf("got %d sites, want 2: %+v", len(res.Sites), res.Sites)
	}

	if res.Sites[0].Name != "alpha" || res.Sites[1].Name != "zeta" {
		t.Errorf("sites not sorted by name: %s, %s", res.Sites[0].Name, res.Sites[1].Name)
	}
	if res.Sites[0].Version != manifest.UnknownVersion {
		t.Errorf("alpha version = %q, want %q", res.Sites[0].Version, manifest.UnknownVersion)
	}
	if res.Sites[0].Behind("9.9.9") {
		t.Error("a site with no version should never be behind")
	}
	if !filepath.IsAbs(res.Sites[1].Path) {
		t.Errorf("site path %q is not absolute", res.Sites[1].Path)
	}
}

func TestScanMalformedManifestWarns(t *testing.T) {
	base := t.TempDir()
	writeSite(t, base, "good-a", `{"name":"a-plumbing-website","version":"1.0.0"}`)
	writeSite(t, base, "good-b", `{"name":"b-plumbing-website","version":"1.0.0"}`)
	writeSite(t, base, "broken", `{"name": "c-plumbing-website",`)

	res, err := Scan(base, ScanOptions{Marker: marker})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Sites) != 2 {
		t.Errorf("got %d sites, want 2", len(res.Sites))
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(res.Warnings), res.Warnings)
	}
}

func TestScanSkip(t *testing.T) {
	base := t.TempDir()
	tmpl := writeSite(t, base, "template", `{"name":"plumbing-website","version":"2.0.0"}`)
	writeSite(t, base, "site", `{"name":"site-plumbing-website","version":"1.0.0"}`)

	res, err := Scan(base, ScanOptions{Marker: marker, Skip: []string{tmpl}})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Sites) != 1 || res.Sites[0].Name != "site" {
		t.Fatalf("unexpected sites: %+v", res.Sites)
	}
	if !res.Sites[0].Behind("2.0.0") {
		t.Error("site 1.0.0 should be behind template 2.0.0")
	}
	if res.Sites[0].Behind("not-a-version") {
		t.Error("unparseable template version must not report behind")
	}
}

func TestScanMissingBaseDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), ScanOptions{Marker: marker})
	var due *DirectoryUnreadableError
	if !errors.As(err, &due) {
		t.Fatalf("expected DirectoryUnreadableError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestScanEmptyBaseDir(t *testing.T) {
	res, err := Scan(t.TempDir(), ScanOptions{Marker: marker})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Sites) != 0 || len(res.Warnings) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}
