package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading testdata %s: %v", name, err)
	}
	return data
}

func TestParse(t *testing.T) {
	tests := []struct {
		file    string
		name    string
		version string
	}{
		{"site.json", "acme-plumbing-website", "1.4.0"},
		{"no-version.json", "plumbing-website", UnknownVersion},
		{"numeric-name.json", "", UnknownVersion},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			pkg, err := Parse(readTestdata(t, tt.file))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if pkg.Name != tt.name {
				t.Errorf("Name = %q, want %q", pkg.Name, tt.name)
			}
			if pkg.Version != tt.version {
				t.Errorf("Version = %q, want %q", pkg.Version, tt.version)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse(readTestdata(t, "malformed.json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := Parse([]byte(`["not", "an", "object"]`)); err == nil {
		t.Fatal("expected error for non-object root")
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), readTestdata(t, "site.json"), 0644); err != nil {
		t.Fatal(err)
	}
	pkg, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !pkg.HasMarker("plumbing-website") {
		t.Errorf("HasMarker = false for %q", pkg.Name)
	}
	if pkg.HasMarker("") {
		t.Error("empty marker must not match")
	}

	if _, err := Read(t.TempDir()); err == nil {
		t.Error("expected error for missing package.json")
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current, latest string
		want            int
	}{
		{"1.0.0", "1.0.1", -1},
		{"v2.0.0", "2.0.0", 0},
		{"1.10.0", "1.9.0", 1},
	}
	for _, tt := range tests {
		got, err := CompareVersions(tt.current, tt.latest)
		if err != nil {
			t.Fatalf("CompareVersions(%q, %q): %v", tt.current, tt.latest, err)
		}
		if got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.current, tt.latest, got, tt.want)
		}
	}

	if _, err := CompareVersions(UnknownVersion, "1.0.0"); err == nil {
		t.Error("expected error for unknown version")
	}
}

func TestIsOlder(t *testing.T) {
	older, err := IsOlder("0.9.0", "1.0.0")
	if err != nil || !older {
		t.Errorf("IsOlder(0.9.0, 1.0.0) = %v, %v", older, err)
	}
	older, err = IsOlder("1.0.0", "1.0.0")
	if err != nil || older {
		t.Errorf("IsOlder(1.0.0, 1.0.0) = %v, %v", older, err)
	}
}
