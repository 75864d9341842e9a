package templateset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (relative path → content) under a new temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

func TestExcluded(t *testing.T) {
	excluded := []string{
		".git",
		".git/config",
		"node_modules/react/index.js",
		"src/node_modules/x.js",
		".next/cache",
		"dist/app.js",
		"backup/2024-01-01/package.json",
		"package-lock.json",
		"tsconfig.tsbuildinfo",
		"scripts/templates",
		"scripts/templates/residential.ts",
		"README.md",
		"./README.md",
		"src/config/siteConfig.ts",
	}
	for _, rel := range excluded {
		assert.True(t, Excluded(rel), "expected %q excluded", rel)
	}

	included := []string{
		"src/components/Header.tsx",
		"src/components/README.md",
		"src/config/siteConfig.types.ts",
		"scripts/create-site.ts",
		"distribution/notes.md",
		"public/images/logo.svg",
		"package.json",
	}
	for _, rel := range included {
		assert.False(t, Excluded(rel), "expected %q included", rel)
	}
}

func TestWithin(t *testing.T) {
	cases := []struct {
		rel, dir string
		want     bool
	}{
		{"var/backups", "var/backups", true},
		{"var/backups/2024-05-01/package.json", "var/backups/", true},
		{"./var/backups/x", "var/backups", true},
		{"var/backups-old/x", "var/backups", false},
		{"var/cache/x", "var/backups", false},
		{"var", "var/backups", false},
		{"backup/x", "backup", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Within(tc.rel, tc.dir), "Within(%q, %q)", tc.rel, tc.dir)
	}
}

func TestSyncListBoundary(t *testing.T) {
	list := SyncList()
	assert.Equal(t, "src/components", list[0])
	assert.Contains(t, list, "README.md")
	assert.Contains(t, list, "package.json")
	assert.NotContains(t, list, ConfigArtifact)
	assert.NotContains(t, list, "public/images")

	// Callers get a copy.
	list[0] = "mutated"
	assert.Equal(t, "src/components", SyncList()[0])
}

func TestExpandSyncList(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/components/b.tsx":             "b",
		"src/components/a.tsx":             "a",
		"src/components/node_modules/x.js": "x",
		"src/config/siteConfig.ts":         "cfg",
		"public/images/template/hero.png":  "png",
		"public/images/logo.svg":           "svg",
		"package.json":                     "{}",
		"README.md":                        "readme",
		"unlisted.txt":                     "u",
	})

	files, err := ExpandSyncList(osfs.New(root))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/components/a.tsx",
		"src/components/b.tsx",
		"public/images/template/hero.png",
		"package.json",
		"README.md",
	}, files)
}

func TestCopyTreeAppliesFilterAndModes(t *testing.T) {
	src := writeTree(t, map[string]string{
		"src/app/page.tsx":         "page",
		"src/config/siteConfig.ts": "cfg",
		"node_modules/pkg/i.js":    "dep",
		"README.md":                "readme",
		"scripts/run.sh":           "#!/bin/sh\n",
	})
	require.NoError(t, os.Chmod(filepath.Join(src, "scripts/run.sh"), 0755))
	dst := t.TempDir()

	copied, err := CopyTree(osfs.New(src), osfs.New(dst), Excluded)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/app/page.tsx", "scripts/run.sh"}, copied)

	data, err := os.ReadFile(filepath.Join(dst, "src/app/page.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "page", string(data))

	assert.NoFileExists(t, filepath.Join(dst, "README.md"))
	assert.NoFileExists(t, filepath.Join(dst, "src/config/siteConfig.ts"))
	assert.NoDirExists(t, filepath.Join(dst, "node_modules"))

	info, err := os.Stat(filepath.Join(dst, "scripts/run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestCopyTreeNilFilterCopiesEverything(t *testing.T) {
	src := writeTree(t, map[string]string{
		"README.md": "r",
		"a/b/c.txt": "c",
		".git/HEAD": "ref",
	})
	dst := t.TempDir()

	copied, err := CopyTree(osfs.New(src), osfs.New(dst), nil)
	require.NoError(t, err)
	assert.Len(t, copied, 3)
	assert.FileExists(t, filepath.Join(dst, ".git/HEAD"))
}
