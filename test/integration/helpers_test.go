//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/sitefleet/internal/runner"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir     string // HOME, so no real settings file is read
	TemplateDir string // the shared site template
	BaseDir     string // parent of every created site
}

// setupTestEnv creates isolated temp directories and a template tree. The env
// vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:     t.TempDir(),
		TemplateDir: t.TempDir(),
		BaseDir:     t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)

	files := map[string]string{
		"package.json":                    `{"name":"plumbing-website","version":"1.0.0"}`,
		"README.md":                       "# Plumbing template\n",
		"tsconfig.json":                   "{\n  \"strict\": true\n}\n",
		"next.config.ts":                  "export default {};\n",
		"src/app/page.tsx":                "export default function Page() { return null; }\n",
		"src/components/Header.tsx":       "export const Header = () => <header>v1</header>;\n",
		"src/config/siteConfig.ts":        "// template placeholder\n",
		"public/images/template/hero.svg": "<svg>hero</svg>",
		"node_modules/left-pad/index.js":  "module.exports = 1;\n",
		".git/HEAD":                       "ref: refs/heads/main\n",
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(env.TemplateDir, filepath.FromSlash(rel)), content)
	}
	return env
}

// noopRunner stands in for git and npm.
func noopRunner() runner.Runner {
	return runner.Func(func(context.Context, string, []string) (*runner.Output, error) {
		return &runner.Output{}, nil
	})
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the content of path, failing the test if it is missing.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
