package templateset

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/sitefleet/internal/siteconfig"
)

// ConfigArtifact and ReadmeArtifact are generated per instance and never
// copied from the template.
const (
	ConfigArtifact = siteconfig.ArtifactPath
	ReadmeArtifact = "README.md"
)

// DefaultBackupDir is the directory inside each site that receives update
// backups unless configured otherwise.
const DefaultBackupDir = "backup"

// controlDirs never hold template or instance content.
var controlDirs = map[string]bool{
	".git":           true,
	"node_modules":   true,
	".next":          true,
	"dist":           true,
	DefaultBackupDir: true,
}

var lockfiles = map[string]bool{
	"package-lock.json":    true,
	"tsconfig.tsbuildinfo": true,
	".DS_Store":            true,
}

// profileDefs holds the template's own profile definitions.
const profileDefs = "scripts/templates"

var syncList = []string{
	"src/components",
	"src/app",
	"src/styles",
	"src/utils",
	"public/images/template",
	"next.config.ts",
	"postcss.config.mjs",
	"tailwind.config.ts",
	"tsconfig.json",
	"package.json",
	"README.md",
}

// normalize converts rel to a clean slash-separated path.
func normalize(rel string) string {
	rel = path.Clean(filepath.ToSlash(rel))
	return strings.TrimPrefix(rel, "./")
}

// Within reports whether rel is dir itself or a path beneath it.
func Within(rel, dir string) bool {
	rel, dir = normalize(rel), normalize(dir)
	return rel == dir || strings.HasPrefix(rel, dir+"/")
}

// InControlDir reports whether any segment of rel is a version-control,
// dependency, build-output, or backup directory.
func InControlDir(rel string) bool {
	for _, seg := range strings.Split(normalize(rel), "/") {
		if controlDirs[seg] {
			return true
		}
	}
	return false
}

// Excluded reports whether rel must be left out of a full template copy.
func Excluded(rel string) bool {
	rel = normalize(rel)
	if InControlDir(rel) {
		return true
	}
	if lockfiles[path.Base(rel)] {
		return true
	}
	if rel == profileDefs || strings.HasPrefix(rel, profileDefs+"/") {
		return true
	}
	return rel == ReadmeArtifact || rel == ConfigArtifact
}

// SyncList returns the ordered allow-list of paths an update may push.
func SyncList() []string {
	return append([]string(nil), syncList...)
}
