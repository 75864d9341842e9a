package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// FileName is the manifest file looked up in every directory.
const FileName = "package.json"

// UnknownVersion is reported when a manifest declares no version.
const UnknownVersion = "unknown"

var (
	namePath    = jp.MustParseString("$.name")
	versionPath = jp.MustParseString("$.version")
)

// Package holds the manifest fields the fleet tooling cares about.
type Package struct {
	Name    string
	Version string
}

// Read parses dir/package.json.
func Read(dir string) (*Package, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	pkg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return pkg, nil
}

// Parse extracts name and version from a package.json document. A missing or
// non-string version becomes UnknownVersion; a missing name is left empty.
func Parse(data []byte) (*Package, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, errors.New("manifest root is not an object")
	}

	pkg := &Package{Version: UnknownVersion}
	if s, ok := namePath.First(doc).(string); ok {
		pkg.Name = s
	}
	if s, ok := versionPath.First(doc).(string); ok && strings.TrimSpace(s) != "" {
		pkg.Version = s
	}
	return pkg, nil
}

// HasMarker reports whether the package name contains marker.
func (p *Package) HasMarker(marker string) bool {
	return marker != "" && strings.Contains(p.Name, marker)
}
