package registry

import (
	"fmt"
	"log/slog"

	"github.com/agentx-labs/sitefleet/internal/manifest"
)

// Site is one discovered instance.
type Site struct {
	Name    string // directory basename
	Path    string // absolute path
	Version string // declared version, or manifest.UnknownVersion
}

// Behind reports whether the site declares an older version than
// templateVersion. Unparseable versions on either side are never behind.
func (s Site) Behind(templateVersion string) bool {
	older, err := manifest.IsOlder(s.Version, templateVersion)
	return err == nil && older
}

// ScanOptions configures Scan.
type ScanOptions struct {
	// Marker is the package name substring that identifies a site.
	Marker string
	// Skip lists absolute directories that are never reported, such as the
	// template root when it lives beside its instances.
	Skip []string
	// Logger receives warnings and debug tracing. Nil discards.
	Logger *slog.Logger
}

// ScanResult holds the sites found by one Scan, sorted by name, and the
// warnings raised for entries that had to be skipped.
type ScanResult struct {
	Sites    []Site
	Warnings []string
}

// DirectoryUnreadableError is returned when the base directory itself cannot
// be listed.
type DirectoryUnreadableError struct {
	Path string
	Err  error
}

func (e *DirectoryUnreadableError) Error() string {
	return fmt.Sprintf("could not read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryUnreadableError) Unwrap() error { return e.Err }
