package registry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentx-labs/sitefleet/internal/manifest"
)

// Scan lists baseDir once and returns every direct child that is a managed
// site. Files, directories without a manifest, and manifests without the
// marker are skipped silently. An unreadable or malformed manifest adds a
// warning and is skipped. Only a failure to list baseDir is an error.
func Scan(baseDir string, opts ScanOptions) (*ScanResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, &DirectoryUnreadableError{Path: baseDir, Err: err}
	}
	entries, err := os.ReadDir(absBase)
	if err != nil {
		return nil, &DirectoryUnreadableError{Path: absBase, Err: err}
	}
	logger.Debug("scanning for sites", "dir", absBase, "marker", opts.Marker)

	skip := make(map[string]bool, len(opts.Skip))
	for _, s := range opts.Skip {
		if abs, err := filepath.Abs(s); err == nil {
			skip[filepath.Clean(abs)] = true
		}
	}

	result := &ScanResult{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sitePath := filepath.Join(absBase, entry.Name())
		if skip[sitePath] {
			logger.Debug("skipping excluded directory", "dir", sitePath)
			continue
		}

		if _, err := os.Stat(filepath.Join(sitePath, manifest.FileName)); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		pkg, err := manifest.Read(sitePath)
		if err != nil {
			msg := fmt.Sprintf("could not read %s in %s: %v", manifest.FileName, entry.Name(), err)
			logger.Warn("skipping site candidate", "dir", entry.Name(), "err", err)
			result.Warnings = append(result.Warnings, msg)
			continue
		}
		if !pkg.HasMarker(opts.Marker) {
			logger.Debug("package name lacks marker", "dir", entry.Name(), "name", pkg.Name)
			continue
		}

		result.Sites = append(result.Sites, Site{Name: entry.Name(), Path: sitePath, Version: pkg.Version})
	}

	sort.Slice(result.Sites, func(i, j int) bool {
		return result.Sites[i].Name < result.Sites[j].Name
	})
	return result, nil
}
