package fleet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/sitefleet/internal/registry"
	"github.com/agentx-labs/sitefleet/internal/templateset"
)

// SnapshotFile is written at the root of every backup.
const SnapshotFile = "snapshot.yaml"

// Snapshot describes one backup.
type Snapshot struct {
	RunID           string    `yaml:"run_id"`
	CreatedAt       time.Time `yaml:"created_at"`
	Site            string    `yaml:"site"`
	Version         string    `yaml:"version"`
	TemplateVersion string    `yaml:"template_version"`
	Files           int       `yaml:"files"`
}

// backupName turns a time into a directory name safe on every platform,
// e.g. 2024-05-01T09-30-00-000Z.
func backupName(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(s)
}

// backupSite copies the site tree, minus control directories and earlier
// backups, to <site>/<backupDir>/<timestamp>/ and records a snapshot.
func backupSite(site registry.Site, backupDir string, snap Snapshot) (string, error) {
	base := filepath.Join(site.Path, backupDir)
	dest := filepath.Join(base, backupName(snap.CreatedAt))
	if _, err := os.Stat(dest); err == nil {
		dest += "-" + shortID(snap.RunID)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	copied, err := templateset.CopyTree(osfs.New(site.Path), osfs.New(dest), func(rel string) bool {
		return templateset.InControlDir(rel) || templateset.Within(rel, backupDir)
	})
	if err != nil {
		return dest, err
	}

	snap.Files = len(copied)
	data, err := yaml.Marshal(snap)
	if err != nil {
		return dest, fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := util.WriteFile(osfs.New(dest), SnapshotFile, data, 0644); err != nil {
		return dest, fmt.Errorf("writing snapshot: %w", err)
	}
	return dest, nil
}

// ReadSnapshot loads the snapshot metadata of a backup directory.
func ReadSnapshot(dir string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &s, nil
}

// Backup is one backup directory and its snapshot.
type Backup struct {
	Dir string
	Snapshot
}

// ListBackups returns the backups under <sitePath>/<backupDir>, oldest
// first. Directories without a snapshot file are ignored.
func ListBackups(sitePath, backupDir string) ([]Backup, error) {
	if backupDir == "" {
		backupDir = DefaultBackupDir
	}
	base := filepath.Join(sitePath, backupDir)
	entries, err := os.ReadDir(base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backups: %w", err)
	}

	var out []Backup
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(base, e.Name())
		snap, err := ReadSnapshot(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, Backup{Dir: dir, Snapshot: *snap})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
