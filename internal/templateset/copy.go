package templateset

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// SkipFunc reports whether a slash-separated relative path is left out of a
// copy. Returning true for a directory prunes its subtree.
type SkipFunc func(rel string) bool

// CopyTree copies every regular file of src into dst, preserving file
// modes, and returns the copied paths in walk order. Symlinks and other
// special files are skipped.
func CopyTree(src, dst billy.Filesystem, skip SkipFunc) ([]string, error) {
	var copied []string
	err := util.Walk(src, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := normalize(p)
		if rel == "." {
			return nil
		}
		if skip != nil && skip(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return dst.MkdirAll(rel, info.Mode().Perm()|0700)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if err := CopyFile(src, dst, rel); err != nil {
			return err
		}
		copied = append(copied, rel)
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copying tree: %w", err)
	}
	return copied, nil
}

// CopyFile copies one file from src to the same relative path in dst,
// creating parent directories and carrying the source mode.
func CopyFile(src, dst billy.Filesystem, rel string) error {
	info, err := src.Stat(rel)
	if err != nil {
		return err
	}
	data, err := util.ReadFile(src, rel)
	if err != nil {
		return err
	}
	if dir := path.Dir(rel); dir != "." {
		if err := dst.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := util.WriteFile(dst, rel, data, info.Mode().Perm()); err != nil {
		return err
	}
	if ch, ok := dst.(billy.Change); ok {
		if err := ch.Chmod(rel, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// ExpandSyncList resolves each sync list entry present in the template into
// the regular files it covers. Directories are walked; files inside control
// directories and lockfiles are skipped. The result is sorted within each
// entry and follows the sync list order across entries.
func ExpandSyncList(template billy.Filesystem) ([]string, error) {
	var out []string
	for _, entry := range syncList {
		info, err := template.Stat(entry)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry, err)
		}
		if !info.IsDir() {
			if info.Mode().IsRegular() {
				out = append(out, entry)
			}
			continue
		}

		var files []string
		err = util.Walk(template, entry, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel := normalize(p)
			if InControlDir(rel) {
				if fi.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if fi.Mode().IsRegular() && !lockfiles[path.Base(rel)] {
				files = append(files, rel)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", entry, err)
		}
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}
