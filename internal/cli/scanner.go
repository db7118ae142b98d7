package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quickprop/quickprop/internal/errors"
)

// DirectoryScanner resolves directory arguments into the set of package
// directories that contain Go files. Supports Go-style "./..." patterns for
// recursive scanning.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories expands the provided arguments into package directories.
// The result is sorted and duplicate-free.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	found := make(map[string]bool)

	for _, rootDir := range rootDirs {
		if strings.HasSuffix(rootDir, "/...") {
			baseDir := strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}

			cleanPath, err := filepath.Abs(baseDir)
			if err != nil {
				return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", baseDir), err)
			}

			if err := s.walkGoDirectories(cleanPath, found); err != nil {
				return nil, err
			}
			continue
		}

		cleanPath, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", rootDir), err)
		}

		hasGo, err := hasGoFiles(cleanPath)
		if err != nil {
			return nil, err
		}
		if hasGo {
			found[cleanPath] = true
		}
	}

	dirs := make([]string, 0, len(found))
	for dir := range found {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// walkGoDirectories collects every subdirectory containing Go files,
// skipping hidden, underscore-prefixed, vendor and testdata trees.
func (s *DirectoryScanner) walkGoDirectories(root string, found map[string]bool) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapWithOperation("scan", fmt.Sprintf("directory %s", path), err)
		}
		if !entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
			name == "vendor" || name == "testdata") {
			return filepath.SkipDir
		}

		hasGo, err := hasGoFiles(path)
		if err != nil {
			return err
		}
		if hasGo {
			found[path] = true
		}
		return nil
	})
}

// hasGoFiles reports whether the directory directly contains .go sources.
func hasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, errors.WrapWithOperation("read", fmt.Sprintf("directory %s", dir), err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".go") {
			return true, nil
		}
	}
	return false, nil
}
