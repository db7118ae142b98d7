package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanDirectories_RecursivePattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "a.go"), "package a\n")
	writeFile(t, filepath.Join(root, "a", "deep", "deep.go"), "package deep\n")
	writeFile(t, filepath.Join(root, "b", "notes.txt"), "no go files here\n")
	writeFile(t, filepath.Join(root, "vendor", "v", "v.go"), "package v\n")
	writeFile(t, filepath.Join(root, ".hidden", "h.go"), "package h\n")
	writeFile(t, filepath.Join(root, "_skip", "s.go"), "package s\n")
	writeFile(t, filepath.Join(root, "testdata", "t.go"), "package t\n")

	scanner := NewDirectoryScanner()
	dirs, err := scanner.ScanDirectories([]string{root + "/..."})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "deep"),
	}, dirs)
}

func TestScanDirectories_PlainDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "pkg.go"), "package pkg\n")
	writeFile(t, filepath.Join(root, "pkg", "nested", "n.go"), "package nested\n")

	scanner := NewDirectoryScanner()
	dirs, err := scanner.ScanDirectories([]string{filepath.Join(root, "pkg")})
	require.NoError(t, err)

	// Plain arguments do not recurse.
	assert.Equal(t, []string{filepath.Join(root, "pkg")}, dirs)
}

func TestScanDirectories_DeduplicatesOverlappingArguments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "pkg.go"), "package pkg\n")

	scanner := NewDirectoryScanner()
	dirs, err := scanner.ScanDirectories([]string{
		filepath.Join(root, "pkg"),
		root + "/...",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "pkg")}, dirs)
}

func TestScanDirectories_MissingDirectory(t *testing.T) {
	scanner := NewDirectoryScanner()
	_, err := scanner.ScanDirectories([]string{filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
}
