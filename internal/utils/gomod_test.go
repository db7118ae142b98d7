package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGoMod(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseModuleName(t *testing.T) {
	path := writeGoMod(t, t.TempDir(), "module example.com/app\n\ngo 1.25\n")

	parser := NewGoModParser(NewFileReader())
	name, err := parser.ParseModuleName(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", name)
}

func TestParseModuleName_NotAGoModFile(t *testing.T) {
	parser := NewGoModParser(NewFileReader())
	_, err := parser.ParseModuleName(filepath.Join(t.TempDir(), "main.go"))
	require.Error(t, err)
}

func TestHasRequirement(t *testing.T) {
	path := writeGoMod(t, t.TempDir(), `module example.com/app

go 1.25

require (
	github.com/quickprop/quickprop v0.1.0
	github.com/stretchr/testify v1.11.1
)
`)

	parser := NewGoModParser(NewFileReader())

	ok, err := parser.HasRequirement(path, "github.com/quickprop/quickprop")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = parser.HasRequirement(path, "github.com/leanovate/gopter")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasRequirement_OwnModule(t *testing.T) {
	path := writeGoMod(t, t.TempDir(), "module github.com/quickprop/quickprop\n\ngo 1.25\n")

	parser := NewGoModParser(NewFileReader())
	ok, err := parser.HasRequirement(path, "github.com/quickprop/quickprop")
	require.NoError(t, err)
	assert.True(t, ok, "the runtime's own module satisfies the requirement")
}

func TestFindGoModFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeGoMod(t, root, "module example.com/app\n\ngo 1.25\n")

	nested := filepath.Join(root, "internal", "deep")
	require.NoError(t, os.MkdirAll(nested, 0755))

	parser := NewGoModParser(NewFileReader())
	found, err := parser.FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindGoModFile_NotFound(t *testing.T) {
	parser := NewGoModParser(NewFileReader())
	_, err := parser.FindGoModFile(t.TempDir())
	require.Error(t, err)
}
