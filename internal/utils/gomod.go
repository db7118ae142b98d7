package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModParser provides utilities for reading go.mod files
type GoModParser struct {
	fileReader *FileReader
}

// NewGoModParser creates a new go.mod parser with caching
func NewGoModParser(fileReader *FileReader) *GoModParser {
	return &GoModParser{
		fileReader: fileReader,
	}
}

// ParseModuleName extracts the module path from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	modFile, err := p.parse(goModPath)
	if err != nil {
		return "", err
	}

	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in go.mod")
	}

	return modFile.Module.Mod.Path, nil
}

// HasRequirement reports whether the go.mod requires the given module path,
// directly or indirectly. Generated wrappers import the quickprop runtime,
// so a missing requirement means the generated tests will not build.
func (p *GoModParser) HasRequirement(goModPath, modulePath string) (bool, error) {
	modFile, err := p.parse(goModPath)
	if err != nil {
		return false, err
	}

	if modFile.Module != nil && modFile.Module.Mod.Path == modulePath {
		// The runtime's own module trivially satisfies the requirement.
		return true, nil
	}

	for _, req := range modFile.Require {
		if req.Mod.Path == modulePath {
			return true, nil
		}
	}
	return false, nil
}

// FindGoModFile searches for a go.mod file starting from the given directory
// and walking up toward the filesystem root
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir := filepath.Clean(startDir)

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if content, err := p.fileReader.ReadFile(goModPath); err == nil && content != "" {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}

func (p *GoModParser) parse(goModPath string) (*modfile.File, error) {
	cleanPath := filepath.Clean(goModPath)
	if !strings.HasSuffix(cleanPath, "go.mod") {
		return nil, fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := p.fileReader.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.Parse(cleanPath, []byte(content), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	return modFile, nil
}
