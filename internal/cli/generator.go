package cli

import (
	"os"
	"path/filepath"

	"github.com/quickprop/quickprop/internal/errors"
	"github.com/quickprop/quickprop/internal/generator"
	"github.com/quickprop/quickprop/internal/models"
	"github.com/quickprop/quickprop/internal/parser"
	"github.com/quickprop/quickprop/internal/utils"
)

// runtimeModulePath is the module the generated wrappers depend on.
const runtimeModulePath = "github.com/quickprop/quickprop"

// Summary reports what a generation run produced.
type Summary struct {
	PackagesScanned   int
	PackagesGenerated int
	TestsGenerated    int
	PoolTests         int
	SingleTests       int
	GeneratedFiles    []string
	StaleFilesRemoved []string
}

// Generator orchestrates one generation run: scan, parse, synthesize, write.
type Generator struct {
	scanner     *DirectoryScanner
	parser      *parser.Parser
	codegen     *generator.Generator
	goMod       *utils.GoModParser
	diagnostics *utils.DiagnosticSystem
	summary     Summary
}

// NewGenerator creates a generator with default diagnostics
func NewGenerator() *Generator {
	return NewGeneratorWithDiagnostics(utils.NewDiagnosticSystem(utils.DiagnosticInfo))
}

// NewGeneratorWithDiagnostics creates a generator with the given diagnostics
func NewGeneratorWithDiagnostics(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:     NewDirectoryScanner(),
		parser:      parser.NewParser(),
		codegen:     generator.NewGenerator(),
		goMod:       utils.NewGoModParser(utils.NewFileReader()),
		diagnostics: diagnostics,
	}
}

// Generate runs the whole pipeline over the given directory arguments. The
// first validation failure in any package aborts the run; packages already
// written stay written, the failing package gets no partial output.
func (g *Generator) Generate(rootDirs []string) error {
	dirs, err := g.scanner.ScanDirectories(rootDirs)
	if err != nil {
		return err
	}

	if len(dirs) > 0 {
		g.checkRuntimeRequirement(dirs[0])
	}

	for _, dir := range dirs {
		if err := g.generateDirectory(dir); err != nil {
			return err
		}
	}

	return nil
}

// GetSummary returns statistics about the last Generate run
func (g *Generator) GetSummary() Summary {
	return g.summary
}

func (g *Generator) generateDirectory(dir string) error {
	g.summary.PackagesScanned++
	g.diagnostics.Verbose("scanning %s", dir)

	pkg, err := g.parser.ParseDirectory(dir)
	if err != nil {
		return err
	}

	if pkg == nil || !pkg.HasTests() {
		// A wrapper left over from a removed annotation would still
		// register with go test; drop it.
		stale := filepath.Join(dir, models.GeneratedFileName)
		if _, statErr := os.Stat(stale); statErr == nil {
			if err := os.Remove(stale); err != nil {
				return errors.WrapFileSystemError("remove", stale, err)
			}
			g.summary.StaleFilesRemoved = append(g.summary.StaleFilesRemoved, stale)
			g.diagnostics.Verbose("removed stale %s", stale)
		}
		return nil
	}

	file, err := g.codegen.GeneratePackage(pkg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(file.FilePath, []byte(file.Content), 0644); err != nil {
		return errors.WrapFileSystemError("write", file.FilePath, err)
	}

	g.summary.PackagesGenerated++
	g.summary.TestsGenerated += file.TestCount
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
	for _, test := range pkg.Tests {
		switch test.Flavor {
		case models.FlavorPool:
			g.summary.PoolTests++
		case models.FlavorSingle:
			g.summary.SingleTests++
		}
	}

	g.diagnostics.Verbose("generated %s (%d tests)", file.FilePath, file.TestCount)
	return nil
}

// checkRuntimeRequirement warns when the scanned project's go.mod does not
// require the quickprop runtime the generated wrappers import.
func (g *Generator) checkRuntimeRequirement(dir string) {
	goModPath, err := g.goMod.FindGoModFile(dir)
	if err != nil {
		g.diagnostics.Warn("no go.mod found above %s; generated tests import %s", dir, runtimeModulePath)
		return
	}

	ok, err := g.goMod.HasRequirement(goModPath, runtimeModulePath)
	if err != nil {
		g.diagnostics.Warn("could not inspect %s: %v", goModPath, err)
		return
	}
	if !ok {
		g.diagnostics.Warn("%s does not require %s; run 'go get %s' so the generated tests build",
			goModPath, runtimeModulePath, runtimeModulePath)
	}
}
