// Package parser locates quickprop directives in Go sources and turns each
// annotated function into the metadata the generator consumes: the ordered
// (pattern, type) parameter sequence, the channel element type, the requested
// executor flavor, and the verbatim passthrough arguments.
package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/quickprop/quickprop/internal/annotations"
	"github.com/quickprop/quickprop/internal/errors"
	"github.com/quickprop/quickprop/internal/models"
)

// Parser extracts annotated test functions from Go packages.
type Parser struct {
	fileSet    *token.FileSet
	directives *annotations.Parser
}

// NewParser creates a new parser
func NewParser() *Parser {
	return &Parser{
		fileSet:    token.NewFileSet(),
		directives: annotations.NewParser(),
	}
}

// ParseSource parses source code from a string, mainly for testing purposes
func (p *Parser) ParseSource(filename, source string) (*models.PackageTests, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError("source", err)
	}

	tests, err := p.extractTests(file)
	if err != nil {
		return nil, err
	}

	return &models.PackageTests{
		PackageName: file.Name.Name,
		PackagePath: "./",
		Tests:       tests,
	}, nil
}

// ParseDirectory scans one package directory for annotated functions.
// Returns nil when the directory holds no Go package at all.
func (p *Parser) ParseDirectory(path string) (*models.PackageTests, error) {
	pkgs, err := parser.ParseDir(p.fileSet, path, notGenerated, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(fmt.Sprintf("directory %s", path), err)
	}

	// External test packages (foo_test) cannot carry annotated functions:
	// the generated wrapper lives in the package under test.
	var names []string
	for name := range pkgs {
		if !strings.HasSuffix(name, "_test") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	if len(names) > 1 {
		return nil, errors.Newf(errors.SyntaxErrorCode,
			"multiple packages found in directory %s", path)
	}

	result := &models.PackageTests{
		PackageName: names[0],
		PackagePath: path,
	}

	pkg := pkgs[names[0]]
	for _, filename := range sortedFileNames(pkg) {
		tests, err := p.extractTests(pkg.Files[filename])
		if err != nil {
			return nil, err
		}
		result.Tests = append(result.Tests, tests...)
	}

	return result, nil
}

// notGenerated keeps previously generated wrapper files out of a rescan.
func notGenerated(info fs.FileInfo) bool {
	return info.Name() != models.GeneratedFileName
}

// extractTests walks a file's declarations and builds test metadata for every
// function carrying a quickprop directive. The first validation failure
// aborts the whole file; no partial result is returned.
func (p *Parser) extractTests(file *ast.File) ([]models.AnnotatedTest, error) {
	var tests []models.AnnotatedTest

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Doc == nil {
			continue
		}

		directives, err := p.parseDirectives(funcDecl)
		if err != nil {
			return nil, err
		}
		if len(directives) == 0 {
			continue
		}

		loc := p.location(funcDecl.Pos())

		// A function may register as a test exactly once: a second
		// directive, or a shape go test already picks up, would produce
		// duplicate registration with a far worse error downstream.
		if len(directives) > 1 || isStandardTestFunc(funcDecl) {
			return nil, errors.NewDuplicateTestError(loc)
		}

		elem, ok := asyncResultElem(funcDecl)
		if !ok {
			return nil, errors.NewNotAsyncError(loc)
		}

		params, err := p.extractParams(funcDecl, loc)
		if err != nil {
			return nil, err
		}

		directive := directives[0]
		tests = append(tests, models.AnnotatedTest{
			FuncName:   funcDecl.Name.Name,
			TestName:   testName(funcDecl.Name.Name),
			Params:     params,
			ResultType: p.render(elem),
			Flavor:     directive.Flavor,
			Args:       directive.Args,
			Location:   loc,
		})
	}

	return tests, nil
}

// parseDirectives collects every quickprop directive in the function's doc
// comment. Non-directive doc lines are ignored.
func (p *Parser) parseDirectives(funcDecl *ast.FuncDecl) ([]*annotations.Directive, error) {
	var directives []*annotations.Directive

	for _, comment := range funcDecl.Doc.List {
		if !annotations.IsDirective(comment.Text) {
			continue
		}

		directive, err := p.directives.Parse(comment.Text, p.location(comment.Pos()))
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}

	return directives, nil
}

// extractParams builds the parameter pair sequence in declaration order.
// Receivers are rejected outright; there is no way to feed a bound method
// through the property engine's positional calling convention.
func (p *Parser) extractParams(funcDecl *ast.FuncDecl, loc errors.SourceLocation) ([]models.Param, error) {
	if funcDecl.Recv != nil {
		return nil, errors.NewReceiverParamError(loc)
	}

	var params []models.Param
	for _, field := range funcDecl.Type.Params.List {
		typeStr := p.render(field.Type)
		_, variadic := field.Type.(*ast.Ellipsis)

		if len(field.Names) == 0 {
			params = append(params, models.Param{
				Name:     fmt.Sprintf("arg%d", len(params)),
				Type:     typeStr,
				Variadic: variadic,
			})
			continue
		}

		for _, name := range field.Names {
			binding := name.Name
			if binding == "_" {
				// The bridge has to forward the value, so blank
				// bindings get a deterministic replacement name.
				binding = fmt.Sprintf("arg%d", len(params))
			}
			params = append(params, models.Param{
				Name:     binding,
				Type:     typeStr,
				Variadic: variadic,
			})
		}
	}

	return params, nil
}

// asyncResultElem reports whether the function is asynchronous in the sense
// the wrapper requires: a single result that is a receivable channel. The
// channel's element type becomes the bridging closure's return type.
func asyncResultElem(funcDecl *ast.FuncDecl) (ast.Expr, bool) {
	results := funcDecl.Type.Results
	if results == nil || len(results.List) != 1 {
		return nil, false
	}

	field := results.List[0]
	if len(field.Names) > 1 {
		return nil, false
	}

	ch, ok := field.Type.(*ast.ChanType)
	if !ok || ch.Dir&ast.RECV == 0 {
		return nil, false
	}

	return ch.Value, true
}

// isStandardTestFunc reports whether go test would already register this
// function on its own.
func isStandardTestFunc(funcDecl *ast.FuncDecl) bool {
	if !strings.HasPrefix(funcDecl.Name.Name, "Test") {
		return false
	}

	params := funcDecl.Type.Params
	if params == nil || len(params.List) != 1 || len(params.List[0].Names) > 1 {
		return false
	}

	star, ok := params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "testing" && sel.Sel.Name == "T"
}

// testName maps a function identifier onto its wrapper's go test identifier.
func testName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return "Test" + string(unicode.ToUpper(r)) + name[size:]
}

// render prints a type expression exactly as declared in source.
func (p *Parser) render(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fileSet, expr); err != nil {
		return ""
	}
	return buf.String()
}

// location converts a token position into a diagnostic source location.
func (p *Parser) location(pos token.Pos) errors.SourceLocation {
	position := p.fileSet.Position(pos)
	return errors.SourceLocation{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

// sortedFileNames returns the package's file names in a stable order so
// generated output does not depend on map iteration.
func sortedFileNames(pkg *ast.Package) []string {
	names := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
