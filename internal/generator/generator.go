// Package generator synthesizes the per-package wrapper test files from the
// metadata the parser extracted.
package generator

import (
	"path/filepath"
	"strings"

	"github.com/quickprop/quickprop/internal/errors"
	"github.com/quickprop/quickprop/internal/models"
	"github.com/quickprop/quickprop/internal/templates"
	"github.com/quickprop/quickprop/internal/utils"
)

// Generator turns package metadata into formatted wrapper source.
type Generator struct{}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePackage produces the wrapper file for one package. Exactly one of
// (file, error) is returned; a validation problem yields no partial output.
func (g *Generator) GeneratePackage(pkg *models.PackageTests) (*models.GeneratedFile, error) {
	if pkg == nil || !pkg.HasTests() {
		return nil, errors.New(errors.GenerationErrorCode, "package has no annotated functions")
	}

	if err := checkRegistrationCollisions(pkg.Tests); err != nil {
		return nil, err
	}

	data := templates.WrapperFileData{
		PackageName:   pkg.PackageName,
		RuntimeImport: templates.RuntimeImportPath,
		Wrappers:      make([]templates.WrapperData, 0, len(pkg.Tests)),
	}
	for _, test := range pkg.Tests {
		data.Wrappers = append(data.Wrappers, buildWrapperData(test))
	}

	content, err := templates.ExecuteTemplate("wrapper-file", templates.WrapperFileTemplate, data)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(pkg.PackagePath, models.GeneratedFileName)
	formatted, err := utils.FormatGeneratedSource(filePath, []byte(content))
	if err != nil {
		return nil, errors.WrapGenerateError(filePath, err)
	}

	return &models.GeneratedFile{
		PackageName: pkg.PackageName,
		FilePath:    filePath,
		Content:     string(formatted),
		TestCount:   len(pkg.Tests),
	}, nil
}

// buildWrapperData renders the parameter pair sequence into the closure's
// parameter list and the forwarded argument list, preserving declaration
// order on both sides. A variadic parameter becomes a plain slice on the
// closure: the engine binds generated values positionally and cannot invoke
// a variadic function, so the slice is spread back out at the call site.
func buildWrapperData(test models.AnnotatedTest) templates.WrapperData {
	params := make([]string, 0, len(test.Params))
	args := make([]string, 0, len(test.Params))
	for _, param := range test.Params {
		if param.Variadic {
			params = append(params, param.Name+" []"+strings.TrimPrefix(param.Type, "..."))
			args = append(args, param.Name+"...")
		} else {
			params = append(params, param.Name+" "+param.Type)
			args = append(args, param.Name)
		}
	}

	return templates.WrapperData{
		TestName:   test.TestName,
		FuncName:   test.FuncName,
		ParamList:  strings.Join(params, ", "),
		ArgList:    strings.Join(args, ", "),
		ResultType: test.ResultType,
		Marker:     test.Flavor.MarkerName(),
		Args:       test.Args,
	}
}

// checkRegistrationCollisions rejects two annotated functions whose wrapper
// names collide (e.g. fuzzMe and FuzzMe both map to TestFuzzMe).
func checkRegistrationCollisions(tests []models.AnnotatedTest) error {
	seen := make(map[string]models.AnnotatedTest, len(tests))
	for _, test := range tests {
		if prev, ok := seen[test.TestName]; ok {
			return errors.Newf(errors.GenerationErrorCode,
				"wrapper %s would register both %s (%s) and %s",
				test.TestName, prev.FuncName, prev.Location.String(), test.FuncName).
				WithLocation(test.Location)
		}
		seen[test.TestName] = test
	}
	return nil
}
