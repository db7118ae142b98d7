// Package templates holds the text templates the generator renders into
// wrapper test files, plus the data shapes they consume.
package templates

import (
	"strings"
	"text/template"

	"github.com/quickprop/quickprop/internal/errors"
)

// RuntimeImportPath is the library every generated wrapper calls into.
const RuntimeImportPath = "github.com/quickprop/quickprop/pkg/quickprop"

// WrapperFileData describes one generated per-package wrapper file.
type WrapperFileData struct {
	PackageName   string
	RuntimeImport string
	Wrappers      []WrapperData
}

// WrapperData describes one synthesized test function. ParamList and ArgList
// are pre-rendered so the template stays purely structural.
type WrapperData struct {
	TestName   string   // go test identifier of the wrapper
	FuncName   string   // annotated function invoked by the bridge
	ParamList  string   // bridging closure parameter list, declaration order
	ArgList    string   // forwarded call arguments, same order
	ResultType string   // bridging closure return type
	Marker     string   // runtime registration function (Pool or Single)
	Args       []string // verbatim passthrough tokens for the marker
}

// WrapperFileTemplate renders a whole autogen wrapper file. Each wrapper
// declares the bridging closure over the annotated function, drives it to
// completion with Await, and hands it to the flavor's registration marker
// together with the untouched passthrough arguments.
const WrapperFileTemplate = `// Code generated by quickprop. DO NOT EDIT.
// This file was automatically generated and should not be modified manually.

package {{.PackageName}}

import (
	"testing"

	"{{.RuntimeImport}}"
)

{{range .Wrappers}}func {{.TestName}}(t *testing.T) {
	prop := func({{.ParamList}}) {{.ResultType}} {
		return quickprop.Await({{.FuncName}}({{.ArgList}}))
	}
	quickprop.{{.Marker}}(t, prop{{range .Args}}, {{printf "%q" .}}{{end}})
}

{{end}}`

// ExecuteTemplate renders a named template with the given data
func ExecuteTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var builder strings.Builder
	if err := tmpl.Execute(&builder, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return builder.String(), nil
}
