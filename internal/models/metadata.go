package models

import (
	"github.com/quickprop/quickprop/internal/errors"
)

// GeneratedFileName is the per-package file the generator writes and the
// cleaner removes. The _test suffix keeps wrappers out of release builds.
const GeneratedFileName = "autogen_quickprop_test.go"

// Flavor selects which executor glue the synthesized wrapper uses.
type Flavor string

const (
	// FlavorPool runs the property exploration on a dedicated worker
	// goroutine and joins on it from the generated test.
	FlavorPool Flavor = "pool"

	// FlavorSingle runs the property exploration inline on the test
	// goroutine, with no worker.
	FlavorSingle Flavor = "single"
)

// IsValid reports whether the flavor names a supported executor variant.
func (f Flavor) IsValid() bool {
	return f == FlavorPool || f == FlavorSingle
}

// MarkerName returns the runtime function the generated wrapper calls.
func (f Flavor) MarkerName() string {
	switch f {
	case FlavorPool:
		return "Pool"
	case FlavorSingle:
		return "Single"
	default:
		return ""
	}
}

// Param is one (pattern, type) pair from the annotated function's parameter
// list, in declaration order. Order is load-bearing: the property engine
// binds generated values positionally.
type Param struct {
	Name     string // binding name used inside the bridging closure
	Type     string // declared type, rendered verbatim from source
	Variadic bool   // declared as ...T
}

// AnnotatedTest describes one function selected for wrapper synthesis.
type AnnotatedTest struct {
	FuncName   string                // original function identifier
	TestName   string                // synthesized go test identifier (TestXxx)
	Params     []Param               // parameter pair sequence, declaration order
	ResultType string                // element type of the returned channel
	Flavor     Flavor                // executor variant requested by the directive
	Args       []string              // opaque passthrough tokens, verbatim and ordered
	Location   errors.SourceLocation // where the annotated function is declared
}

// PackageTests collects the annotated functions of one package directory.
type PackageTests struct {
	PackageName string
	PackagePath string // directory containing the package sources
	Tests       []AnnotatedTest
}

// HasTests reports whether anything was annotated in the package.
func (p *PackageTests) HasTests() bool {
	return p != nil && len(p.Tests) > 0
}

// GeneratedFile is the synthesis result for one package.
type GeneratedFile struct {
	PackageName string
	FilePath    string // absolute path of the file to write
	Content     string // formatted Go source
	TestCount   int
}
