package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickprop/quickprop/internal/errors"
	"github.com/quickprop/quickprop/internal/models"
	"github.com/quickprop/quickprop/internal/parser"
)

func generateFromSource(t *testing.T, source string) *models.GeneratedFile {
	t.Helper()

	pkg, err := parser.NewParser().ParseSource("sample.go", source)
	require.NoError(t, err)

	file, err := NewGenerator().GeneratePackage(pkg)
	require.NoError(t, err)
	return file
}

func TestGeneratePackage_GoldenBoolTest(t *testing.T) {
	file := generateFromSource(t, `package sample

//quickprop::pool
func boolTest() <-chan bool {
	ch := make(chan bool, 1)
	ch <- true
	return ch
}
`)

	expected := `// Code generated by quickprop. DO NOT EDIT.
// This file was automatically generated and should not be modified manually.

package sample

import (
	"testing"

	"github.com/quickprop/quickprop/pkg/quickprop"
)

func TestBoolTest(t *testing.T) {
	prop := func() bool {
		return quickprop.Await(boolTest())
	}
	quickprop.Pool(t, prop)
}
`

	assert.Equal(t, expected, file.Content)
	assert.Equal(t, "sample", file.PackageName)
	assert.Equal(t, 1, file.TestCount)
	assert.True(t, strings.HasSuffix(file.FilePath, models.GeneratedFileName))
}

func TestGeneratePackage_BridgeMatchesSignature(t *testing.T) {
	file := generateFromSource(t, `package sample

//quickprop::single
func concatLen(a string, b string, limit int) <-chan bool { return nil }
`)

	assert.Contains(t, file.Content, "prop := func(a string, b string, limit int) bool {")
	assert.Contains(t, file.Content, "return quickprop.Await(concatLen(a, b, limit))")
	assert.Contains(t, file.Content, "quickprop.Single(t, prop)")
}

func TestGeneratePackage_PassthroughAppearsVerbatimAndOrdered(t *testing.T) {
	file := generateFromSource(t, `package sample

//quickprop::pool(workers = 3, seed = 99)
func optioned() <-chan bool { return nil }
`)

	assert.Contains(t, file.Content, `quickprop.Pool(t, prop, "workers = 3", "seed = 99")`)
}

func TestGeneratePackage_EmptyArgumentListEqualsNone(t *testing.T) {
	withParens := generateFromSource(t, `package sample

//quickprop::single()
func f() <-chan bool { return nil }
`)
	withoutParens := generateFromSource(t, `package sample

//quickprop::single
func f() <-chan bool { return nil }
`)

	assert.Equal(t, withoutParens.Content, withParens.Content)
}

func TestGeneratePackage_VariadicForwarding(t *testing.T) {
	file := generateFromSource(t, `package sample

//quickprop::pool
func joined(sep string, parts ...string) <-chan bool { return nil }
`)

	// The closure takes a plain slice (the engine binds values
	// positionally and cannot call a variadic function); the forwarded
	// call spreads it back out.
	assert.Contains(t, file.Content, "prop := func(sep string, parts []string) bool {")
	assert.NotContains(t, file.Content, "parts ...string")
	assert.Contains(t, file.Content, "quickprop.Await(joined(sep, parts...))")
}

func TestGeneratePackage_StructElementType(t *testing.T) {
	file := generateFromSource(t, `package sample

type verdict struct{ ok bool }

//quickprop::single
func judge(n int) <-chan verdict { return nil }
`)

	assert.Contains(t, file.Content, "prop := func(n int) verdict {")
}

func TestGeneratePackage_MultipleWrappersInOneFile(t *testing.T) {
	file := generateFromSource(t, `package sample

//quickprop::pool
func first() <-chan bool { return nil }

//quickprop::single(min_tests = 10)
func second(n int) <-chan bool { return nil }
`)

	assert.Equal(t, 2, file.TestCount)
	assert.Contains(t, file.Content, "func TestFirst(t *testing.T) {")
	assert.Contains(t, file.Content, "func TestSecond(t *testing.T) {")
	assert.Contains(t, file.Content, `quickprop.Single(t, prop, "min_tests = 10")`)

	// One wrapper file per package, one header.
	assert.Equal(t, 1, strings.Count(file.Content, "Code generated by quickprop"))
}

func TestGeneratePackage_RegistrationCollision(t *testing.T) {
	pkg, err := parser.NewParser().ParseSource("sample.go", `package sample

//quickprop::pool
func fuzzMe() <-chan bool { return nil }

//quickprop::pool
func FuzzMe() <-chan bool { return nil }
`)
	require.NoError(t, err)

	_, genErr := NewGenerator().GeneratePackage(pkg)
	require.Error(t, genErr)
	assert.Contains(t, genErr.Error(), "TestFuzzMe")
	assert.Contains(t, genErr.Error(), "fuzzMe")
}

func TestGeneratePackage_RejectsEmptyPackage(t *testing.T) {
	_, err := NewGenerator().GeneratePackage(&models.PackageTests{PackageName: "sample"})
	require.Error(t, err)

	var qerr errors.QuickpropError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, errors.GenerationErrorCode, qerr.ErrorCode())
}
