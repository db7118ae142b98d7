package utils

import (
	"golang.org/x/tools/imports"
)

// FormatGeneratedSource runs generated code through goimports-style
// processing: gofmt formatting plus import grouping. The filename steers
// import resolution; the file does not need to exist yet.
func FormatGeneratedSource(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}
