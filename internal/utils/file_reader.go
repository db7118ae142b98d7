package utils

import (
	"os"
)

// FileReader reads files with a small content cache. The generator reads the
// same go.mod repeatedly while scanning sibling directories; caching keeps
// that cheap.
type FileReader struct {
	cache map[string]string
}

// NewFileReader creates a new caching file reader
func NewFileReader() *FileReader {
	return &FileReader{
		cache: make(map[string]string),
	}
}

// ReadFile returns the file's content, from cache when possible
func (r *FileReader) ReadFile(path string) (string, error) {
	if content, ok := r.cache[path]; ok {
		return content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	content := string(data)
	r.cache[path] = content
	return content, nil
}

// Invalidate drops a cached entry, e.g. after the file was rewritten
func (r *FileReader) Invalidate(path string) {
	delete(r.cache, path)
}
