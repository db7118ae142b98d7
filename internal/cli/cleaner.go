package cli

import (
	"os"
	"path/filepath"

	"github.com/quickprop/quickprop/internal/errors"
	"github.com/quickprop/quickprop/internal/models"
)

// Cleaner removes previously generated wrapper files.
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
	}
}

// CleanGeneratedFiles deletes every generated wrapper file under the given
// directory arguments and returns the paths it removed.
func (c *Cleaner) CleanGeneratedFiles(rootDirs []string) ([]string, error) {
	dirs, err := c.scanner.ScanDirectories(rootDirs)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range dirs {
		target := filepath.Join(dir, models.GeneratedFileName)
		if _, err := os.Stat(target); err != nil {
			continue
		}

		if err := os.Remove(target); err != nil {
			return removed, errors.WrapFileSystemError("remove", target, err)
		}
		removed = append(removed, target)
	}

	return removed, nil
}
