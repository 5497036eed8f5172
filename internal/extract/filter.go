package extract

import (
	"path/filepath"
	"strings"

	"github.com/devrag/devrag/internal/config"
)

// generatedExtension marks code-generator output files.
const generatedExtension = ".g.dart"

// FileFilter decides which candidate files are processed. It is applied
// once per file, before any dialect-specific work.
type FileFilter struct {
	includeTests     bool
	includeGenerated bool
}

// NewFileFilter creates a filter from the configured processing flags.
func NewFileFilter(filters config.FilterConfig) *FileFilter {
	return &FileFilter{
		includeTests:     filters.IncludeTests,
		includeGenerated: filters.IncludeGenerated,
	}
}

// ShouldProcess reports whether the file at relPath is eligible for
// extraction. Test files and example directories are skipped unless tests
// are included; generated files are skipped unless explicitly included.
func (f *FileFilter) ShouldProcess(relPath string) bool {
	path := filepath.ToSlash(relPath)

	if !f.includeTests && strings.Contains(path, "test") {
		return false
	}

	if !f.includeGenerated && strings.HasSuffix(path, generatedExtension) {
		return false
	}

	if strings.Contains(path, "example") && !f.includeTests {
		return false
	}

	return true
}
