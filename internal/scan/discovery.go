// Package scan discovers candidate files beneath a repository root. Paths
// are reported relative to the root, in sorted order, so extraction output
// is deterministic across runs.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultIgnorePatterns excludes dependency and build output directories
// from every scan.
var DefaultIgnorePatterns = []string{
	"node_modules/**",
	"vendor/**",
	".git/**",
	"dist/**",
	"build/**",
	"target/**",
	".dart_tool/**",
}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a directory tree and groups files by extension.
type Discovery struct {
	rootDir        string
	ignorePatterns []compiledPattern
}

// NewDiscovery creates a discovery instance for rootDir. ignorePatterns are
// glob patterns matched against root-relative paths; nil means
// DefaultIgnorePatterns.
func NewDiscovery(rootDir string, ignorePatterns []string) (*Discovery, error) {
	if ignorePatterns == nil {
		ignorePatterns = DefaultIgnorePatterns
	}

	d := &Discovery{rootDir: rootDir}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// FilesByExtension walks the tree once and returns root-relative paths
// keyed by extension, sorted within each extension. Extensions carry the
// leading dot.
func (d *Discovery) FilesByExtension(extensions []string) (map[string][]string, error) {
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[ext] = true
	}

	files := make(map[string][]string)

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(relPath))
		if wanted[ext] {
			files[ext] = append(files[ext], relPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for ext := range files {
		sort.Strings(files[ext])
	}

	return files, nil
}

// shouldIgnore checks if a path matches any ignore pattern, either directly
// or as a directory prefix (so "node_modules" matches "node_modules/**").
func (d *Discovery) shouldIgnore(relPath string) bool {
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}
	return false
}
