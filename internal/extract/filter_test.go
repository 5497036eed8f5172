package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devrag/devrag/internal/config"
)

// Test Plan for the file filter:
// - Paths containing "test" are skipped unless tests are included
// - Paths containing "example" follow the same flag
// - Generated .g.dart files are skipped unless explicitly included
// - Everything else is processed

func TestFileFilter_Defaults(t *testing.T) {
	t.Parallel()

	f := NewFileFilter(config.FilterConfig{})

	tests := []struct {
		path string
		want bool
	}{
		{"lib/main.dart", true},
		{"src/api.rs", true},
		{"docs/guide.md", true},
		{"test/widget_test.dart", false},
		{"lib/api_test.dart", false},
		{"lib/models/user.g.dart", false},
		{"example/demo.dart", false},
		{"examples/basic/main.rs", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.ShouldProcess(tt.path), "path %s", tt.path)
	}
}

func TestFileFilter_IncludeTests(t *testing.T) {
	t.Parallel()

	f := NewFileFilter(config.FilterConfig{IncludeTests: true})

	assert.True(t, f.ShouldProcess("test/widget_test.dart"))
	assert.True(t, f.ShouldProcess("example/demo.dart"))
	// The generated-file flag is independent of the tests flag.
	assert.False(t, f.ShouldProcess("lib/models/user.g.dart"))
}

func TestFileFilter_IncludeGenerated(t *testing.T) {
	t.Parallel()

	f := NewFileFilter(config.FilterConfig{IncludeGenerated: true})

	assert.True(t, f.ShouldProcess("lib/models/user.g.dart"))
	assert.False(t, f.ShouldProcess("test/widget_test.dart"))
}
