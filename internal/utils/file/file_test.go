package file_test

import (
	"testing"

	fileutil "github.com/mozc-build/update-deps/internal/utils/file"
)

func TestIsSubPath(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		target   string
		expected bool
	}{
		{"direct_child", "/a/b", "/a/b/c", true},
		{"nested_child", "/a/b", "/a/b/c/d/e", true},
		{"same_dir", "/a/b", "/a/b", true},
		{"parent", "/a/b", "/a", false},
		{"sibling", "/a/b", "/a/c", false},
		{"escape_with_dotdot", "/a/b", "/a/b/../c", false},
		{"root", "/", "/a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileutil.IsSubPath(tt.base, tt.target)
			if err != nil {
				t.Fatalf("IsSubPath(%q, %q) failed: %v", tt.base, tt.target, err)
			}
			if got != tt.expected {
				t.Errorf("IsSubPath(%q, %q) = %v, want %v", tt.base, tt.target, got, tt.expected)
			}
		})
	}
}
