package validate_test

import (
	"testing"

	"github.com/mozc-build/update-deps/internal/config/validate"
)

func TestValidateConfigJSON(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		expectError bool
	}{
		{
			name: "full_config",
			data: `{"cache_dir": "./third_party_cache", "third_party_dir": "./third_party",
				"keep_partial": true, "logging": {"level": "info", "file": "a.log"}}`,
		},
		{
			name: "empty_object",
			data: `{}`,
		},
		{
			name:        "unknown_property",
			data:        `{"cache_dirr": "./typo"}`,
			expectError: true,
		},
		{
			name:        "wrong_type",
			data:        `{"keep_partial": "yes"}`,
			expectError: true,
		},
		{
			name:        "bad_level",
			data:        `{"logging": {"level": "loud"}}`,
			expectError: true,
		},
		{
			name:        "not_json",
			data:        `{`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.ValidateConfigJSON([]byte(tt.data))
			if tt.expectError && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
