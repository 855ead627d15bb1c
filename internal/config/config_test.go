package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mozc-build/update-deps/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "update-deps.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultGlobalConfig(t *testing.T) {
	cfg := config.DefaultGlobalConfig()

	if cfg.CacheDir != "./third_party_cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.ThirdPartyDir != "./third_party" {
		t.Errorf("ThirdPartyDir = %q", cfg.ThirdPartyDir)
	}
	if !cfg.KeepPartial {
		t.Error("KeepPartial should default to true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadGlobalConfig(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError string
		check       func(t *testing.T, cfg *config.GlobalConfig)
	}{
		{
			name: "overrides_merged_over_defaults",
			content: `
cache_dir: /var/cache/deps
keep_partial: false
logging:
  level: debug
`,
			check: func(t *testing.T, cfg *config.GlobalConfig) {
				if cfg.CacheDir != "/var/cache/deps" {
					t.Errorf("CacheDir = %q", cfg.CacheDir)
				}
				if cfg.KeepPartial {
					t.Error("keep_partial: false was not applied")
				}
				if cfg.ThirdPartyDir != "./third_party" {
					t.Errorf("unset field lost its default: %q", cfg.ThirdPartyDir)
				}
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q", cfg.Logging.Level)
				}
			},
		},
		{
			name: "unknown_key_rejected",
			content: `
cache_dirr: /typo
`,
			expectError: "schema validation failed",
		},
		{
			name: "bad_level_rejected",
			content: `
logging:
  level: loud
`,
			expectError: "schema validation failed",
		},
		{
			name: "empty_cache_dir_rejected",
			content: `
cache_dir: ""
`,
			expectError: "schema validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			cfg, err := config.LoadGlobalConfig(path)
			if tt.expectError != "" {
				if err == nil || !strings.Contains(err.Error(), tt.expectError) {
					t.Fatalf("error = %v, want %q", err, tt.expectError)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadGlobalConfig() failed: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadGlobalConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.LoadGlobalConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadGlobalConfig() failed: %v", err)
	}
	if cfg.CacheDir != "./third_party_cache" {
		t.Errorf("CacheDir = %q, want default", cfg.CacheDir)
	}
}

func TestLoadGlobalConfig_RejectsSymlinkedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.yml")
	link := filepath.Join(dir, "update-deps.yml")
	if err := os.WriteFile(target, []byte("cache_dir: /var/cache/deps\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if _, err := config.LoadGlobalConfig(link); err == nil {
		t.Error("expected a symlinked config file to be rejected")
	}
}

func TestLoadGlobalConfig_RejectsControlBytes(t *testing.T) {
	path := writeConfig(t, `cache_dir: "/var/\x00cache"`+"\n")

	_, err := config.LoadGlobalConfig(path)
	if err == nil {
		t.Fatal("expected a config value with a NUL byte to be rejected")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadGlobalConfig_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("cache_dir = 'x'"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadGlobalConfig(path); err == nil {
		t.Error("expected an unsupported-format error")
	}
}

func TestAccessors(t *testing.T) {
	cfg := config.DefaultGlobalConfig()
	cfg.CacheDir = "relative/cache"
	config.SetGlobal(cfg)

	cacheDir, err := config.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() failed: %v", err)
	}
	if !filepath.IsAbs(cacheDir) {
		t.Errorf("CacheDir() = %q, want an absolute path", cacheDir)
	}
	if !config.KeepPartial() {
		t.Error("KeepPartial() should reflect the global config")
	}
}
