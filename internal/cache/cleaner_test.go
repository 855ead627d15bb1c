package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mozc-build/update-deps/internal/cache"
	"github.com/mozc-build/update-deps/internal/config"
)

// setupDirs points the global config at fresh temp directories and returns
// them.
func setupDirs(t *testing.T) (string, string) {
	t.Helper()

	cacheDir := filepath.Join(t.TempDir(), "third_party_cache")
	thirdPartyDir := filepath.Join(t.TempDir(), "third_party")

	cfg := config.DefaultGlobalConfig()
	cfg.CacheDir = cacheDir
	cfg.ThirdPartyDir = thirdPartyDir
	config.SetGlobal(cfg)

	return cacheDir, thirdPartyDir
}

func TestClean_RequiresScope(t *testing.T) {
	setupDirs(t)
	if _, err := cache.Clean(cache.CleanOptions{}); err == nil {
		t.Error("expected an error when no scope is specified")
	}
}

func TestClean_Archives(t *testing.T) {
	cacheDir, _ := setupDirs(t)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(cacheDir, "ninja-mac.zip")
	if err := os.WriteFile(entry, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := cache.Clean(cache.CleanOptions{CleanArchives: true})
	if err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}
	if len(result.RemovedPaths) != 1 || result.RemovedPaths[0] != entry {
		t.Errorf("RemovedPaths = %v, want [%s]", result.RemovedPaths, entry)
	}
	if _, err := os.Stat(entry); !os.IsNotExist(err) {
		t.Error("cache entry was not removed")
	}
}

func TestClean_ArchivesDryRun(t *testing.T) {
	cacheDir, _ := setupDirs(t)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(cacheDir, "ninja-win.zip")
	if err := os.WriteFile(entry, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := cache.Clean(cache.CleanOptions{CleanArchives: true, DryRun: true})
	if err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}
	if len(result.RemovedPaths) != 1 {
		t.Errorf("RemovedPaths = %v, want one entry", result.RemovedPaths)
	}
	if _, err := os.Stat(entry); err != nil {
		t.Errorf("dry run must not delete anything: %v", err)
	}
}

func TestClean_Tools(t *testing.T) {
	_, thirdPartyDir := setupDirs(t)
	toolDir := filepath.Join(thirdPartyDir, "ninja")
	if err := os.MkdirAll(toolDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(toolDir, "ninja"), []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := cache.Clean(cache.CleanOptions{CleanTools: true})
	if err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}
	if len(result.RemovedPaths) != 1 || result.RemovedPaths[0] != toolDir {
		t.Errorf("RemovedPaths = %v, want [%s]", result.RemovedPaths, toolDir)
	}
	if _, err := os.Stat(toolDir); !os.IsNotExist(err) {
		t.Error("tool directory was not removed")
	}
}

func TestClean_MissingPathsSkipped(t *testing.T) {
	cacheDir, thirdPartyDir := setupDirs(t)

	result, err := cache.Clean(cache.CleanOptions{CleanArchives: true, CleanTools: true})
	if err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}
	if len(result.RemovedPaths) != 0 {
		t.Errorf("RemovedPaths = %v, want none", result.RemovedPaths)
	}

	expectedSkipped := map[string]bool{
		cacheDir:                              true,
		filepath.Join(thirdPartyDir, "ninja"): true,
	}
	if len(result.SkippedPaths) != len(expectedSkipped) {
		t.Fatalf("SkippedPaths = %v", result.SkippedPaths)
	}
	for _, path := range result.SkippedPaths {
		if !expectedSkipped[path] {
			t.Errorf("unexpected skipped path %s", path)
		}
	}
}
