package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mozc-build/update-deps/internal/config"
	fileutil "github.com/mozc-build/update-deps/internal/utils/file"
)

// CleanOptions defines what cached artifacts should be removed.
type CleanOptions struct {
	CleanArchives bool // remove downloaded archives from the cache directory
	CleanTools    bool // remove the extracted ninja directory
	DryRun        bool // report actions without deleting anything
}

// CleanResult contains the outcome of a cache cleanup run.
type CleanResult struct {
	RemovedPaths []string
	SkippedPaths []string
}

// Clean removes cached artifacts according to the provided options.
func Clean(opts CleanOptions) (*CleanResult, error) {
	if !opts.CleanArchives && !opts.CleanTools {
		return nil, fmt.Errorf("at least one scope must be specified")
	}

	targets, missing, err := gatherTargets(opts)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(targets))
	skipped := append([]string(nil), missing...)

	for _, target := range targets {
		exists, err := pathExists(target)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", target, err)
		}
		if !exists {
			skipped = append(skipped, target)
			continue
		}

		if opts.DryRun {
			removed = append(removed, target)
			continue
		}

		if err := os.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("removing %s: %w", target, err)
		}
		removed = append(removed, target)
	}

	sort.Strings(removed)
	sort.Strings(skipped)

	return &CleanResult{
		RemovedPaths: removed,
		SkippedPaths: skipped,
	}, nil
}

func gatherTargets(opts CleanOptions) ([]string, []string, error) {
	var targets, missing []string

	if opts.CleanArchives {
		archiveTargets, archiveMissing, err := archiveTargets()
		if err != nil {
			return nil, nil, err
		}
		targets = append(targets, archiveTargets...)
		missing = append(missing, archiveMissing...)
	}

	if opts.CleanTools {
		toolTargets, toolMissing, err := toolTargets()
		if err != nil {
			return nil, nil, err
		}
		targets = append(targets, toolTargets...)
		missing = append(missing, toolMissing...)
	}

	return targets, missing, nil
}

func archiveTargets() ([]string, []string, error) {
	cacheDir, err := config.CacheDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving cache directory: %w", err)
	}

	exists, err := pathExists(cacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("checking %s: %w", cacheDir, err)
	}
	if !exists {
		return nil, []string{cacheDir}, nil
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", cacheDir, err)
	}

	targets := make([]string, 0, len(entries))
	for _, entry := range entries {
		target := filepath.Join(cacheDir, entry.Name())
		if err := ensureSubPath(cacheDir, target); err != nil {
			return nil, nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil, nil
}

func toolTargets() ([]string, []string, error) {
	thirdPartyDir, err := config.ThirdPartyDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving third-party directory: %w", err)
	}

	target := filepath.Join(thirdPartyDir, "ninja")
	if err := ensureSubPath(thirdPartyDir, target); err != nil {
		return nil, nil, err
	}

	exists, err := pathExists(target)
	if err != nil {
		return nil, nil, fmt.Errorf("checking %s: %w", target, err)
	}
	if !exists {
		return nil, []string{target}, nil
	}
	return []string{target}, nil, nil
}

func ensureSubPath(base, target string) error {
	ok, err := fileutil.IsSubPath(base, target)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", target, err)
	}
	if !ok {
		return fmt.Errorf("refusing to remove %s: outside %s", target, base)
	}
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
