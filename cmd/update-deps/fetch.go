package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mozc-build/update-deps/internal/config"
	"github.com/mozc-build/update-deps/internal/deps"
	"github.com/mozc-build/update-deps/internal/extract"
	"github.com/mozc-build/update-deps/internal/fetcher"
	"github.com/mozc-build/update-deps/internal/platform"
	"github.com/mozc-build/update-deps/internal/provision"
	"github.com/mozc-build/update-deps/internal/utils/logger"
)

// fetchOptions mirrors the pipeline opt-out flags.
type fetchOptions struct {
	DryRun       bool
	NoNinja      bool
	NoQt         bool
	NoWix        bool
	NoSubmodules bool
	CacheOnly    bool
}

var fetchOpts fetchOptions

// addFetchFlags registers the pipeline flags on the root command. The flag
// names match the original updater so existing build scripts keep working.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&fetchOpts.DryRun, "dryrun", false,
		"Report intended actions without performing any of them")
	cmd.Flags().BoolVar(&fetchOpts.NoNinja, "noninja", false,
		"Skip the ninja build tool archive")
	cmd.Flags().BoolVar(&fetchOpts.NoQt, "noqt", false,
		"Skip the Qt source archive")
	cmd.Flags().BoolVar(&fetchOpts.NoWix, "nowix", false,
		"Skip the installer toolchain restore (Windows only)")
	cmd.Flags().BoolVar(&fetchOpts.NoSubmodules, "nosubmodules", false,
		"Skip the submodule sync")
	cmd.Flags().BoolVar(&fetchOpts.CacheOnly, "cache_only", false,
		"Stop after download and verification")
}

// executeFetch handles the root command: the full update pipeline.
func executeFetch(cmd *cobra.Command, args []string) error {
	return runPipeline(platform.Current(), fetchOpts, cmd.OutOrStdout())
}

// runPipeline executes the fixed update order: select archives, download and
// verify each through the cache, then restore the installer toolchain,
// extract ninja, and sync submodules. CacheOnly stops after verification
// regardless of the other flags.
func runPipeline(p platform.Platform, opts fetchOptions, out io.Writer) error {
	log := logger.Logger()

	cacheDir, err := config.CacheDir()
	if err != nil {
		return err
	}
	thirdPartyDir, err := config.ThirdPartyDir()
	if err != nil {
		return err
	}

	archives := deps.Select(p, deps.SelectOptions{NoQt: opts.NoQt, NoNinja: opts.NoNinja})
	log.Debugf("platform=%s, %d archive(s) selected", p, len(archives))

	f := fetcher.New(cacheDir, config.KeepPartial())
	f.Out = out
	for _, archive := range archives {
		if err := f.EnsureCached(archive, opts.DryRun); err != nil {
			return err
		}
	}

	if opts.CacheOnly {
		return nil
	}

	prov := &provision.Provisioner{Out: out}

	if p == platform.Windows && !opts.NoWix {
		if err := prov.RestoreDotnetTools(opts.DryRun); err != nil {
			return err
		}
	}

	if _, ok := deps.NinjaFor(p); ok && !opts.NoNinja {
		ex := &extract.Extractor{CacheDir: cacheDir, ThirdPartyDir: thirdPartyDir, Out: out}
		if err := ex.Ninja(p, opts.DryRun); err != nil {
			return err
		}
	}

	if !opts.NoSubmodules {
		if err := prov.SyncSubmodules(opts.DryRun); err != nil {
			return err
		}
	}

	return nil
}
