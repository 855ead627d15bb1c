package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozc-build/update-deps/internal/cache"
)

func createCacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached artifacts",
		Long: `Manage the archive cache and the extracted tool directory.

Available commands:
  clean    Remove downloaded archives or the extracted ninja tool`,
	}

	cacheCmd.AddCommand(createCacheCleanCommand())

	return cacheCmd
}

func createCacheCleanCommand() *cobra.Command {
	var (
		opts cache.CleanOptions
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove downloaded archives or the extracted ninja tool",
		Long: `Remove downloaded archives or the extracted ninja tool to reclaim disk
space. By default the command removes cached archives; use flags to also or
instead remove the extracted tool directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			archivesFlag := cmd.Flags().Changed("archives")
			toolsFlag := cmd.Flags().Changed("tools")

			if all {
				opts.CleanArchives = true
				opts.CleanTools = true
			} else if !archivesFlag && !toolsFlag {
				opts.CleanArchives = true
			}

			result, err := cache.Clean(opts)
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()
			if opts.DryRun {
				fmt.Fprintln(writer, "Dry run: no files were deleted.")
			}

			if len(result.RemovedPaths) > 0 {
				header := "Removed paths:"
				if opts.DryRun {
					header = "Would remove:"
				}
				fmt.Fprintln(writer, header)
				for _, path := range result.RemovedPaths {
					fmt.Fprintln(writer, "  "+path)
				}
			}

			if len(result.RemovedPaths) == 0 && len(result.SkippedPaths) == 0 {
				fmt.Fprintln(writer, "No cache entries found.")
			}

			if len(result.SkippedPaths) > 0 {
				fmt.Fprintln(writer, "Skipped (not found):")
				for _, path := range result.SkippedPaths {
					fmt.Fprintln(writer, "  "+path)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove both archives and the extracted tool")
	cmd.Flags().BoolVar(&opts.CleanArchives, "archives", false, "Remove downloaded archives")
	cmd.Flags().BoolVar(&opts.CleanTools, "tools", false, "Remove the extracted ninja tool")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show what would be removed without deleting anything")

	return cmd
}
