package provision

import (
	"fmt"
	"io"
	"os"

	"github.com/mozc-build/update-deps/internal/utils/shell"
)

// Provisioner triggers the external provisioning steps of the legacy build:
// source-control submodule sync and the .NET tool restore. Both run in the
// project root and are awaited to completion.
type Provisioner struct {
	ProjectRoot string
	Out         io.Writer // dry-run output destination, nil means stdout
}

func (p *Provisioner) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// SyncSubmodules runs a recursive, initializing submodule update. A non-zero
// exit aborts the run.
func (p *Provisioner) SyncSubmodules(dryrun bool) error {
	cmd := shell.Command{
		Name: "git",
		Args: []string{"submodule", "update", "--init", "--recursive"},
		Dir:  p.ProjectRoot,
	}
	if dryrun {
		fmt.Fprintf(p.out(), "dryrun: run %s\n", cmd.String())
		return nil
	}
	if _, err := shell.Run(cmd); err != nil {
		return fmt.Errorf("submodule sync failed: %w", err)
	}
	return nil
}

// RestoreDotnetTools runs the .NET local tool restore used by the Windows
// installer toolchain.
func (p *Provisioner) RestoreDotnetTools(dryrun bool) error {
	cmd := shell.Command{
		Name: "dotnet",
		Args: []string{"tool", "restore"},
		Dir:  p.ProjectRoot,
	}
	if dryrun {
		fmt.Fprintf(p.out(), "dryrun: run %s in %s\n", cmd.String(), p.ProjectRoot)
		return nil
	}
	if _, err := shell.Run(cmd); err != nil {
		return fmt.Errorf("could not execute %s: %w", cmd.String(), err)
	}
	return nil
}
