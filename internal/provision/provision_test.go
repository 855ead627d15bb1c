package provision_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mozc-build/update-deps/internal/provision"
	"github.com/mozc-build/update-deps/internal/utils/shell"
)

func TestSyncSubmodules(t *testing.T) {
	originalExecutor := shell.Default
	defer func() { shell.Default = originalExecutor }()

	t.Run("runs_recursive_update", func(t *testing.T) {
		mock := shell.NewMockExecutor(nil)
		shell.Default = mock

		p := &provision.Provisioner{ProjectRoot: "/src", Out: &bytes.Buffer{}}
		if err := p.SyncSubmodules(false); err != nil {
			t.Fatalf("SyncSubmodules() failed: %v", err)
		}

		if len(mock.Calls) != 1 {
			t.Fatalf("executor saw %d calls, want 1", len(mock.Calls))
		}
		call := mock.Calls[0]
		if call.String() != "git submodule update --init --recursive" {
			t.Errorf("command = %q", call.String())
		}
		if call.Dir != "/src" {
			t.Errorf("dir = %q, want /src", call.Dir)
		}
	})

	t.Run("nonzero_exit_is_fatal", func(t *testing.T) {
		mock := shell.NewMockExecutor([]shell.MockCommand{
			{Pattern: "git submodule", Error: errors.New("exit status 1")},
		})
		shell.Default = mock

		p := &provision.Provisioner{Out: &bytes.Buffer{}}
		err := p.SyncSubmodules(false)
		if err == nil || !strings.Contains(err.Error(), "submodule sync failed") {
			t.Errorf("expected a fatal sync error, got %v", err)
		}
	})

	t.Run("dryrun_skips_execution", func(t *testing.T) {
		mock := shell.NewMockExecutor(nil)
		shell.Default = mock

		out := &bytes.Buffer{}
		p := &provision.Provisioner{Out: out}
		if err := p.SyncSubmodules(true); err != nil {
			t.Fatalf("SyncSubmodules() failed: %v", err)
		}
		if len(mock.Calls) != 0 {
			t.Errorf("dry run executed %d commands, want 0", len(mock.Calls))
		}
		if !strings.Contains(out.String(), "git submodule update --init --recursive") {
			t.Errorf("missing intent message, got %q", out.String())
		}
	})
}

func TestRestoreDotnetTools(t *testing.T) {
	originalExecutor := shell.Default
	defer func() { shell.Default = originalExecutor }()

	t.Run("runs_tool_restore", func(t *testing.T) {
		mock := shell.NewMockExecutor(nil)
		shell.Default = mock

		p := &provision.Provisioner{ProjectRoot: "/src", Out: &bytes.Buffer{}}
		if err := p.RestoreDotnetTools(false); err != nil {
			t.Fatalf("RestoreDotnetTools() failed: %v", err)
		}

		if len(mock.Calls) != 1 {
			t.Fatalf("executor saw %d calls, want 1", len(mock.Calls))
		}
		if got := mock.Calls[0].String(); got != "dotnet tool restore" {
			t.Errorf("command = %q", got)
		}
	})

	t.Run("failure_reports_command", func(t *testing.T) {
		mock := shell.NewMockExecutor([]shell.MockCommand{
			{Pattern: "dotnet", Error: errors.New("exit status 1")},
		})
		shell.Default = mock

		p := &provision.Provisioner{Out: &bytes.Buffer{}}
		err := p.RestoreDotnetTools(false)
		if err == nil || !strings.Contains(err.Error(), "could not execute dotnet tool restore") {
			t.Errorf("expected a could-not-execute error, got %v", err)
		}
	})

	t.Run("dryrun_skips_execution", func(t *testing.T) {
		mock := shell.NewMockExecutor(nil)
		shell.Default = mock

		out := &bytes.Buffer{}
		p := &provision.Provisioner{Out: out}
		if err := p.RestoreDotnetTools(true); err != nil {
			t.Fatalf("RestoreDotnetTools() failed: %v", err)
		}
		if len(mock.Calls) != 0 {
			t.Errorf("dry run executed %d commands, want 0", len(mock.Calls))
		}
		if !strings.Contains(out.String(), "dotnet tool restore") {
			t.Errorf("missing intent message, got %q", out.String())
		}
	})
}
