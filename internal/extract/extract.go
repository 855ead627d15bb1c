package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"github.com/mozc-build/update-deps/internal/deps"
	"github.com/mozc-build/update-deps/internal/platform"
	"github.com/mozc-build/update-deps/internal/utils/logger"
)

// Extractor unpacks the ninja executable from its cached zip archive into
// the third-party directory.
type Extractor struct {
	CacheDir      string
	ThirdPartyDir string
	Out           io.Writer // dry-run output destination, nil means stdout
}

func (e *Extractor) out() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

// Ninja extracts the platform's ninja executable into
// <third_party_dir>/ninja, replacing any previous contents. On platforms
// without a ninja archive the call is a no-op. On POSIX targets the
// user-execute bit is set after extraction; the zip entry alone does not
// guarantee the file is runnable.
func (e *Extractor) Ninja(p platform.Platform, dryrun bool) error {
	tool, ok := deps.NinjaFor(p)
	if !ok {
		return nil
	}

	dest := filepath.Join(e.ThirdPartyDir, "ninja")
	src := filepath.Join(e.CacheDir, tool.Archive.Filename())

	if dryrun {
		if _, err := os.Stat(dest); err == nil {
			fmt.Fprintf(e.out(), "dryrun: removing %s\n", dest)
		}
		fmt.Fprintf(e.out(), "dryrun: extracting %s from %s into %s\n", tool.Exe, src, dest)
		return nil
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("removing %s: %w", dest, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	target := filepath.Join(dest, tool.Exe)
	if err := extractEntry(src, tool.Exe, target); err != nil {
		return err
	}

	if p != platform.Windows {
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("stat %s: %w", target, err)
		}
		if err := os.Chmod(target, info.Mode()|0o100); err != nil {
			return fmt.Errorf("setting execute bit on %s: %w", target, err)
		}
	}

	logger.Logger().Infof("extracted %s into %s", tool.Exe, dest)
	return nil
}

// extractEntry copies the single named entry out of the zip archive at src.
func extractEntry(src, name, target string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", src, err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.Name != name {
			continue
		}

		in, err := entry.Open()
		if err != nil {
			return fmt.Errorf("opening entry %s in %s: %w", name, src, err)
		}
		defer in.Close()

		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("creating %s: %w", target, err)
		}

		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return fmt.Errorf("extracting %s: %w", name, err)
		}
		return out.Close()
	}

	return fmt.Errorf("entry %s not found in %s", name, src)
}
