package fetcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/mozc-build/update-deps/internal/deps"
	"github.com/mozc-build/update-deps/internal/utils/logger"
	"github.com/mozc-build/update-deps/internal/utils/network"
)

// Fetcher downloads archives into a flat cache directory and verifies them
// against their expected size and SHA-256.
type Fetcher struct {
	CacheDir    string
	KeepPartial bool         // leave a corrupt partial download on disk
	Client      *http.Client // nil means the hardened default client
	Out         io.Writer    // dry-run and progress destination, nil means stdout
}

// New returns a Fetcher writing into cacheDir with the default HTTP client.
func New(cacheDir string, keepPartial bool) *Fetcher {
	return &Fetcher{
		CacheDir:    cacheDir,
		KeepPartial: keepPartial,
	}
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return network.NewSecureHTTPClient()
}

func (f *Fetcher) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

// EnsureCached makes sure a verified copy of the archive exists in the cache
// directory. A file matching the expected size and hash is accepted without
// touching the network; a stale file is deleted and re-downloaded. When the
// downloaded byte count or hash does not match, the call fails and the
// partial file is left on disk unless KeepPartial is unset.
func (f *Fetcher) EnsureCached(archive deps.Archive, dryrun bool) error {
	log := logger.Logger()
	path := filepath.Join(f.CacheDir, archive.Filename())

	if info, err := os.Stat(path); err == nil {
		if info.Size() == archive.Size {
			actual, err := fileSHA256(path)
			if err != nil {
				return fmt.Errorf("hashing %s: %w", path, err)
			}
			if actual == archive.SHA256 {
				log.Debugf("cache hit for %s", archive.Filename())
				return nil
			}
		}
		if dryrun {
			fmt.Fprintf(f.out(), "dryrun: verification failed, removing %s\n", path)
		} else {
			log.Warnf("removing stale cache entry %s", path)
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("removing stale cache entry %s: %w", path, err)
			}
		}
	}

	if dryrun {
		fmt.Fprintf(f.out(), "dryrun: download %s to %s\n", archive.URL, path)
		return nil
	}

	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", f.CacheDir, err)
	}

	return f.download(archive, path)
}

func (f *Fetcher) download(archive deps.Archive, path string) error {
	log := logger.Logger()
	log.Infof("downloading %s", archive.URL)

	resp, err := f.client().Get(archive.URL)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", archive.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: bad status: %s", archive.URL, resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	bar := progressbar.NewOptions64(archive.Size,
		progressbar.OptionSetDescription(archive.Filename()),
		progressbar.OptionSetWriter(progressOutput(f.out())),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(25*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	hasher := sha256.New()
	written, copyErr := io.Copy(io.MultiWriter(out, hasher, bar), resp.Body)
	if err := bar.Finish(); err != nil {
		log.Debugf("finishing progress bar: %v", err)
	}
	if closeErr := out.Close(); closeErr != nil && copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		return fmt.Errorf("writing %s: %w", path, copyErr)
	}

	// Size is checked before the hash so a truncated transfer is reported as
	// such rather than as corruption.
	if written != archive.Size {
		f.discardPartial(path)
		return fmt.Errorf("%s size mismatch: expected=%d actual=%d",
			archive.Filename(), archive.Size, written)
	}
	actual := hex.EncodeToString(hasher.Sum(nil))
	if actual != archive.SHA256 {
		f.discardPartial(path)
		return fmt.Errorf("%s sha256 mismatch: expected=%s actual=%s",
			archive.Filename(), archive.SHA256, actual)
	}

	log.Infof("downloaded %s (%d bytes)", archive.Filename(), written)
	return nil
}

// discardPartial removes a failed download unless the keep-partial policy
// asks to retain it for inspection. A retained file fails verification on
// the next run and is deleted then.
func (f *Fetcher) discardPartial(path string) {
	if f.KeepPartial {
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Logger().Warnf("removing partial download %s: %v", path, err)
	}
}

// progressOutput selects where the progress bar renders. Output that is not
// an interactive terminal gets no progress lines at all.
func progressOutput(w io.Writer) io.Writer {
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return w
	}
	return io.Discard
}

func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
