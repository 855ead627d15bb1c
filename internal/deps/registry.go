package deps

import (
	"strings"

	"github.com/mozc-build/update-deps/internal/platform"
)

// Archive describes a third-party archive required by the legacy build.
// Records are constants defined at build time; there is no dynamic
// registration.
type Archive struct {
	URL    string // download location
	Size   int64  // expected byte size
	SHA256 string // expected content hash, lowercase hex
}

// Filename returns the last path segment of the archive URL.
func (a Archive) Filename() string {
	idx := strings.LastIndex(a.URL, "/")
	if idx < 0 {
		return a.URL
	}
	return a.URL[idx+1:]
}

// Same reports whether two records refer to the same archive. Identity is
// defined by the content hash, not the URL or filename.
func (a Archive) Same(b Archive) bool {
	return a.SHA256 == b.SHA256
}

// Known archives. Adding a dependency means adding a constant here with all
// three fields filled in.
var (
	Qt6 = Archive{
		URL:    "https://download.qt.io/archive/qt/6.8/6.8.0/submodules/qtbase-everywhere-src-6.8.0.tar.xz",
		Size:   49819628,
		SHA256: "1bad481710aa27f872de6c9f72651f89a6107f0077003d0ebfcc9fd15cba3c75",
	}

	NinjaMac = Archive{
		URL:    "https://github.com/ninja-build/ninja/releases/download/v1.11.0/ninja-mac.zip",
		Size:   277298,
		SHA256: "21915277db59756bfc61f6f281c1f5e3897760b63776fd3d360f77dd7364137f",
	}

	NinjaWin = Archive{
		URL:    "https://github.com/ninja-build/ninja/releases/download/v1.11.0/ninja-win.zip",
		Size:   285411,
		SHA256: "d0ee3da143211aa447e750085876c9b9d7bcdd637ab5b2c5b41349c617f22f3b",
	}
)

// Tool pairs a platform's ninja archive with the name of the executable
// entry inside it.
type Tool struct {
	Archive Archive
	Exe     string
}

var ninjaByPlatform = map[platform.Platform]Tool{
	platform.Mac:     {Archive: NinjaMac, Exe: "ninja"},
	platform.Windows: {Archive: NinjaWin, Exe: "ninja.exe"},
}

// NinjaFor returns the ninja tool descriptor for the given platform. The
// second return is false on platforms without a ninja archive.
func NinjaFor(p platform.Platform) (Tool, bool) {
	tool, ok := ninjaByPlatform[p]
	return tool, ok
}

// SelectOptions controls which archives apply to a run.
type SelectOptions struct {
	NoQt    bool // skip the Qt source archive
	NoNinja bool // skip the ninja tool archive
}

// Select returns the archives applicable to the given platform, in download
// order. The Qt archive only applies on Windows and Mac; the ninja archive is
// chosen per platform and absent elsewhere.
func Select(p platform.Platform, opts SelectOptions) []Archive {
	var archives []Archive
	if !opts.NoQt && (p == platform.Windows || p == platform.Mac) {
		archives = append(archives, Qt6)
	}
	if !opts.NoNinja {
		if tool, ok := NinjaFor(p); ok {
			archives = append(archives, tool.Archive)
		}
	}
	return archives
}
