package version

// Package metadata information, used for versioning output.
// The release pipeline replaces these variables at build time.
var (
	// Version is the version of the dependency updater.
	Version = "0.1.0"
	// Toolname is the name of the tool.
	Toolname = "update-deps"
	// BuildDate is the date when the tool was built.
	BuildDate = "unknown"
	// CommitSHA is the commit SHA of the tool.
	CommitSHA = "unknown"
)
