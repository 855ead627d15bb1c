package platform

import "runtime"

// Platform classifies the running operating system for archive selection.
// Only Windows and Mac are supported download targets; everything else is
// Other.
type Platform string

const (
	Windows Platform = "windows"
	Mac     Platform = "mac"
	Other   Platform = "other"
)

// Current returns the classification of the running operating system.
func Current() Platform {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value to a Platform.
func FromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return Mac
	default:
		return Other
	}
}
