package security

import (
	"fmt"
	"os"
	"path/filepath"
)

// SymlinkPolicy decides what a symlink check does when the path is a link.
type SymlinkPolicy int

const (
	// RejectSymlinks returns an error for any symlink.
	RejectSymlinks SymlinkPolicy = iota
	// ResolveSymlinks follows the link and reports the target path.
	ResolveSymlinks
)

// SafeFileInfo describes a path after the symlink check.
type SafeFileInfo struct {
	OriginalPath string
	ResolvedPath string
	IsSymlink    bool
	FileInfo     os.FileInfo
}

// CheckSymlink inspects path with Lstat and applies the policy. For
// ResolveSymlinks the returned info refers to the link target.
func CheckSymlink(path string, policy SymlinkPolicy) (*SafeFileInfo, error) {
	if policy != RejectSymlinks && policy != ResolveSymlinks {
		return nil, fmt.Errorf("invalid symlink policy: %d", policy)
	}

	fileInfo, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %s: %w", path, err)
	}

	result := &SafeFileInfo{
		OriginalPath: path,
		ResolvedPath: path,
		IsSymlink:    fileInfo.Mode()&os.ModeSymlink != 0,
		FileInfo:     fileInfo,
	}
	if !result.IsSymlink {
		return result, nil
	}

	if policy == RejectSymlinks {
		return nil, fmt.Errorf("symlinks are not allowed: %s", path)
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve symlink %s: %w", path, err)
	}
	targetInfo, err := os.Stat(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access symlink target %s: %w", resolvedPath, err)
	}
	result.ResolvedPath = resolvedPath
	result.FileInfo = targetInfo
	return result, nil
}

// SafeReadFile reads a file after performing the symlink check.
func SafeReadFile(path string, policy SymlinkPolicy) ([]byte, error) {
	safeInfo, err := CheckSymlink(path, policy)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(safeInfo.ResolvedPath)
}
