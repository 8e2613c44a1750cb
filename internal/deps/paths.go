//go:build unix

package deps

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess reports whether the process can read, write, and
// traverse the directory at path. Missing directories are reported as
// unavailable rather than created; EnsureDirectories handles creation.
func CheckDirectoryAccess(name, path string) Status {
	status := Status{
		Name:        name,
		Command:     path,
		Description: "Directory must be readable and writable",
	}
	if path == "" {
		status.Detail = "path not configured"
		return status
	}
	info, err := os.Stat(path)
	if err != nil {
		status.Detail = fmt.Sprintf("directory %q not found", path)
		return status
	}
	if !info.IsDir() {
		status.Detail = fmt.Sprintf("%q is not a directory", path)
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions on %q: %v", path, err)
		return status
	}
	status.Available = true
	return status
}
