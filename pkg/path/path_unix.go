//go:build !windows

package path

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsExecutable reports whether path is a regular file and X_OK permits
// execution for the effective user, per access(2).
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}
