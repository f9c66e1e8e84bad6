//go:build windows

package path

import (
	"os"
	"strings"
)

// executableExtensions are the suffixes Windows treats as runnable,
// matched case-insensitively.
var executableExtensions = []string{".exe", ".bat", ".ps1", ".cmd", ".com"}

// IsExecutable reports whether path is a non-directory file whose
// extension marks it runnable on Windows.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	lower := strings.ToLower(path)
	for _, ext := range executableExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
