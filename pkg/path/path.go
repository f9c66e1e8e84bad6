// Package path resolves external commands against the PATH environment
// variable: splitting it, testing candidates for executability, and
// enumerating prefix matches for tab completion.
package path

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// listSeparator is ':' on POSIX and ';' on Windows, matching the
// platform's PATH convention.
const listSeparator = string(os.PathListSeparator)

// Split splits s on the platform list separator. Empty segments are
// preserved as-is; they simply fail IsExecutable downstream.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}

// Directories reads PATH and splits it. A missing PATH yields nil.
func Directories() []string {
	return Split(os.Getenv("PATH"))
}

// FindExecutable walks the PATH directories in order and returns the
// first dir+"/"+name that passes IsExecutable.
func FindExecutable(name string) (string, bool) {
	for _, dir := range Directories() {
		candidate := dir + "/" + name
		if IsExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// MatchingExecutables lists, across every PATH directory, the entries
// whose name begins with prefix (excluding "." and "..") that pass
// IsExecutable, de-duplicated by name. When sortResults is true the
// result is sorted lexicographically.
func MatchingExecutables(prefix string, sortResults bool) []string {
	seen := make(map[string]bool)
	var matches []string

	for _, dir := range Directories() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if name == "." || name == ".." {
				continue
			}
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if seen[name] {
				continue
			}
			if IsExecutable(filepath.Join(dir, name)) {
				seen[name] = true
				matches = append(matches, name)
			}
		}
	}

	if sortResults {
		sort.Strings(matches)
	}
	return matches
}
