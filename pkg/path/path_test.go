package path

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"/bin", []string{"/bin"}},
		{"/bin" + listSeparator + "/usr/bin", []string{"/bin", "/usr/bin"}},
		{"/bin" + listSeparator + listSeparator + "/usr/bin", []string{"/bin", "", "/usr/bin"}},
	}

	for _, tt := range tests {
		got := Split(tt.input)
		if len(got) != len(tt.expected) {
			t.Fatalf("Split(%q) = %v, want %v", tt.input, got, tt.expected)
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("Split(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestFindExecutableAndMatching(t *testing.T) {
	dir := t.TempDir()
	makeExecutable(t, filepath.Join(dir, "foo"))
	makeExecutable(t, filepath.Join(dir, "foobar"))
	writeFile(t, filepath.Join(dir, "notexec"), 0644)

	t.Setenv("PATH", dir)

	if path, ok := FindExecutable("foo"); !ok || path != filepath.Join(dir, "foo") {
		t.Errorf("FindExecutable(foo) = (%q, %v)", path, ok)
	}

	if _, ok := FindExecutable("notexec"); ok {
		t.Errorf("FindExecutable(notexec) should fail, file is not executable")
	}

	matches := MatchingExecutables("foo", true)
	if len(matches) != 2 || matches[0] != "foo" || matches[1] != "foobar" {
		t.Errorf("MatchingExecutables(foo) = %v, want [foo foobar]", matches)
	}
}

func TestFindExecutableMissingDirectory(t *testing.T) {
	t.Setenv("PATH", "/no/such/directory/at/all")
	if _, ok := FindExecutable("ls"); ok {
		t.Errorf("FindExecutable should fail gracefully for a missing directory")
	}
}

func makeExecutable(t *testing.T, path string) {
	t.Helper()
	writeFile(t, path, 0755)
}

func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), mode); err != nil {
		t.Fatal(err)
	}
}
