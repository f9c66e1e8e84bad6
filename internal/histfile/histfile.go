// Package histfile persists a shell's command history to a plain text
// file, one entry per line. It backs both the HISTFILE startup/shutdown
// load-and-append cycle and the history -r/-w/-a builtin.
package histfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/abidanBrito/ash/internal/state"
)

// Load reads path line by line, appending every non-empty line to
// st.History, and advances st.HistoryWriteCursor to the new length. It
// returns the number of lines added, so callers that must also notify
// a line editor's recall buffer know how many new entries there are.
func Load(path string, st *state.Shell) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	added := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		st.History = append(st.History, line)
		added++
	}
	st.HistoryWriteCursor = len(st.History)

	return added, scanner.Err()
}

// Write saves st.History to path, one entry per line. When appendOnly
// is false the file is truncated and the full history is written; when
// true only the entries from st.HistoryWriteCursor onward are appended.
// Either way, st.HistoryWriteCursor is advanced to len(st.History).
func Write(path string, st *state.Shell, appendOnly bool) error {
	flags := os.O_WRONLY | os.O_CREATE
	entries := st.History
	if appendOnly {
		flags |= os.O_APPEND
		entries = st.History[st.HistoryWriteCursor:]
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range entries {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	st.HistoryWriteCursor = len(st.History)

	return w.Flush()
}

// ExtractFilename mirrors the source's extract_filename_from_arguments:
// starting at byte offset in raw, skip leading spaces/tabs, then take
// everything up to the end of the string and trim trailing spaces and
// tabs. Unlike redirection's filename scanning, this one runs to the
// end of the line, so a filename may itself contain interior spaces.
func ExtractFilename(raw string, offset int) (string, bool) {
	if offset > len(raw) {
		return "", false
	}

	rest := raw[offset:]
	start := strings.IndexFunc(rest, func(r rune) bool { return r != ' ' && r != '\t' })
	if start < 0 {
		return "", false
	}

	filename := strings.TrimRight(rest[start:], " \t")
	return filename, true
}
