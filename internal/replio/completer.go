// Package replio supplies the interactive line editor
// (github.com/chzyer/readline) with the shell's tab completion,
// restricted to the command-name position.
package replio

import (
	"strings"

	"github.com/abidanBrito/ash/pkg/path"
)

// commandBuiltins is the fixed completion set for builtins. It
// deliberately mirrors the source's own static list rather than the
// full builtin registry: only echo and exit are offered there.
var commandBuiltins = []string{"echo", "exit"}

// Completer implements readline.AutoCompleter. It only offers
// completions while the cursor is still inside the first word of the
// line; once a space has been typed, no completions are offered at
// all (there is no filename or flag completion in this shell).
type Completer struct{}

// Do implements readline.AutoCompleter.
func (Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	typed := string(line[:pos])

	if strings.ContainsAny(typed, " \t") {
		return nil, 0
	}

	var matches []string
	for _, b := range commandBuiltins {
		if strings.HasPrefix(b, typed) {
			matches = append(matches, b)
		}
	}
	matches = append(matches, path.MatchingExecutables(typed, true)...)

	for _, m := range matches {
		newLine = append(newLine, []rune(m[len(typed):]))
	}
	return newLine, len(typed)
}
