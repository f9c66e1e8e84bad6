// Package pipeline splits a raw input line into a Pipeline of Command
// segments at unquoted '|' characters, each carrying its own command
// name, argument string, and redirection plan.
package pipeline

import (
	"strings"

	"github.com/abidanBrito/ash/internal/lexer"
	"github.com/abidanBrito/ash/internal/redir"
)

// Command is one pipeline segment.
type Command struct {
	Name  string
	Args  string
	Redir redir.Spec
}

// Pipeline is an ordered sequence of Commands. Parse returns an empty
// Pipeline when every segment of its input is empty (e.g. "|").
type Pipeline []Command

// HasPipes reports whether input contains an unquoted '|'.
func HasPipes(input string) bool {
	inSingle, inDouble := false, false

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case !inDouble && c == '\'':
			inSingle = !inSingle
		case !inSingle && c == '"':
			inDouble = !inDouble
		case !inSingle && !inDouble && c == '|':
			return true
		}
	}
	return false
}

// Parse splits input at unquoted '|' characters into a Pipeline. Empty
// segments (leading/trailing pipes, or "foo | ") are silently dropped.
func Parse(input string) Pipeline {
	var commands Pipeline
	var segment strings.Builder
	inSingle, inDouble := false, false

	flush := func() {
		if cmd, ok := parseSegment(segment.String()); ok {
			commands = append(commands, cmd)
		}
		segment.Reset()
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case !inDouble && c == '\'':
			inSingle = !inSingle
			segment.WriteByte(c)
		case !inSingle && c == '"':
			inDouble = !inDouble
			segment.WriteByte(c)
		case !inSingle && !inDouble && c == '|':
			flush()
		default:
			segment.WriteByte(c)
		}
	}
	flush()

	return commands
}

// parseSegment trims segment, splits off the command token, and feeds
// the remainder through the redirection parser. It reports ok=false
// for a segment that is empty once trimmed.
func parseSegment(segment string) (Command, bool) {
	trimmed := strings.Trim(segment, " \t")
	if trimmed == "" {
		return Command{}, false
	}

	command, pos := lexer.ParseCommandAndPosition(trimmed)
	var args string
	if pos < len(trimmed) {
		args = trimmed[pos+1:]
	}

	redirection := redir.ParseAndStrip(&args)

	return Command{Name: command, Args: args, Redir: redirection}, true
}
