package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abidanBrito/ash/internal/histfile"
)

// history prints, loads, or saves command history. Its sub-command
// detection is deliberately lenient: it checks whether env.RawArgs
// *starts with* "-r", "-w", or "-a" rather than requiring it to be a
// standalone token, matching the source's args.find("-r") == 0 check.
// "-rfoo" and "-r foo" are both read mode; only a genuine leading
// space or different character breaks the match.
func history(args []string, env Env) error {
	raw := env.RawArgs

	switch {
	case strings.HasPrefix(raw, "-r"):
		return historyRead(raw, env)
	case strings.HasPrefix(raw, "-w"):
		return historyWrite(raw, env, false)
	case strings.HasPrefix(raw, "-a"):
		return historyWrite(raw, env, true)
	default:
		return historyPrint(raw, env)
	}
}

func historyPrint(raw string, env Env) error {
	numEntries := len(env.State.History)

	if raw != "" {
		n, ok := parseLeadingInt(raw)
		if !ok {
			fmt.Fprintln(env.Stderr, "history: invalid argument")
			return nil
		}
		numEntries = n
	}

	start := 0
	if numEntries < len(env.State.History) {
		start = len(env.State.History) - numEntries
	}

	for i := start; i < len(env.State.History); i++ {
		fmt.Fprintf(env.Stdout, "%5d  %s\n", i+1, env.State.History[i])
	}

	return nil
}

func historyRead(raw string, env Env) error {
	filename, ok := histfile.ExtractFilename(raw, 2)
	if !ok {
		fmt.Fprintln(env.Stderr, "history: -r requires a filename")
		return nil
	}

	before := len(env.State.History)
	_, err := histfile.Load(filename, env.State)
	if err != nil {
		fmt.Fprintf(env.Stderr, "history: cannot open %s\n", filename)
		return nil
	}

	if env.Completion != nil {
		for _, line := range env.State.History[before:] {
			env.Completion.SaveHistory(line)
		}
	}

	return nil
}

func historyWrite(raw string, env Env, appendOnly bool) error {
	filename, ok := histfile.ExtractFilename(raw, 2)
	if !ok {
		flag := "-w"
		if appendOnly {
			flag = "-a"
		}
		fmt.Fprintf(env.Stderr, "history: %s requires a filename\n", flag)
		return nil
	}

	if err := histfile.Write(filename, env.State, appendOnly); err != nil {
		fmt.Fprintf(env.Stderr, "history: cannot open %s\n", filename)
	}

	return nil
}

// parseLeadingInt mimics std::stoi: skip leading whitespace, accept an
// optional sign, then consume as many digits as are present and ignore
// any trailing garbage. It fails only when no digits were found at all.
func parseLeadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digitsStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, false
	}

	return n, true
}
