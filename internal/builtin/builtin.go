// Package builtin implements the shell's in-process commands: exit,
// echo, type, pwd, cd, and history. Each is a pure function of its
// arguments and an Env carrying the I/O streams and shell state it may
// read or mutate — never a closure over shell internals, so a builtin
// runs the same way whether it writes to the shell's own streams, to
// redirected files, or to a pipe as one stage of a pipeline.
package builtin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abidanBrito/ash/internal/state"
	"github.com/abidanBrito/ash/pkg/path"
)

// ErrExit signals that the REPL should terminate. It is not a failure.
var ErrExit = errors.New("exit")

// CompletionSink lets history -r feed newly loaded lines into the
// interactive line editor's own recall buffer, mirroring what typing
// them at the prompt would have done. Concretely satisfied by
// *readline.Instance's SaveHistory method.
type CompletionSink interface {
	SaveHistory(line string) error
}

// Env carries everything a builtin needs beyond its arguments: where to
// write, the shell's mutable state, and the two external collaborators
// a builtin occasionally touches (PATH resolution for "type", and the
// line editor's history for "history -r").
type Env struct {
	Stdout     io.Writer
	Stderr     io.Writer
	State      *state.Shell
	Completion CompletionSink

	// RawArgs is the untokenized remainder of the command line (quotes
	// and internal whitespace intact, redirection already stripped).
	// type, cd, and history all key off this rather than the split
	// args, exactly as the source does: only echo tokenizes.
	RawArgs string

	// Isolated marks a builtin running as one stage of a pipeline. The
	// source forks a real child for every pipeline stage, builtins
	// included, so a builtin's process-level side effects there die
	// with that child; State is already a throwaway copy in this case,
	// but os.Chdir is real process state no fork ever isolated here, so
	// cd must skip the actual chdir and only probe whether it would
	// have succeeded.
	Isolated bool
}

// Func is the signature every builtin satisfies.
type Func func(args []string, env Env) error

var registry map[string]Func

func init() {
	registry = map[string]Func{
		"exit":    exit,
		"echo":    echo,
		"type":    typeCmd,
		"pwd":     pwd,
		"cd":      cd,
		"history": history,
	}
}

// Lookup returns the builtin named name, if any.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// IsBuiltin reports whether name is one of the fixed builtin set.
func IsBuiltin(name string) bool {
	_, ok := registry[name]
	return ok
}

func exit(args []string, env Env) error {
	return ErrExit
}

func echo(args []string, env Env) error {
	fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return nil
}

func typeCmd(args []string, env Env) error {
	name := env.RawArgs

	if IsBuiltin(name) {
		fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return nil
	}

	if resolved, ok := path.FindExecutable(name); ok {
		fmt.Fprintf(env.Stdout, "%s is %s\n", name, resolved)
		return nil
	}

	fmt.Fprintf(env.Stdout, "%s: not found\n", name)
	return nil
}

func pwd(args []string, env Env) error {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(env.Stderr, "pwd: error getting the current working directory")
		return nil
	}
	fmt.Fprintln(env.Stdout, dir)
	return nil
}

func cd(args []string, env Env) error {
	original := env.RawArgs

	target, err := cdTarget(original, env)
	if err != nil {
		return nil
	}

	if env.Isolated {
		if !isDir(target) {
			fmt.Fprintf(env.Stdout, "cd: %s: No such file or directory\n", original)
		}
		return nil
	}

	oldwd, _ := os.Getwd()
	if chdirErr := os.Chdir(target); chdirErr != nil {
		fmt.Fprintf(env.Stdout, "cd: %s: No such file or directory\n", original)
		return nil
	}

	env.State.PrevDir = oldwd
	return nil
}

// isDir reports whether target names a directory, without changing the
// real process's working directory. It stands in for an actual chdir
// attempt when cd runs isolated, since the chdir it would otherwise
// perform only ever affected a forked child that is about to discard it.
func isDir(target string) bool {
	info, err := os.Stat(target)
	return err == nil && info.IsDir()
}

// cdTarget resolves a cd argument to the directory to change into. The
// second error return is only non-nil for the terminal "HOME not set"
// and "no previous directory" cases, which already wrote their own
// diagnostic and should not fall through to the chdir attempt.
func cdTarget(arg string, env Env) (string, error) {
	switch {
	case arg == "" || arg == "~":
		home := os.Getenv("HOME")
		if home == "" {
			fmt.Fprintln(env.Stderr, "cd: HOME not set")
			return "", errAbortCd
		}
		return home, nil

	case arg == "-":
		if env.State.PrevDir == "" {
			pwd(nil, env)
			return "", errAbortCd
		}
		return env.State.PrevDir, nil

	default:
		return arg, nil
	}
}

// errAbortCd signals that cdTarget already produced the builtin's
// entire observable output (an error message or a pwd-like fallback)
// and cd should not attempt a chdir at all.
var errAbortCd = errors.New("cd: nothing to do")
