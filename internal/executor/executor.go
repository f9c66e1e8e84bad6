// Package executor turns a parsed pipeline into running processes. An
// external command is a real forked child wired up with syscall.ForkExec;
// a builtin runs in the current process, since Go cannot safely fork a
// multi-threaded runtime and keep executing Go code in the child. Both
// paths share the same redirection and pipe file descriptors, so from
// the outside a builtin mid-pipeline behaves the same as a real child.
//
// A builtin run as one stage of a pipeline never reaches the real shell
// state or exit flag: the source forks a child for every stage, builtin
// or not, so that stage's side effects die with it. runBuiltinPipelined
// reproduces that by running against a throwaway State copy and
// dropping ErrExit; only runBuiltin, called from the true single-command
// path, touches the real Executor.
package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/abidanBrito/ash/internal/builtin"
	"github.com/abidanBrito/ash/internal/lexer"
	"github.com/abidanBrito/ash/internal/pipeline"
	"github.com/abidanBrito/ash/internal/redir"
	"github.com/abidanBrito/ash/internal/state"
	"github.com/abidanBrito/ash/pkg/path"
)

// Executor holds the collaborators every command dispatch needs: the
// shell's mutable state and the line editor's history sink.
type Executor struct {
	State      *state.Shell
	Completion builtin.CompletionSink

	exited bool
}

// Exited reports whether the last dispatched command was "exit".
func (e *Executor) Exited() bool {
	return e.exited
}

// Run executes one input line: a pipeline if it contains an unquoted
// '|', otherwise a single command. It reports whether the command was
// resolved and dispatched; false means the caller should print
// "<cmd>: command not found".
func (e *Executor) Run(input string) bool {
	if pipeline.HasPipes(input) {
		return e.runPipeline(pipeline.Parse(input))
	}

	name, pos := lexer.ParseCommandAndPosition(input)
	if name == "" {
		return true
	}

	var args string
	if pos < len(input) {
		args = input[pos+1:]
	}
	spec := redir.ParseAndStrip(&args)

	return e.runSingle(pipeline.Command{Name: name, Args: args, Redir: spec})
}

// runSingle is the non-pipeline path: a fork is needed iff the command
// is external, since builtins always run in-process in this port.
func (e *Executor) runSingle(cmd pipeline.Command) bool {
	isBuiltin := builtin.IsBuiltin(cmd.Name)

	var execPath string
	if !isBuiltin {
		resolved, ok := path.FindExecutable(cmd.Name)
		if !ok {
			return false
		}
		execPath = resolved
	}

	stdout, stderr, cleanup, ok := openRedirTargets(os.Stdout, os.Stderr, cmd.Redir)
	defer cleanup()
	if !ok {
		// The diagnostic is already on stderr; this is not a resolution
		// failure, so the caller must not also print "command not found".
		return true
	}

	if isBuiltin {
		e.runBuiltin(cmd, stdout, stderr)
		return true
	}

	return forkExec(execPath, cmd.Args, os.Stdin, stdout, stderr)
}

// runBuiltin invokes a builtin in-process against the real shell state,
// tokenizing its argument string for the one builtin (echo) that wants
// split arguments; the rest key off the raw remainder via Env.RawArgs.
// Only runSingle calls this: it is the one context where the source
// never forks at all (a bare, non-pipeline command), so a builtin's
// effects on State, and "exit", must really reach the shell.
func (e *Executor) runBuiltin(cmd pipeline.Command, stdout, stderr *os.File) {
	fn, _ := builtin.Lookup(cmd.Name)

	env := builtin.Env{
		Stdout:     stdout,
		Stderr:     stderr,
		State:      e.State,
		Completion: e.Completion,
		RawArgs:    cmd.Args,
	}

	if err := fn(lexer.ParseArguments(cmd.Args), env); err == builtin.ErrExit {
		e.exited = true
	}
}

// runBuiltinPipelined invokes a builtin as one stage of a pipeline. The
// source forks a real child for every pipeline stage, builtins
// included, so whatever that builtin does to shell state, or a request
// to exit, is confined to the child and discarded when it exits; "cd
// /tmp | cat" and "echo hi | exit" never touch the parent shell. This
// runs the builtin against a throwaway copy of State and ignores
// ErrExit entirely, mirroring that isolation without an actual fork.
func (e *Executor) runBuiltinPipelined(cmd pipeline.Command, stdout, stderr *os.File) {
	fn, _ := builtin.Lookup(cmd.Name)

	scratch := *e.State
	scratch.History = append([]string(nil), e.State.History...)

	env := builtin.Env{
		Stdout:   stdout,
		Stderr:   stderr,
		State:    &scratch,
		RawArgs:  cmd.Args,
		Isolated: true,
	}

	fn(lexer.ParseArguments(cmd.Args), env)
}

// execStageErrno reports whether err looks like it came from execve(2)
// failing inside an already-forked child (no such file, permission
// denied, not a recognized executable format) rather than fork(2)
// itself failing. syscall.ForkExec relays an exec-stage errno back to
// the caller the same way it would a fork-stage one, so the two must be
// told apart by the errno value, not the error's shape.
func execStageErrno(err error) bool {
	errno, ok := err.(syscall.Errno)
	if !ok {
		return false
	}
	switch errno {
	case syscall.ENOENT, syscall.EACCES, syscall.ENOEXEC, syscall.EISDIR, syscall.ENOTDIR, syscall.E2BIG, syscall.ELOOP:
		return true
	default:
		return false
	}
}

// forkExec runs an external program as a real child process with the
// given standard streams, and reaps it before returning. A failure to
// fork at all reports "Failed to fork process" and false; a failure of
// the exec call inside an already-forked child (which ForkExec has
// already reaped) reports "<path>: command not found" on stderr and
// true, since the fork itself succeeded.
func forkExec(execPath, rawArgs string, stdin, stdout, stderr *os.File) bool {
	argv := append([]string{filepath.Base(execPath)}, lexer.ParseArguments(rawArgs)...)
	cwd, _ := os.Getwd()

	pid, err := syscall.ForkExec(execPath, argv, &syscall.ProcAttr{
		Dir:   cwd,
		Files: []uintptr{stdin.Fd(), stdout.Fd(), stderr.Fd()},
	})
	if err != nil {
		if execStageErrno(err) {
			fmt.Fprintf(os.Stderr, "%s: command not found\n", execPath)
			return true
		}
		fmt.Fprintln(os.Stderr, "Failed to fork process")
		return false
	}

	var status syscall.WaitStatus
	syscall.Wait4(pid, &status, 0, nil)
	return true
}

// openRedirTargets opens the files named by spec, if any, defaulting
// to defaultOut/defaultErr for the streams that have no redirection.
// The returned cleanup closes whichever files were actually opened; it
// is always safe to call. ok is false if a target file could not be
// opened, in which case the diagnostic has already been printed.
func openRedirTargets(defaultOut, defaultErr *os.File, spec redir.Spec) (stdout, stderr *os.File, cleanup func(), ok bool) {
	stdout, stderr = defaultOut, defaultErr
	var opened []*os.File
	cleanup = func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if spec.Stdout != nil {
		f, err := openTarget(spec.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open file: %s\n", spec.Stdout.Path)
			return stdout, stderr, cleanup, false
		}
		opened = append(opened, f)
		stdout = f
	}

	if spec.Stderr != nil {
		f, err := openTarget(spec.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open file: %s\n", spec.Stderr.Path)
			return stdout, stderr, cleanup, false
		}
		opened = append(opened, f)
		stderr = f
	}

	return stdout, stderr, cleanup, true
}

func openTarget(t *redir.Target) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if t.Mode == redir.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(t.Path, flags, 0o644)
}
