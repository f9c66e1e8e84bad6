package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/abidanBrito/ash/internal/builtin"
	"github.com/abidanBrito/ash/internal/lexer"
	"github.com/abidanBrito/ash/internal/pipeline"
	"github.com/abidanBrito/ash/pkg/path"
)

// runPipeline wires N commands through N-1 anonymous pipes. Every
// external segment forks a real child; every builtin segment runs
// synchronously in this process before the loop moves on, so its
// output is fully written to its pipe before anything downstream could
// observe a short read. Builtins never produce enough output to fill
// the kernel pipe buffer in this shell, so that ordering never blocks.
func (e *Executor) runPipeline(cmds pipeline.Pipeline) bool {
	if len(cmds) == 0 {
		return false
	}
	if len(cmds) == 1 {
		return e.runSingle(cmds[0])
	}

	n := len(cmds)
	for _, cmd := range cmds {
		if builtin.IsBuiltin(cmd.Name) {
			continue
		}
		if _, ok := path.FindExecutable(cmd.Name); !ok {
			fmt.Fprintf(os.Stderr, "%s: command not found\n", cmd.Name)
			return false
		}
	}

	type pipe struct{ r, w *os.File }
	pipes := make([]pipe, n-1)
	for i := range pipes {
		r, w, err := os.Pipe()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create pipe")
			for j := 0; j < i; j++ {
				pipes[j].r.Close()
				pipes[j].w.Close()
			}
			return false
		}
		pipes[i] = pipe{r, w}
	}

	closePipes := func() {
		for _, p := range pipes {
			p.r.Close()
			p.w.Close()
		}
	}

	var pids []int
	for i, cmd := range cmds {
		stdin := os.Stdin
		if i > 0 {
			stdin = pipes[i-1].r
		}
		stdout := os.Stdout
		if i < n-1 {
			stdout = pipes[i].w
		}

		resolvedOut, resolvedErr, cleanup, ok := openRedirTargets(stdout, os.Stderr, cmd.Redir)
		if !ok {
			cleanup()
			closePipes()
			waitAll(pids)
			return true
		}

		if builtin.IsBuiltin(cmd.Name) {
			e.runBuiltinPipelined(cmd, resolvedOut, resolvedErr)
			cleanup()
			continue
		}

		execPath, _ := path.FindExecutable(cmd.Name)
		argv := append([]string{filepath.Base(execPath)}, lexer.ParseArguments(cmd.Args)...)
		cwd, _ := os.Getwd()

		pid, err := syscall.ForkExec(execPath, argv, &syscall.ProcAttr{
			Dir:   cwd,
			Files: []uintptr{stdin.Fd(), resolvedOut.Fd(), resolvedErr.Fd()},
		})
		cleanup()
		if err != nil {
			if execStageErrno(err) {
				// execve itself failed inside the child; ForkExec has
				// already reaped it, so there is no pid to track and
				// the rest of the pipeline still runs normally.
				fmt.Fprintf(os.Stderr, "%s: command not found\n", execPath)
				continue
			}
			fmt.Fprintln(os.Stderr, "Failed to fork process")
			closePipes()
			waitAll(pids)
			return false
		}
		pids = append(pids, pid)
	}

	// Every pipe end must be closed here, before waiting, or a reader
	// downstream never sees EOF and the pipeline deadlocks.
	closePipes()
	waitAll(pids)

	return true
}

func waitAll(pids []int) {
	for _, pid := range pids {
		var status syscall.WaitStatus
		syscall.Wait4(pid, &status, 0, nil)
	}
}
