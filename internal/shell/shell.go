// Package shell drives the read-evaluate-print loop: reading a line
// from the interactive editor, recording it in history, dispatching it
// to the executor, and reporting an unresolved command. It owns the
// shell's process-wide state and the HISTFILE load/save cycle.
package shell

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"

	"github.com/abidanBrito/ash/internal/executor"
	"github.com/abidanBrito/ash/internal/histfile"
	"github.com/abidanBrito/ash/internal/lexer"
	"github.com/abidanBrito/ash/internal/pipeline"
	"github.com/abidanBrito/ash/internal/replio"
	"github.com/abidanBrito/ash/internal/state"
)

const prompt = "$ "

// Shell is the top-level REPL: the readline editor, the executor, and
// the process-wide state they share.
type Shell struct {
	rl    *readline.Instance
	exec  *executor.Executor
	state *state.Shell
}

// New builds a Shell. The line editor's own on-disk recall file is
// kept separate from HISTFILE: readline manages ~/.ash_history itself,
// independent of the shell's "history" builtin and its HISTFILE.
func New() (*Shell, error) {
	home, _ := os.UserHomeDir()
	var recallFile string
	if home != "" {
		recallFile = home + "/.ash_history"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     recallFile,
		AutoComplete:    replio.Completer{},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	st := &state.Shell{}
	sh := &Shell{
		rl:    rl,
		state: st,
		exec:  &executor.Executor{State: st, Completion: rl},
	}

	if path := os.Getenv("HISTFILE"); path != "" {
		histfile.Load(path, st)
	}

	return sh, nil
}

// Close releases the line editor and, if HISTFILE is set, appends
// whatever history has accumulated since the last write.
func (s *Shell) Close() {
	if path := os.Getenv("HISTFILE"); path != "" {
		histfile.Write(path, s.state, true)
	}
	s.rl.Close()
}

// Run drives the loop until end-of-input, an interrupt that isn't
// recoverable, or the exit builtin is invoked.
func (s *Shell) Run() {
	for {
		line, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return
		}

		if line == "" {
			continue
		}

		s.state.AddHistory(line)
		s.rl.SaveHistory(line)

		// The bare "exit" check, and the stdout "command not found"
		// diagnostic below, only apply to a non-pipeline line, exactly
		// as in the source: a pipeline containing "exit" as one of its
		// stages runs the whole pipeline instead, and an unresolved
		// pipeline stage already reported itself to stderr.
		isPipeline := pipeline.HasPipes(line)
		var name string
		if !isPipeline {
			name, _ = lexer.ParseCommandAndPosition(line)
			if name == "exit" {
				return
			}
		}

		ok := s.exec.Run(line)
		if !ok && !isPipeline {
			fmt.Fprintf(os.Stdout, "%s: command not found\n", name)
		}
		if s.exec.Exited() {
			return
		}
	}
}
