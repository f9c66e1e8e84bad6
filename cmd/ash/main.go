// Command ash is a small interactive POSIX-style shell: quoting,
// redirection, and pipelines over builtins and PATH-resolved external
// commands. It takes no flags or arguments.
package main

import (
	"fmt"
	"os"

	"github.com/abidanBrito/ash/internal/shell"
)

func main() {
	sh, err := shell.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ash: failed to start:", err)
		os.Exit(1)
	}
	defer sh.Close()

	sh.Run()
}
