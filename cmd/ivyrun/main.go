package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/doeshing/ivyrun/internal/infrastructure/cli"
	"github.com/doeshing/ivyrun/internal/infrastructure/cli/commands"
)

func main() {
	// INT/TERM cancel the run context: the foreground task is killed
	// and the deferred shutdown reaps the extractor before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})

	if err := root.ExecuteContext(ctx); err != nil {
		if code, ok := commands.ExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("IVYRUN_DEBUG"), "1") || strings.EqualFold(os.Getenv("IVYRUN_DEBUG"), "true")
}
