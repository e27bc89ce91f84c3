// Package main is the entry point for the plank build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/plankbuild/plank/cmd/plank/commands"
	"github.com/plankbuild/plank/internal/app"
	"github.com/plankbuild/plank/internal/core/domain"
	_ "github.com/plankbuild/plank/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = components.Telemetry.Close()
	}()

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a pretty error report with stack trace and metadata
		// when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps error classes to distinct process exit codes so wrapper
// scripts can tell resolution failures apart.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedLockRecord):
		return 2
	case errors.Is(err, domain.ErrUnresolvedExtension):
		return 3
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return 4
	case errors.Is(err, domain.ErrUnpinnedDependency):
		return 5
	case errors.Is(err, domain.ErrDanglingAlias):
		return 6
	case errors.Is(err, domain.ErrAliasCycle):
		return 7
	default:
		return 1
	}
}
