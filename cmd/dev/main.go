// Package main is the entry point for the dev CLI.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development they default to "dev", "none", and "unknown".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kherge/dev/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Interrupts cancel in-flight Docker calls instead of killing the
	// process mid-request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, cli.NewRootCommand(cli.Options{}))
	stop()

	os.Exit(int(code))
}
