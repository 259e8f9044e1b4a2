// Package cli implements the cobra-based CLI commands for dev.
//
// The tree has two resource groups, network and volume, each with the
// create, list, inspect and remove actions. This file defines the root
// command, global flags, and the translation of errors into exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kherge/dev/internal/config"
	"github.com/kherge/dev/internal/docker"
	"github.com/kherge/dev/internal/logger"
	"github.com/kherge/dev/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Options configure a command tree. The zero value talks to the real
// Docker daemon and writes to the process's stdout and stderr.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// Client, when non-nil, is injected into every manager in place of a
	// client built from the environment.
	Client docker.EngineAPI
}

// app carries per-invocation state shared by all subcommands. Nothing in
// it outlives a single Execute.
type app struct {
	opts Options
	v    *viper.Viper

	verbosity  int
	configPath string

	cfg *config.Config
	log zerolog.Logger

	api   docker.EngineAPI
	owned bool
}

// NewRootCommand creates the root cobra command with both resource groups
// registered.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{
		opts: opts,
		v:    config.New(),
		log:  zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "dev",
		Short: "Creates and manages containerized development environments",
		Long: `dev creates and manages the Docker networks and volumes used by
containerized development environments.

Every resource dev creates is labeled ` + docker.ManagedLabelKey + `=true.
Resources without that label are never listed, modified or removed.`,

		// Errors are printed by Run, once, in our own format.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", "Increase logging verbosity (-v warn, -vv info, -vvv debug, -vvvv trace)")
	flags.StringVar(&a.configPath, "config", "", "Config file (default <user config dir>/dev/config.jsonc)")
	flags.StringP("output", "o", config.FormatTable, "Output format: table, json, yaml")
	flags.StringP("host", "H", "", "Docker daemon address (overrides DOCKER_HOST)")

	// Flags only win over file and environment values when given.
	_ = a.v.BindPFlag(config.KeyOutputFormat, flags.Lookup("output"))
	_ = a.v.BindPFlag(config.KeyDockerHost, flags.Lookup("host"))

	rootCmd.AddCommand(newNetworkCommand(a))
	rootCmd.AddCommand(newVolumeCommand(a))

	if opts.Stdout != nil {
		rootCmd.SetOut(opts.Stdout)
	}
	if opts.Stderr != nil {
		rootCmd.SetErr(opts.Stderr)
	}

	return rootCmd
}

// setup loads configuration and builds the logger. It runs before every
// subcommand but never connects to Docker.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidConfig, "failed to load configuration", err)
	}
	a.cfg = cfg

	level := logger.ParseLevel(cfg.Logging.Level)
	if a.verbosity > 0 {
		level = logger.LevelForVerbosity(a.verbosity)
	}
	a.log = logger.New(cmd.ErrOrStderr(), level)

	a.log.Debug().
		Str("output", cfg.Output.Format).
		Str("host", cfg.Docker.Host).
		Msg("configuration loaded")
	return nil
}

// engine returns the Docker client for this invocation, building the
// default one on first use.
func (a *app) engine(ctx context.Context) (docker.EngineAPI, error) {
	if a.api != nil {
		return a.api, nil
	}

	if a.opts.Client != nil {
		a.log.Debug().Msg("using given client")
	} else {
		a.log.Debug().Msg("using client from environment")
	}

	api, err := docker.GetClient(ctx, a.opts.Client, docker.ClientOptions{Host: a.cfg.Docker.Host})
	if err != nil {
		return nil, err
	}

	a.api = api
	a.owned = a.opts.Client == nil
	return api, nil
}

// close releases a client built by engine. Injected clients belong to
// the caller and are left open.
func (a *app) close() {
	if a.owned && a.api != nil {
		_ = a.api.Close()
	}
	a.api = nil
	a.owned = false
}

// action adapts a leaf command body to cobra's RunE, releasing the client
// and logging the full error chain at debug level when it fails.
func (a *app) action(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()

		err := fn(cmd, args)
		if err != nil {
			a.log.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
		}
		return err
	}
}

// Run executes rootCmd, prints any error to its error stream and returns
// the exit code.
func Run(ctx context.Context, rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return model.ExitSuccess
	}

	printError(rootCmd.ErrOrStderr(), err)
	return exitCodeFor(err)
}

// exitCodeFor maps an error to the process exit code. CLIError carries its
// own; NotManagedError has a dedicated code; anything else is 1.
func exitCodeFor(err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}

	var notManaged *model.NotManagedError
	if errors.As(err, &notManaged) {
		return model.ExitNotManaged
	}

	return model.ExitGeneralError
}

// printError writes the error message in red when w is a color-capable
// terminal. A not-managed error is printed bare so the message matches
// its documented form exactly.
func printError(w io.Writer, err error) {
	message := err.Error()

	var notManaged *model.NotManagedError
	if errors.As(err, &notManaged) {
		message = notManaged.Error()
	}

	_, _ = color.New(color.FgRed).Fprintln(w, message)
}
