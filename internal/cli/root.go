// Package cli wires the tools to their command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/credentials"
	"github.com/dxbtools/admintools/internal/logging"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit statuses shared by every subcommand.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError carries the process exit status for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(format string, args ...interface{}) error {
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// Options are the process level inputs of the command tree.
type Options struct {
	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer
	// Started is called once the configuration is loaded and logging is up.
	Started func(cfg config.Config)
}

// env is shared by the subcommands of one root command.
type env struct {
	opts       Options
	configFile string
	cfg        config.Config
}

// NewRootCmd builds the admintools command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	e := &env{opts: opts}

	cmd := &cobra.Command{
		Use:   "admintools",
		Short: "Single purpose administrative tools",
		Long: `admintools bundles a terminal menu and four request/response tools for
storage arrays, monitoring, patch management and virtualization inventory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd, args)
		},
	}
	cmd.SetIn(opts.Stdin)
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Err: err}
	})
	addPersistentFlags(cmd.PersistentFlags(), &e.configFile)

	cmd.AddCommand(
		newMenuCmd(e),
		newDellCmd(e),
		newNagiosCmd(e),
		newSUMACmd(e),
		newVMCmd(e),
	)
	return cmd
}

func addPersistentFlags(fs *pflag.FlagSet, configFile *string) {
	fs.StringVar(configFile, "config", "", "config file (default is admintools.yaml in the user config dir, /etc/admintools or .)")
	fs.String("log-file", "", "log file path")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.Bool("trace", false, "write structured trace entries to the log")
	fs.Bool("syslog", false, "mirror log entries to syslog")
}

func (e *env) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd, e.configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	e.cfg = cfg
	e.configureLogging(cfg.Logging.Syslog, "admintools")
	if e.opts.Started != nil {
		e.opts.Started(cfg)
	}
	return nil
}

func (e *env) configureLogging(syslog bool, tag string) {
	logging.Configure(logging.Options{
		FilePath: e.cfg.Logging.File,
		Level:    e.cfg.Logging.Level,
		Trace:    e.cfg.Logging.Trace,
		Syslog:   syslog,
		Tag:      tag,
	})
}

// passwords builds the resolver every password hungry tool shares.
func (e *env) passwords() (*credentials.Resolver, error) {
	r := &credentials.Resolver{
		Prompt: &credentials.TerminalPrompter{In: e.opts.Stdin, Out: e.opts.Stderr},
		Warn:   e.opts.Stderr,
	}
	if e.cfg.Vault.Enabled() {
		src, err := credentials.NewVaultSource(e.cfg.Vault)
		if err != nil {
			return nil, err
		}
		r.Store = src
	}
	return r, nil
}

// Execute runs the command tree for args and returns the process exit status.
func Execute(ctx context.Context, args []string, opts Options) int {
	cmd := NewRootCmd(opts)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	code := ExitCode(err)
	if reportable(err) {
		logging.Error(err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	name := "admintools"
	if sub, _, ferr := cmd.Find(args); ferr == nil && sub != nil {
		name = sub.Name()
	}
	events.App.Exit(name, code)
	logging.Flush()
	return code
}

// reportable is false for errors that only carry an exit status.
func reportable(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return false
	}
	return true
}

// ExitCode maps err onto a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var invalid *validate.Error
	if errors.As(err, &invalid) {
		return invalid.Code
	}
	var cmdErr *exec.ExitError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode()
	}
	return ExitFailure
}
