// Package cli wires the dev server runner into a cobra command tree shared by
// the shakapacker-dev-server and legacy webpacker-dev-server binaries.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"shakapacker-go/internal/runner"
	"shakapacker-go/internal/settings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	exitNotFound   = 127
	exitPermission = 126
)

// Execute runs the command tree for os.Args and returns the process exit code.
// On success the dev server replaces this process and Execute never returns.
func Execute(name, version string, legacy bool) int {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: name})
	root := NewRootCommand(name, version, legacy, logger)
	if err := root.Execute(); err != nil {
		logger.Error(err)
		return exitCode(err)
	}
	return 0
}

func NewRootCommand(name, version string, legacy bool, logger *log.Logger, opts ...runner.Option) *cobra.Command {
	root := &cobra.Command{
		Use:                name + " [dev server flags...]",
		Short:              "Run the bundler dev server for a Shakapacker app",
		Long:               "All arguments are passed through to `webpack serve` (or `rspack serve`), after --config <bundler config>.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRunner(logger, legacy, opts)
			if err != nil {
				return err
			}
			return r.Run(args)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(cmdDoctor(logger, legacy, opts))
	root.AddCommand(cmdVersion(name, version))
	return root
}

func loadRunner(logger *log.Logger, legacy bool, opts []runner.Option) (*runner.Runner, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, err
	}
	if s.LogLevel != "" {
		level, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid SHAKAPACKER_LOG_LEVEL: %w", err)
		}
		logger.SetLevel(level)
	}
	if legacy {
		logger.Warn("webpacker-dev-server is deprecated, use shakapacker-dev-server instead")
	}
	return runner.New(s, append([]runner.Option{runner.WithLogger(logger)}, opts...)...), nil
}

func cmdDoctor(logger *log.Logger, legacy bool, opts []runner.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "doctor [dev server flags...]",
		Short:              "Show the resolved configuration and the command that would run",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRunner(logger, legacy, opts)
			if err != nil {
				return err
			}
			return r.Doctor(cmd.OutOrStdout(), args)
		},
	}
	return cmd
}

func cmdVersion(name, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", name, version)
			return nil
		},
	}
	return cmd
}

// exitCode follows the shell convention for launch failures: 127 when the
// executable is missing, 126 when it cannot be executed.
func exitCode(err error) int {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		if errors.Is(execErr.Err, fs.ErrPermission) {
			return exitPermission
		}
		return exitNotFound
	}
	// unix.Exec returns the bare errno.
	if errno, ok := err.(syscall.Errno); ok {
		switch {
		case errors.Is(errno, fs.ErrNotExist):
			return exitNotFound
		case errors.Is(errno, fs.ErrPermission):
			return exitPermission
		}
	}
	return 1
}
