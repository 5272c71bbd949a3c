// Package commands implements the assembler command line.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vsinha/assembler/pkg/infrastructure/config"
	"github.com/vsinha/assembler/pkg/infrastructure/logger"
	"github.com/vsinha/assembler/pkg/interfaces/cli/output"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigFile string
	Input      string
	Format     string
	Verbose    bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "assembler",
		Short:         "Assemble products from queued designs as parts arrive",
		Long:          "Reads designs, a blank line, then parts, one per line, and prints each product as soon as stock allows.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "" && !output.IsValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flag",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, output.ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVarP(&opts.Input, "input", "i", "", "input file (default stdin)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format: text or json (default text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flag", err)
	})

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))

	return cmd
}

// loadConfig reads the config file and applies the global flag overrides
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openInput returns the input file, or the command's stdin when none is set
func (o *RootOptions) openInput(cmd *cobra.Command) (io.ReadCloser, error) {
	if o.Input == "" || o.Input == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(o.Input)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open input", err)
	}
	return f, nil
}

// noArgs rejects positional arguments with a command error
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}
	return nil
}

func newLogger(cfg *config.Config, w io.Writer) logger.Logger {
	level, _ := logger.ParseLevel(cfg.Log.Level)
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.Log.Format)),
		logger.WithOutput(w),
	)
}
