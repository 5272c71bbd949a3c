package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/assembler/pkg/domain/entities"
	domainservices "github.com/vsinha/assembler/pkg/domain/services"
	"github.com/vsinha/assembler/pkg/infrastructure/logger"
	"github.com/vsinha/assembler/pkg/infrastructure/repositories/text"
	"github.com/vsinha/assembler/pkg/interfaces/cli/output"
)

// NewParseCommand creates the parse command, which validates an input file
// without assembling anything.
func NewParseCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "Validate designs and parts and print them in canonical form",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			in, err := root.openInput(cmd)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := output.NewWriter(cmd.OutOrStdout(), cfg.Output.Format)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid output format", err)
			}

			src := text.NewSource(in)
			loader := text.NewLoader()

			designs, err := loader.LoadDesigns(src)
			if err != nil {
				return WrapExitError(ExitFailure, "invalid design", err)
			}
			for _, design := range designs {
				if err := out.Design(design); err != nil {
					return err
				}
			}
			warnDesignIssues(newLogger(cfg, cmd.ErrOrStderr()), designs)

			parts := make(map[entities.Part]entities.Quantity)
			for lineNo, line := range src.PartLines() {
				part, err := loader.ParsePart(line)
				if err != nil {
					return WrapExitError(ExitFailure, "invalid part", fmt.Errorf("line %d: %w", lineNo, err))
				}
				parts[part]++
			}
			if err := src.Err(); err != nil {
				return WrapExitError(ExitCommandError, "failed to read input", err)
			}

			return out.Stock(parts)
		},
	}
}

// warnDesignIssues logs design set problems that do not stop a run
func warnDesignIssues(log logger.Logger, designs []*entities.Design) {
	result := domainservices.NewDesignValidator().ValidateDesigns(designs)
	for _, warning := range result.Warnings {
		log.Warn("design check", "warning", warning)
	}
}
