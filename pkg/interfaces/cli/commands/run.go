package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/assembler/pkg/application/services"
	"github.com/vsinha/assembler/pkg/application/services/shared"
	"github.com/vsinha/assembler/pkg/infrastructure/events"
	"github.com/vsinha/assembler/pkg/infrastructure/idgen"
	"github.com/vsinha/assembler/pkg/infrastructure/journal"
	"github.com/vsinha/assembler/pkg/infrastructure/metrics"
	"github.com/vsinha/assembler/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/assembler/pkg/infrastructure/repositories/text"
	"github.com/vsinha/assembler/pkg/interfaces/cli/output"
)

// RunOptions holds flags for the run command
type RunOptions struct {
	Seed        uint64
	ShowStock   bool
	StockTable  bool
	Summary     bool
	JournalPath string
	MetricsAddr string

	ids idgen.Generator
}

// NewRunCommand creates the run command
func NewRunCommand(root *RootOptions) *cobra.Command {
	return newRunCommand(root, &RunOptions{})
}

func newRunCommand(root *RootOptions, opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Read designs and parts and print every assembled product",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssembly(cmd, root, opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for the filler draw (0 = time based)")
	cmd.Flags().BoolVar(&opts.ShowStock, "show-stock", false, "print remaining stock after the last part")
	cmd.Flags().BoolVar(&opts.StockTable, "stock-table", false, "print remaining stock as a table")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "print run statistics after the last part")
	cmd.Flags().StringVar(&opts.JournalPath, "journal", "", "record assembled products in this SQLite file")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func runAssembly(cmd *cobra.Command, root *RootOptions, opts *RunOptions) (err error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Random.Seed = opts.Seed
	}
	if flags.Changed("show-stock") {
		cfg.Output.ShowStock = opts.ShowStock
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = opts.Summary
	}
	if flags.Changed("journal") {
		cfg.Journal.Path = opts.JournalPath
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = opts.MetricsAddr
	}

	log := newLogger(cfg, cmd.ErrOrStderr())

	out, err := output.NewWriter(cmd.OutOrStdout(), cfg.Output.Format)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid output format", err)
	}

	in, err := root.openInput(cmd)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	eventStore := events.NewInMemoryEventStore(log)

	if cfg.Journal.Path != "" {
		j, openErr := journal.Open(cfg.Journal.Path)
		if openErr != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", openErr)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil && err == nil {
				err = WrapExitError(ExitFailure, "journal write failed", closeErr)
			}
		}()
		if subErr := eventStore.Subscribe([]string{events.ProductAssembledEvent}, j); subErr != nil {
			return fmt.Errorf("failed to subscribe journal: %w", subErr)
		}
		log.Debug("journal enabled", "path", j.Path())
	}

	if cfg.Metrics.Addr != "" {
		recorder := metrics.NewRecorder()
		if err := eventStore.Subscribe(recorder.EventTypes(), recorder); err != nil {
			return fmt.Errorf("failed to subscribe metrics: %w", err)
		}
		go func() {
			if err := recorder.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error("metrics server stopped", "error", err)
			}
		}()
		log.Debug("metrics enabled", "addr", cfg.Metrics.Addr)
	}

	ids := opts.ids
	if ids == nil {
		ids = idgen.UUIDv7Generator{}
	}

	stock := memory.NewStockRepository()
	designs := memory.NewDesignRepository(0)
	svc := services.NewAssemblyService(stock, designs,
		services.WithRandomSource(shared.NewRandomSource(cfg.Random.Seed)),
		services.WithIDGenerator(ids),
		services.WithEventStore(eventStore),
		services.WithLogger(log),
	)

	src := text.NewSource(in)
	loader := text.NewLoader()

	for lineNo, line := range src.DesignLines() {
		design, err := loader.ParseDesign(line)
		if err != nil {
			return WrapExitError(ExitFailure, "invalid design", fmt.Errorf("line %d: %w", lineNo, err))
		}
		if err := svc.SubmitDesign(ctx, design); err != nil {
			return WrapExitError(ExitFailure, "failed to submit design", err)
		}
	}

	warnDesignIssues(log, svc.Designs())

	for lineNo, line := range src.PartLines() {
		part, err := loader.ParsePart(line)
		if err != nil {
			return WrapExitError(ExitFailure, "invalid part", fmt.Errorf("line %d: %w", lineNo, err))
		}
		product, err := svc.IngestPart(ctx, part)
		if err != nil {
			return WrapExitError(ExitFailure, "assembly failed", fmt.Errorf("line %d: %w", lineNo, err))
		}
		if product == nil {
			continue
		}
		if err := out.Product(product); err != nil {
			return fmt.Errorf("failed to write product: %w", err)
		}
	}
	if err := src.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	if opts.StockTable {
		output.StockTable(cmd.OutOrStdout(), svc.Stock(), designs.IsReferenced)
	} else if cfg.Output.ShowStock {
		if err := out.Stock(svc.Stock()); err != nil {
			return fmt.Errorf("failed to write stock: %w", err)
		}
	}
	if cfg.Output.Summary {
		if err := out.Summary(svc.Summary()); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}
