// ABOUTME: Cobra command definition for the enrich CLI

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"enrichment-app-api/api/dto/mappers"
	"enrichment-app-api/core/interfaces"
	"enrichment-app-api/enrichlib"
	stdlogger "enrichment-app-api/infrastructure/logger/standard"
	"enrichment-app-api/pkg/config"
	"github.com/spf13/cobra"
)

type options struct {
	file    string
	column  string
	query   string
	envFile string
	max     int
	indent  bool
	verbose bool
}

// clientFactory builds the enrichment client; tests replace it
var clientFactory = func(cfg *config.Config, logger interfaces.Logger) (*enrichlib.Client, error) {
	return enrichlib.NewClientFromConfig(cfg, enrichlib.WithLogger(logger))
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Research every entity in a table column",
		Long: `enrich reads a CSV, TSV, JSON or XLSX file, takes the distinct values of one
column and answers the query for each of them using web search and an LLM.
The result is printed as JSON in the same shape the API returns.`,
		Example:       `  enrich --file companies.csv --column Company --query "who is the CEO"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "table file to enrich (.csv, .tsv, .json, .xlsx)")
	f.StringVarP(&opts.column, "column", "c", "", "column holding the entities")
	f.StringVarP(&opts.query, "query", "q", "", "what to find out about each entity")
	f.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	f.IntVar(&opts.max, "max-entities", 0, "override the per-run entity cap")
	f.BoolVar(&opts.indent, "pretty", true, "indent the JSON output")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline progress to stderr")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.max > 0 {
		cfg.Pipeline.MaxEntities = opts.max
	}
	if err := cfg.Validate(); err != nil {
		return &enrichlib.Error{Type: enrichlib.ErrorTypeConfiguration, Message: "invalid configuration", Cause: err}
	}

	var logger interfaces.Logger = interfaces.NopLogger{}
	if opts.verbose {
		logger = stdlogger.NewWithWriter(stderr, stdlogger.Options{Level: "debug"})
	}

	client, err := clientFactory(cfg, logger)
	if err != nil {
		return err
	}

	result, err := client.RunFile(ctx, opts.file, opts.query, opts.column)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if opts.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(mappers.ToEnrichResponse(result))
}

// exitCode maps error categories to process exit codes
func exitCode(err error) int {
	switch enrichlib.Classify(err) {
	case enrichlib.ErrorTypeValidation:
		return 2
	case enrichlib.ErrorTypeConfiguration:
		return 3
	case enrichlib.ErrorTypeUpstream:
		return 4
	case enrichlib.ErrorTypeCancelled:
		return 130
	default:
		return 1
	}
}
