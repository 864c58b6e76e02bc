package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/salespipe/salespipe/internal/db"
	"github.com/salespipe/salespipe/internal/logging"
	"github.com/salespipe/salespipe/internal/pipeline"
	"github.com/salespipe/salespipe/internal/store"
)

var runInput string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ETL pipeline: extract, transform, load",
	Long: `Run the full ETL pipeline. The input CSV is read into memory,
cleaned and normalized, and loaded into the sales_summary table.
Records whose order_id is already present are skipped, so re-running
on the same input is safe and inserts nothing.

Example:
  salespipe run --input sales_data.csv --connection "postgres://..."`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "",
		"input CSV file")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runInput != "" {
		cfg.Pipeline.Input = runInput
	}
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	start := time.Now()
	logging.Info().
		Str("input", cfg.Pipeline.Input).
		Msg("Starting ETL pipeline")

	// Extract
	raw, err := pipeline.ExtractFile(cfg.Pipeline.Input)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}
	logging.Info().
		Int("rows", len(raw)).
		Msg("Extracted input rows")

	// Transform
	res, err := pipeline.Transform(raw)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}
	logging.Info().
		Int("rows", len(res.Records)).
		Int("dropped", res.Dropped).
		Msg("Transformation complete")

	// Load
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	inserted, err := st.LoadBatch(ctx, res.Records)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	if err := db.SaveRunMetadata(ctx, pool, cfg.Pipeline.Input, inserted); err != nil {
		logging.Warn().Err(err).Msg("Could not record run metadata")
	}

	logging.Info().
		Int("inserted", inserted).
		Int("skipped", len(res.Records)-inserted).
		Str("duration", time.Since(start).Truncate(time.Millisecond).String()).
		Msg("ETL pipeline complete")

	return nil
}
