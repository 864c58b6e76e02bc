package cli

import (
	"github.com/spf13/cobra"

	"github.com/salespipe/salespipe/internal/datagen"
	"github.com/salespipe/salespipe/internal/logging"
)

var (
	generateRecords  int
	generateNullRate float64
	generateOutput   string
	generateSeed     uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a sample sales CSV file",
	Long: `Generate a CSV file of synthetic sales records to feed the ETL
pipeline. A fraction of cells is left empty to exercise the cleaning
stage; order dates are written as MM/DD/YYYY so the transform stage has
something to normalize.

Example:
  salespipe generate --records 1000 --output sales_data.csv`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateRecords, "records", 0,
		"number of records to generate")
	generateCmd.Flags().Float64Var(&generateNullRate, "null-rate", -1,
		"per-cell null injection probability (0 to <1)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "",
		"output CSV file")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0,
		"random seed for reproducible output (0 = random)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if generateRecords > 0 {
		cfg.Generate.Records = generateRecords
	}
	if generateNullRate >= 0 {
		cfg.Generate.NullRate = generateNullRate
	}
	if generateOutput != "" {
		cfg.Generate.Output = generateOutput
	}
	if generateSeed > 0 {
		cfg.Generate.Seed = generateSeed
	}

	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	gen := datagen.NewSalesGenerator(datagen.SalesConfig{
		Records:  cfg.Generate.Records,
		NullRate: cfg.Generate.NullRate,
		Seed:     cfg.Generate.Seed,
	})

	rows, nulls, err := gen.WriteFile(cfg.Generate.Output)
	if err != nil {
		return err
	}

	logging.Info().
		Str("output", cfg.Generate.Output).
		Int("records", rows).
		Int("null_cells", nulls).
		Msg("Sample data generation complete")

	return nil
}
