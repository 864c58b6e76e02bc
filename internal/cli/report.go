package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salespipe/salespipe/internal/db"
	"github.com/salespipe/salespipe/internal/logging"
	"github.com/salespipe/salespipe/internal/report"
)

var (
	reportOutputDir string
	reportNoCharts  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run aggregate reports against loaded sales data",
	Long: `Run read-only aggregation queries against the sales_summary table
and write the results to a reports directory: per-product sales and
monthly revenue as CSV, plus HTML charts unless disabled.

Example:
  salespipe report --output-dir reports --connection "postgres://..."`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "",
		"directory to write report files to")
	reportCmd.Flags().BoolVar(&reportNoCharts, "no-charts", false,
		"skip HTML chart rendering")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportOutputDir != "" {
		cfg.Report.OutputDir = reportOutputDir
	}
	if reportNoCharts {
		cfg.Report.Charts = false
	}
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if _, err := db.GetMetadataValue(ctx, pool, "last_run_at"); err != nil {
		logging.Warn().
			Msg("No pipeline run recorded; run 'salespipe run' first for complete reports")
	}

	if err := report.Run(ctx, pool, report.Options{
		OutputDir: cfg.Report.OutputDir,
		Charts:    cfg.Report.Charts,
	}); err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	logging.Info().
		Str("output_dir", cfg.Report.OutputDir).
		Msg("Reports complete")

	return nil
}
