package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/treso-dev/treso/internal/config"
	"github.com/treso-dev/treso/internal/dataset"
	"github.com/treso-dev/treso/internal/logging"
	"github.com/treso-dev/treso/internal/model"
	"github.com/treso-dev/treso/internal/report"
)

func newReportCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute treasury KPIs and export the multi-sheet report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runReport(logging.New(), cfg, cmd.OutOrStdout(), time.Now())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to treso.yaml (built-in defaults when omitted)")

	return cmd
}

func runReport(log zerolog.Logger, cfg *config.Config, out io.Writer, now time.Time) error {
	raws, err := readMovements(cfg.Report.MovementsPath)
	if err != nil {
		return err
	}
	products, err := readProducts(cfg.Report.ProductsPath)
	if err != nil {
		return err
	}
	log.Info().Int("movements", len(raws)).Int("products", len(products)).Msg("data loaded")

	cleaned, cleanReport := report.Clean(raws, products)
	log.Info().
		Int("kept", cleanReport.Kept).
		Int("removed", cleanReport.Removed).
		Msg("cleaning complete")
	if cleanReport.UnknownOps > 0 {
		log.Warn().Int("rows", cleanReport.UnknownOps).Msg("rows with unknown operation type kept but excluded from income/expense totals")
	}

	views := report.BuildViews(cleaned)

	reportName := report.ReportFilename(now)
	reportPath := filepath.Join(cfg.Report.OutputDir, reportName)
	if err := report.Export(reportPath, cleaned, views); err != nil {
		return err
	}
	log.Info().Str("path", reportPath).Msg("report exported")

	summary := report.BuildSummary(cleaned, views.Daily, views.Alerts, reportName)
	summary.Render(out)
	return nil
}

func readMovements(path string) ([]dataset.RawMovement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening movements %s: %w", path, err)
	}
	defer f.Close()

	raws, err := dataset.ReadRawMovements(f)
	if err != nil {
		return nil, fmt.Errorf("loading movements %s: %w", path, err)
	}
	return raws, nil
}

func readProducts(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening products %s: %w", path, err)
	}
	defer f.Close()

	products, err := dataset.ReadProducts(f)
	if err != nil {
		return nil, fmt.Errorf("loading products %s: %w", path, err)
	}
	return products, nil
}
