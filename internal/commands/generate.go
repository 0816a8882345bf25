package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/treso-dev/treso/internal/config"
	"github.com/treso-dev/treso/internal/dataset"
	"github.com/treso-dev/treso/internal/logging"
)

func newGenerateCommand() *cobra.Command {
	var configPath string
	var outDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic treasury dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runGenerate(logging.New(), cfg, outDir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to treso.yaml (built-in defaults when omitted)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides configured paths)")

	return cmd
}

func runGenerate(log zerolog.Logger, cfg *config.Config, outDir string) error {
	// Validation happens before any file is touched; a bad config must not
	// leave partial output behind.
	movements, products, err := dataset.Generate(cfg.Generator)
	if err != nil {
		return err
	}

	movementsPath := cfg.Report.MovementsPath
	productsPath := cfg.Report.ProductsPath
	if outDir != "" {
		movementsPath = filepath.Join(outDir, "movements.csv")
		productsPath = filepath.Join(outDir, "products.csv")
	}

	if err := writeCSV(movementsPath, func(f *os.File) error {
		return dataset.WriteMovements(f, movements)
	}); err != nil {
		return err
	}
	if err := writeCSV(productsPath, func(f *os.File) error {
		return dataset.WriteProducts(f, products)
	}); err != nil {
		return err
	}

	log.Info().Int("movements", len(movements)).Str("path", movementsPath).Msg("movements written")
	log.Info().Int("products", len(products)).Str("path", productsPath).Msg("products written")
	return nil
}

func writeCSV(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
