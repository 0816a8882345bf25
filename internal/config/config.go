package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level treso.yaml configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Report    ReportConfig    `yaml:"report"`
}

// GeneratorConfig holds all parameters for synthetic dataset generation.
type GeneratorConfig struct {
	Seed           int64           `yaml:"seed"`
	StartDate      string          `yaml:"start_date"` // "2006-01-02"
	EndDate        string          `yaml:"end_date"`
	Records        int             `yaml:"records"`
	PENWeight      float64         `yaml:"pen_weight"` // USD takes the remainder
	Products       []ProductConfig `yaml:"products"`
	Counterparties []string        `yaml:"counterparties"`
}

// ProductConfig is one catalog entry plus its plausible amount range.
type ProductConfig struct {
	ID        int     `yaml:"id"`
	Name      string  `yaml:"name"`
	MinAmount float64 `yaml:"min_amount"`
	MaxAmount float64 `yaml:"max_amount"`
}

// ReportConfig holds the fixed input/output paths for the report run.
type ReportConfig struct {
	MovementsPath string `yaml:"movements_path"`
	ProductsPath  string `yaml:"products_path"`
	OutputDir     string `yaml:"output_dir"`
}

const dateFormat = "2006-01-02"

// Load reads a treso.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in configuration used when no treso.yaml exists.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Seed:      42,
			StartDate: "2024-01-01",
			EndDate:   "2024-12-31",
			Records:   500,
			PENWeight: 0.6,
			Products: []ProductConfig{
				{ID: 1, Name: "Term Deposit", MinAmount: 50_000, MaxAmount: 1_000_000},
				{ID: 2, Name: "Overnight", MinAmount: 500_000, MaxAmount: 5_000_000},
				{ID: 3, Name: "Current Account", MinAmount: 5_000, MaxAmount: 300_000},
				{ID: 4, Name: "Repo", MinAmount: 200_000, MaxAmount: 2_000_000},
				{ID: 5, Name: "Credit Line", MinAmount: 5_000, MaxAmount: 300_000},
			},
			Counterparties: []string{
				"BCP", "BBVA", "Interbank", "Scotiabank",
				"Citibank", "BCRP", "Client A", "Client B", "Client C",
			},
		},
		Report: ReportConfig{
			MovementsPath: "data/movements.csv",
			ProductsPath:  "data/products.csv",
			OutputDir:     ".",
		},
	}
}

// DateWindow parses the generator's date range.
func (g GeneratorConfig) DateWindow() (start, end time.Time, err error) {
	start, err = time.Parse(dateFormat, g.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("parsing start_date %q: %w", g.StartDate, err)
	}
	end, err = time.Parse(dateFormat, g.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("parsing end_date %q: %w", g.EndDate, err)
	}
	return start, end, nil
}

// Validate checks generator parameters before any output is written.
func (g GeneratorConfig) Validate() error {
	if g.Records <= 0 {
		return fmt.Errorf("records must be positive, got %d", g.Records)
	}
	if len(g.Products) == 0 {
		return fmt.Errorf("product catalog is empty")
	}
	if len(g.Counterparties) == 0 {
		return fmt.Errorf("counterparty list is empty")
	}
	if g.PENWeight < 0 || g.PENWeight > 1 {
		return fmt.Errorf("pen_weight must be within [0, 1], got %g", g.PENWeight)
	}
	start, end, err := g.DateWindow()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("date window inverted: %s is after %s", g.StartDate, g.EndDate)
	}
	seen := make(map[int]bool, len(g.Products))
	for _, p := range g.Products {
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %d in catalog", p.ID)
		}
		seen[p.ID] = true
		if p.MinAmount >= p.MaxAmount {
			return fmt.Errorf("product %d (%s): amount range [%g, %g) is empty", p.ID, p.Name, p.MinAmount, p.MaxAmount)
		}
	}
	return nil
}
