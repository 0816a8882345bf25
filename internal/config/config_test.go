package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Generator.Seed = 7
	cfg.Generator.Records = 42
	cfg.Report.OutputDir = "reports"

	path := filepath.Join(t.TempDir(), "treso.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.Generator.Seed)
	assert.Equal(t, 42, got.Generator.Records)
	assert.Equal(t, cfg.Generator.StartDate, got.Generator.StartDate)
	assert.Equal(t, cfg.Generator.EndDate, got.Generator.EndDate)
	assert.InDelta(t, cfg.Generator.PENWeight, got.Generator.PENWeight, 0.001)
	assert.Equal(t, cfg.Generator.Counterparties, got.Generator.Counterparties)
	require.Len(t, got.Generator.Products, 5)
	assert.Equal(t, "Overnight", got.Generator.Products[1].Name)
	assert.InDelta(t, 5_000_000, got.Generator.Products[1].MaxAmount, 0.001)
	assert.Equal(t, "reports", got.Report.OutputDir)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Equal(t, "2024-01-01", cfg.Generator.StartDate)
	assert.Equal(t, "2024-12-31", cfg.Generator.EndDate)
	assert.Equal(t, 500, cfg.Generator.Records)
	assert.InDelta(t, 0.6, cfg.Generator.PENWeight, 0.001)
	assert.Len(t, cfg.Generator.Products, 5)
	assert.Len(t, cfg.Generator.Counterparties, 9)
	assert.Equal(t, "data/movements.csv", cfg.Report.MovementsPath)
	assert.Equal(t, "data/products.csv", cfg.Report.ProductsPath)
	assert.Equal(t, ".", cfg.Report.OutputDir)

	require.NoError(t, cfg.Generator.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GeneratorConfig)
		wantErr string
	}{
		{
			name:    "zero records",
			mutate:  func(g *GeneratorConfig) { g.Records = 0 },
			wantErr: "records must be positive",
		},
		{
			name:    "empty catalog",
			mutate:  func(g *GeneratorConfig) { g.Products = nil },
			wantErr: "product catalog is empty",
		},
		{
			name:    "empty counterparties",
			mutate:  func(g *GeneratorConfig) { g.Counterparties = nil },
			wantErr: "counterparty list is empty",
		},
		{
			name:    "inverted window",
			mutate:  func(g *GeneratorConfig) { g.StartDate, g.EndDate = g.EndDate, g.StartDate },
			wantErr: "date window inverted",
		},
		{
			name:    "bad weight",
			mutate:  func(g *GeneratorConfig) { g.PENWeight = 1.5 },
			wantErr: "pen_weight",
		},
		{
			name:    "unparseable date",
			mutate:  func(g *GeneratorConfig) { g.StartDate = "01/02/2024" },
			wantErr: "parsing start_date",
		},
		{
			name: "duplicate product id",
			mutate: func(g *GeneratorConfig) {
				g.Products = append(g.Products, ProductConfig{ID: 1, Name: "Dup", MinAmount: 1, MaxAmount: 2})
			},
			wantErr: "duplicate product id",
		},
		{
			name: "empty amount range",
			mutate: func(g *GeneratorConfig) {
				g.Products[0].MinAmount = g.Products[0].MaxAmount
			},
			wantErr: "amount range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Default().Generator
			tt.mutate(&g)
			err := g.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
