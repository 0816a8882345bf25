package dataset

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/treso-dev/treso/internal/config"
	"github.com/treso-dev/treso/internal/model"
)

// Generate produces a deterministic synthetic movement set plus the product
// lookup table. The same configuration always yields the same records.
func Generate(cfg config.GeneratorConfig) ([]model.Movement, []model.Product, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid generator config: %w", err)
	}

	start, end, err := cfg.DateWindow()
	if err != nil {
		return nil, nil, err
	}

	days := businessDays(start, end)
	if len(days) == 0 {
		return nil, nil, fmt.Errorf("no business days between %s and %s", cfg.StartDate, cfg.EndDate)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	movements := make([]model.Movement, 0, cfg.Records)
	for i := 1; i <= cfg.Records; i++ {
		product := cfg.Products[rng.Intn(len(cfg.Products))]
		opType := string(model.OpIncome)
		if rng.Intn(2) == 1 {
			opType = string(model.OpExpense)
		}
		currency := model.CurrencyUSD
		if rng.Float64() < cfg.PENWeight {
			currency = model.CurrencyPEN
		}
		amount := product.MinAmount + rng.Float64()*(product.MaxAmount-product.MinAmount)
		counterparty := cfg.Counterparties[rng.Intn(len(cfg.Counterparties))]

		movements = append(movements, model.Movement{
			ID:            i,
			Date:          days[rng.Intn(len(days))],
			ProductID:     product.ID,
			ProductName:   product.Name,
			OperationType: opType,
			Amount:        decimal.NewFromFloat(amount).Round(2),
			Currency:      currency,
			Counterparty:  counterparty,
			Description:   product.Name + " - " + counterparty,
		})
	}

	// Stable so same-day records keep generation order.
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})

	products := make([]model.Product, 0, len(cfg.Products))
	for _, p := range cfg.Products {
		products = append(products, model.Product{ID: p.ID, Name: p.Name})
	}

	return movements, products, nil
}

// businessDays lists every Monday-Friday date in [start, end].
func businessDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days = append(days, d)
		}
	}
	return days
}
