package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/treso-dev/treso/internal/model"
)

// DailyFlow is one row of the daily net-flow view: totals for a single
// (date, currency) pair plus the running balance for that currency.
type DailyFlow struct {
	Date              time.Time
	Currency          string
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	NetFlow           decimal.Decimal
	Operations        int
	CumulativeBalance decimal.Decimal
}

// ProductSummary is one row of the per-product view.
type ProductSummary struct {
	ProductName  string
	Currency     string
	Operations   int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	MeanAmount   decimal.Decimal
}

// CounterpartyRank is one row of the top-counterparties view.
type CounterpartyRank struct {
	Counterparty string
	Operations   int
	TotalVolume  decimal.Decimal
	MeanAmount   decimal.Decimal
}

// Alert is a liquidity alert: a day whose PEN net flow went negative.
type Alert struct {
	Date              time.Time
	NetFlow           decimal.Decimal
	CumulativeBalance decimal.Decimal
	Status            string
}

// MonthlySummary is one row of the month-by-month view.
type MonthlySummary struct {
	Month        string // "2006-01"
	Currency     string
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetFlow      decimal.Decimal
}

// AlertStatus labels every liquidity-alert row.
const AlertStatus = "NEGATIVE FLOW"

// TopCounterpartyLimit caps the counterparty ranking.
const TopCounterpartyLimit = 10

// Views bundles the five aggregate views computed from one cleaned dataset.
type Views struct {
	Daily          []DailyFlow
	Monthly        []MonthlySummary
	Products       []ProductSummary
	Counterparties []CounterpartyRank
	Alerts         []Alert
}

// BuildViews computes all five views. Alerts derive from the daily flow, so
// it is computed first; everything else reads only the cleaned input.
func BuildViews(movements []model.Movement) Views {
	daily := ComputeDailyFlow(movements)
	return Views{
		Daily:          daily,
		Monthly:        ComputeMonthlySummary(movements),
		Products:       ComputeProductSummary(movements),
		Counterparties: TopCounterparties(movements),
		Alerts:         LiquidityAlerts(daily),
	}
}

// ComputeDailyFlow groups by (date, currency), accumulating income, expense,
// net flow, and operation count in a single pass, then sorts ascending and
// threads the per-currency cumulative balance through the sorted rows.
func ComputeDailyFlow(movements []model.Movement) []DailyFlow {
	type key struct {
		date     time.Time
		currency string
	}

	rows := make(map[key]*DailyFlow)
	var order []key
	for _, m := range movements {
		k := key{m.Date, m.Currency}
		row, ok := rows[k]
		if !ok {
			row = &DailyFlow{Date: m.Date, Currency: m.Currency}
			rows[k] = row
			order = append(order, k)
		}
		accumulate(m, &row.TotalIncome, &row.TotalExpense)
		row.NetFlow = row.NetFlow.Add(m.NetAmount)
		row.Operations++
	}

	out := make([]DailyFlow, 0, len(order))
	for _, k := range order {
		out = append(out, *rows[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Currency < out[j].Currency
	})

	balances := make(map[string]decimal.Decimal)
	for i := range out {
		balances[out[i].Currency] = balances[out[i].Currency].Add(out[i].NetFlow)
		out[i].CumulativeBalance = balances[out[i].Currency]
	}
	return out
}

// ComputeProductSummary groups by (product name, currency) and sorts by
// total income descending.
func ComputeProductSummary(movements []model.Movement) []ProductSummary {
	type key struct {
		product  string
		currency string
	}
	type acc struct {
		row ProductSummary
		sum decimal.Decimal
	}

	rows := make(map[key]*acc)
	var order []key
	for _, m := range movements {
		k := key{m.ProductName, m.Currency}
		a, ok := rows[k]
		if !ok {
			a = &acc{row: ProductSummary{ProductName: m.ProductName, Currency: m.Currency}}
			rows[k] = a
			order = append(order, k)
		}
		accumulate(m, &a.row.TotalIncome, &a.row.TotalExpense)
		a.sum = a.sum.Add(m.Amount)
		a.row.Operations++
	}

	out := make([]ProductSummary, 0, len(order))
	for _, k := range order {
		a := rows[k]
		a.row.MeanAmount = mean(a.sum, a.row.Operations)
		out = append(out, a.row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalIncome.GreaterThan(out[j].TotalIncome)
	})
	return out
}

// TopCounterparties ranks counterparties by total transacted volume
// (income and expense magnitudes both count), descending, ties broken by
// first appearance, truncated to TopCounterpartyLimit rows.
func TopCounterparties(movements []model.Movement) []CounterpartyRank {
	rows := make(map[string]*CounterpartyRank)
	var order []string
	for _, m := range movements {
		row, ok := rows[m.Counterparty]
		if !ok {
			row = &CounterpartyRank{Counterparty: m.Counterparty}
			rows[m.Counterparty] = row
			order = append(order, m.Counterparty)
		}
		row.TotalVolume = row.TotalVolume.Add(m.Amount)
		row.Operations++
	}

	out := make([]CounterpartyRank, 0, len(order))
	for _, name := range order {
		row := rows[name]
		row.MeanAmount = mean(row.TotalVolume, row.Operations)
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalVolume.GreaterThan(out[j].TotalVolume)
	})
	if len(out) > TopCounterpartyLimit {
		out = out[:TopCounterpartyLimit]
	}
	return out
}

// LiquidityAlerts filters the daily flow down to PEN days with strictly
// negative net flow, most negative first.
func LiquidityAlerts(daily []DailyFlow) []Alert {
	var alerts []Alert
	for _, d := range daily {
		if d.Currency != model.CurrencyPEN || !d.NetFlow.IsNegative() {
			continue
		}
		alerts = append(alerts, Alert{
			Date:              d.Date,
			NetFlow:           d.NetFlow,
			CumulativeBalance: d.CumulativeBalance,
			Status:            AlertStatus,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].NetFlow.LessThan(alerts[j].NetFlow)
	})
	return alerts
}

// ComputeMonthlySummary groups by (month, currency) ascending.
func ComputeMonthlySummary(movements []model.Movement) []MonthlySummary {
	type key struct {
		month    string
		currency string
	}

	rows := make(map[key]*MonthlySummary)
	var order []key
	for _, m := range movements {
		k := key{m.Month, m.Currency}
		row, ok := rows[k]
		if !ok {
			row = &MonthlySummary{Month: m.Month, Currency: m.Currency}
			rows[k] = row
			order = append(order, k)
		}
		accumulate(m, &row.TotalIncome, &row.TotalExpense)
		row.NetFlow = row.NetFlow.Add(m.NetAmount)
	}

	out := make([]MonthlySummary, 0, len(order))
	for _, k := range order {
		out = append(out, *rows[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}

// accumulate classifies one movement into the income or expense running
// total. Unknown operation types land in neither, on purpose.
func accumulate(m model.Movement, income, expense *decimal.Decimal) {
	switch {
	case m.IsIncome():
		*income = income.Add(m.Amount)
	case m.IsExpense():
		*expense = expense.Add(m.Amount)
	}
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}
