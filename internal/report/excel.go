package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/treso-dev/treso/internal/model"
)

// Sheet names of the report workbook, in their fixed order.
const (
	SheetDailyFlow      = "Daily Flow"
	SheetMonthlySummary = "Monthly Summary"
	SheetByProduct      = "By Product"
	SheetCounterparties = "Top Counterparties"
	SheetAlerts         = "Liquidity Alerts"
	SheetFullData       = "Full Data"
)

// NoAlertsMessage is the single informational row written when the period
// produced no liquidity alerts. The sheet itself is always present.
const NoAlertsMessage = "No liquidity alerts in period"

const excelDateFormat = "2006-01-02"

// ReportFilename returns the workbook name for a given generation date.
func ReportFilename(now time.Time) string {
	return fmt.Sprintf("treasury_report_%s.xlsx", now.Format(excelDateFormat))
}

// Export writes the five aggregate views plus the full cleaned dataset to a
// single xlsx workbook at path. Every sheet is produced even when its view is
// empty. The full-data sheet carries only source columns; the derived net
// amount and month bucket never leave the pipeline.
func Export(path string, movements []model.Movement, views Views) error {
	f := excelize.NewFile()
	defer f.Close()

	// The workbook starts with a default sheet; rename it to the first view
	// so sheet order matches the fixed layout.
	if err := f.SetSheetName("Sheet1", SheetDailyFlow); err != nil {
		return fmt.Errorf("naming sheet %s: %w", SheetDailyFlow, err)
	}
	for _, name := range []string{SheetMonthlySummary, SheetByProduct, SheetCounterparties, SheetAlerts, SheetFullData} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	daily := make([][]any, len(views.Daily))
	for i, d := range views.Daily {
		daily[i] = []any{
			d.Date.Format(excelDateFormat), d.Currency,
			cell(d.TotalIncome), cell(d.TotalExpense), cell(d.NetFlow),
			d.Operations, cell(d.CumulativeBalance),
		}
	}
	if err := writeSheet(f, SheetDailyFlow,
		[]string{"date", "currency", "total_income", "total_expense", "net_flow", "operations", "cumulative_balance"},
		daily); err != nil {
		return err
	}

	monthly := make([][]any, len(views.Monthly))
	for i, m := range views.Monthly {
		monthly[i] = []any{m.Month, m.Currency, cell(m.TotalIncome), cell(m.TotalExpense), cell(m.NetFlow)}
	}
	if err := writeSheet(f, SheetMonthlySummary,
		[]string{"month", "currency", "total_income", "total_expense", "net_flow"},
		monthly); err != nil {
		return err
	}

	products := make([][]any, len(views.Products))
	for i, p := range views.Products {
		products[i] = []any{
			p.ProductName, p.Currency, p.Operations,
			cell(p.TotalIncome), cell(p.TotalExpense), cell(p.MeanAmount),
		}
	}
	if err := writeSheet(f, SheetByProduct,
		[]string{"product_name", "currency", "operations", "total_income", "total_expense", "mean_amount"},
		products); err != nil {
		return err
	}

	cparties := make([][]any, len(views.Counterparties))
	for i, c := range views.Counterparties {
		cparties[i] = []any{c.Counterparty, c.Operations, cell(c.TotalVolume), cell(c.MeanAmount)}
	}
	if err := writeSheet(f, SheetCounterparties,
		[]string{"counterparty", "operations", "total_volume", "mean_amount"},
		cparties); err != nil {
		return err
	}

	if len(views.Alerts) == 0 {
		if err := writeSheet(f, SheetAlerts, []string{"message"}, [][]any{{NoAlertsMessage}}); err != nil {
			return err
		}
	} else {
		alerts := make([][]any, len(views.Alerts))
		for i, a := range views.Alerts {
			alerts[i] = []any{a.Date.Format(excelDateFormat), cell(a.NetFlow), cell(a.CumulativeBalance), a.Status}
		}
		if err := writeSheet(f, SheetAlerts,
			[]string{"date", "net_flow", "cumulative_balance", "status"},
			alerts); err != nil {
			return err
		}
	}

	full := make([][]any, len(movements))
	for i, m := range movements {
		full[i] = []any{
			m.ID, m.Date.Format(excelDateFormat), m.ProductID, m.ProductName,
			m.OperationType, cell(m.Amount), m.Currency, m.Counterparty, m.Description,
		}
	}
	if err := writeSheet(f, SheetFullData,
		[]string{"id", "date", "product_id", "product_name", "operation_type", "amount", "currency", "counterparty", "description"},
		full); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}
	return nil
}

// writeSheet fills one sheet with a header row followed by data rows.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	axis, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, axis, &hdr); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// cell converts a decimal amount to the numeric value stored in the workbook.
func cell(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
