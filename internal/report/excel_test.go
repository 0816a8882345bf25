package report

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportSheetOrder(t *testing.T) {
	movements := threeMovements()
	views := BuildViews(movements)

	path := filepath.Join(t.TempDir(), ReportFilename(date(2024, 6, 1)))
	require.NoError(t, Export(path, movements, views))
	assert.Equal(t, "treasury_report_2024-06-01.xlsx", filepath.Base(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Daily Flow", "Monthly Summary", "By Product",
		"Top Counterparties", "Liquidity Alerts", "Full Data",
	}, f.GetSheetList())
}

func TestExportDailyFlowSheet(t *testing.T) {
	movements := threeMovements()
	views := BuildViews(movements)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Export(path, movements, views))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetDailyFlow)
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two (date, currency) groups

	assert.Equal(t, []string{
		"date", "currency", "total_income", "total_expense",
		"net_flow", "operations", "cumulative_balance",
	}, rows[0])

	assert.Equal(t, "2024-01-02", rows[1][0])
	assert.Equal(t, "PEN", rows[1][1])
	assertCell(t, rows[1][4], 60) // net flow
	assert.Equal(t, "2", rows[1][5])
}

func TestExportEmptyAlertsSheet(t *testing.T) {
	movements := threeMovements() // all net flows positive, no alerts
	views := BuildViews(movements)
	require.Empty(t, views.Alerts)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Export(path, movements, views))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetAlerts)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus exactly one informational row")
	assert.Equal(t, []string{"message"}, rows[0])
	assert.Equal(t, []string{NoAlertsMessage}, rows[1])
}

func TestExportAlertsSheetWithData(t *testing.T) {
	ms := threeMovements()
	// Flip the PEN income into an expense so 2024-01-02 goes negative.
	ms[0].OperationType = "expense"
	ms[0].NetAmount = ms[0].NetAmount.Neg()
	views := BuildViews(ms)
	require.Len(t, views.Alerts, 1)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Export(path, ms, views))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetAlerts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"date", "net_flow", "cumulative_balance", "status"}, rows[0])
	assert.Equal(t, "2024-01-02", rows[1][0])
	assertCell(t, rows[1][1], -140)
	assert.Equal(t, AlertStatus, rows[1][3])
}

func TestExportFullDataExcludesDerivedColumns(t *testing.T) {
	movements := threeMovements()
	views := BuildViews(movements)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Export(path, movements, views))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetFullData)
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + three movements

	assert.Equal(t, []string{
		"id", "date", "product_id", "product_name", "operation_type",
		"amount", "currency", "counterparty", "description",
	}, rows[0])
	assert.NotContains(t, rows[0], "net_amount")
	assert.NotContains(t, rows[0], "month")
}

func TestExportBadPath(t *testing.T) {
	movements := threeMovements()
	views := BuildViews(movements)

	err := Export(filepath.Join(t.TempDir(), "missing-dir", "report.xlsx"), movements, views)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving report")
}

// assertCell parses a numeric cell rendered by excelize and compares it.
func assertCell(t *testing.T, got string, want float64) {
	t.Helper()
	v, err := strconv.ParseFloat(got, 64)
	require.NoError(t, err, "cell %q is not numeric", got)
	assert.InDelta(t, want, v, 0.001)
}
