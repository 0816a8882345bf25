package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treso-dev/treso/internal/model"
)

func TestBuildSummary(t *testing.T) {
	movements := threeMovements()
	daily := ComputeDailyFlow(movements)
	alerts := LiquidityAlerts(daily)

	s := BuildSummary(movements, daily, alerts, "treasury_report_2024-06-01.xlsx")

	assert.True(t, s.PeriodStart.Equal(date(2024, 1, 2)))
	assert.True(t, s.PeriodEnd.Equal(date(2024, 1, 3)))
	assert.Equal(t, 3, s.Operations)
	assert.Equal(t, 2, s.OperatingDays)
	assert.Equal(t, 0, s.AlertDays)

	assert.True(t, s.PEN.Income.Equal(dec("100.00")))
	assert.True(t, s.PEN.Expense.Equal(dec("40.00")))
	assert.True(t, s.PEN.Net.Equal(dec("60.00")))
	assert.True(t, s.USD.Income.Equal(dec("50.00")))
	assert.True(t, s.USD.Expense.IsZero())
	assert.True(t, s.USD.Net.Equal(dec("50.00")))
}

func TestSummaryRender(t *testing.T) {
	movements := threeMovements()
	daily := ComputeDailyFlow(movements)
	s := BuildSummary(movements, daily, nil, "treasury_report_2024-06-01.xlsx")

	var buf bytes.Buffer
	s.Render(&buf)
	out := buf.String()

	assert.Contains(t, out, "TREASURY EXECUTIVE SUMMARY")
	assert.Contains(t, out, "Period: 2024-01-02 -> 2024-01-03")
	assert.Contains(t, out, "Total operations   : 3")
	assert.Contains(t, out, "Operating days     : 2")
	assert.Contains(t, out, "[PEN] Income")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "[USD] Net flow")
	assert.Contains(t, out, "0 day(s) with negative PEN flow")
	assert.Contains(t, out, "treasury_report_2024-06-01.xlsx")
}

func TestGroupAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"100", "100.00"},
		{"1000", "1,000.00"},
		{"1234567.8", "1,234,567.80"},
		{"-1234567.8", "-1,234,567.80"},
		{"999999999.99", "999,999,999.99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupAmount(dec(tt.in)), "input %s", tt.in)
	}
}

func TestSummaryCountsAlertDays(t *testing.T) {
	movements := []model.Movement{
		mv(1, date(2024, 1, 2), "Repo", "expense", "50.00", "PEN", "BCP"),
		mv(2, date(2024, 1, 3), "Repo", "expense", "10.00", "PEN", "BCP"),
	}
	daily := ComputeDailyFlow(movements)
	alerts := LiquidityAlerts(daily)
	require.Len(t, alerts, 2)

	s := BuildSummary(movements, daily, alerts, "r.xlsx")
	assert.Equal(t, 2, s.AlertDays)
}
