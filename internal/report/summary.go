package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/treso-dev/treso/internal/model"
)

// CurrencyTotals holds the per-currency totals shown in the summary.
type CurrencyTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// Summary is the executive console summary of one report run.
type Summary struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Operations    int
	OperatingDays int
	PEN           CurrencyTotals
	USD           CurrencyTotals
	AlertDays     int
	ReportName    string
}

// BuildSummary assembles the summary from the cleaned movements and the
// already-computed daily flow and alerts.
func BuildSummary(movements []model.Movement, daily []DailyFlow, alerts []Alert, reportName string) Summary {
	s := Summary{Operations: len(movements), AlertDays: len(alerts), ReportName: reportName}

	days := make(map[time.Time]bool)
	for _, m := range movements {
		if s.PeriodStart.IsZero() || m.Date.Before(s.PeriodStart) {
			s.PeriodStart = m.Date
		}
		if m.Date.After(s.PeriodEnd) {
			s.PeriodEnd = m.Date
		}
		days[m.Date] = true
	}
	s.OperatingDays = len(days)

	for _, d := range daily {
		switch d.Currency {
		case model.CurrencyPEN:
			s.PEN.Income = s.PEN.Income.Add(d.TotalIncome)
			s.PEN.Expense = s.PEN.Expense.Add(d.TotalExpense)
			s.PEN.Net = s.PEN.Net.Add(d.NetFlow)
		case model.CurrencyUSD:
			s.USD.Income = s.USD.Income.Add(d.TotalIncome)
			s.USD.Expense = s.USD.Expense.Add(d.TotalExpense)
			s.USD.Net = s.USD.Net.Add(d.NetFlow)
		}
	}
	return s
}

const summaryRule = "======================================================="

// Render writes the fixed-format executive summary.
func (s Summary) Render(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintln(w, "  TREASURY EXECUTIVE SUMMARY")
	fmt.Fprintf(w, "  Period: %s -> %s\n", s.PeriodStart.Format("2006-01-02"), s.PeriodEnd.Format("2006-01-02"))
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintf(w, "  Total operations   : %d\n", s.Operations)
	fmt.Fprintf(w, "  Operating days     : %d\n", s.OperatingDays)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  [PEN] Income       : S/ %18s\n", groupAmount(s.PEN.Income))
	fmt.Fprintf(w, "  [PEN] Expense      : S/ %18s\n", groupAmount(s.PEN.Expense))
	fmt.Fprintf(w, "  [PEN] Net flow     : S/ %18s\n", groupAmount(s.PEN.Net))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  [USD] Income       : $  %18s\n", groupAmount(s.USD.Income))
	fmt.Fprintf(w, "  [USD] Expense      : $  %18s\n", groupAmount(s.USD.Expense))
	fmt.Fprintf(w, "  [USD] Net flow     : $  %18s\n", groupAmount(s.USD.Net))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Liquidity alerts   : %d day(s) with negative PEN flow\n", s.AlertDays)
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintf(w, "  Report generated   : %s\n", s.ReportName)
	fmt.Fprintln(w, summaryRule)
}

// groupAmount renders a decimal with two fixed places and thousands
// separators, e.g. -1234567.8 -> "-1,234,567.80".
func groupAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
