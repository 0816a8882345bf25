package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/treso-dev/treso/internal/dataset"
	"github.com/treso-dev/treso/internal/model"
)

// CleanReport summarizes what the cleaning pass did.
type CleanReport struct {
	Loaded     int // raw rows in
	Kept       int // cleaned rows out
	Removed    int // Loaded - Kept
	UnknownOps int // kept rows whose operation type is neither income nor expense
}

const cleanDateFormat = "2006-01-02"

// Clean joins raw movements with the product catalog and validates them into
// a fresh slice; the input is never modified. Rows are removed when the
// transaction id repeats (first occurrence wins), when date, amount,
// operation type, or currency is missing, or when date or amount fails to
// parse. Operation type and currency are normalized to canonical case.
//
// A normalized operation type outside {income, expense} is tolerated: the
// row stays, is excluded from both partitioned sums, and contributes its
// amount negatively to the net. CleanReport.UnknownOps counts these.
func Clean(raws []dataset.RawMovement, products []model.Product) ([]model.Movement, CleanReport) {
	names := make(map[int]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	report := CleanReport{Loaded: len(raws)}
	seen := make(map[string]bool, len(raws))
	cleaned := make([]model.Movement, 0, len(raws))

	for _, raw := range raws {
		// Dedupe on the raw id string so rows with unparseable ids still
		// collapse the same way.
		if seen[raw.ID] {
			continue
		}
		seen[raw.ID] = true

		dateStr := strings.TrimSpace(raw.Date)
		amountStr := strings.TrimSpace(raw.Amount)
		opType := strings.ToLower(strings.TrimSpace(raw.OperationType))
		currency := strings.ToUpper(strings.TrimSpace(raw.Currency))

		if dateStr == "" || amountStr == "" || opType == "" || currency == "" {
			continue
		}

		date, err := time.Parse(cleanDateFormat, dateStr)
		if err != nil {
			continue
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			continue
		}

		if opType != string(model.OpIncome) && opType != string(model.OpExpense) {
			report.UnknownOps++
		}

		id, _ := strconv.Atoi(raw.ID)
		productID, _ := strconv.Atoi(raw.ProductID)

		cleaned = append(cleaned, model.Movement{
			ID:            id,
			Date:          date,
			ProductID:     productID,
			ProductName:   names[productID], // empty when the join misses
			OperationType: opType,
			Amount:        amount,
			Currency:      currency,
			Counterparty:  raw.Counterparty,
			Description:   raw.Description,
			NetAmount:     model.SignedAmount(opType, amount),
			Month:         model.MonthBucket(date),
		})
	}

	report.Kept = len(cleaned)
	report.Removed = report.Loaded - report.Kept
	return cleaned, report
}
