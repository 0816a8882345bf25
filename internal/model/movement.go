package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType classifies a treasury movement by cash direction.
type OperationType string

const (
	OpIncome  OperationType = "income"
	OpExpense OperationType = "expense"
)

// Currency codes handled by the desk.
const (
	CurrencyPEN = "PEN"
	CurrencyUSD = "USD"
)

// Product is one row of the static product lookup table.
type Product struct {
	ID   int
	Name string
}

// Movement is a cleaned treasury transaction, already joined with the
// product catalog and carrying the derived fields the aggregations need.
type Movement struct {
	ID            int
	Date          time.Time
	ProductID     int
	ProductName   string // empty when the product id has no catalog match
	OperationType string // normalized to lower case
	Amount        decimal.Decimal
	Currency      string // normalized to upper case
	Counterparty  string
	Description   string
	NetAmount     decimal.Decimal // +Amount for income, -Amount otherwise
	Month         string          // calendar month bucket, "2006-01"
}

// IsIncome reports whether the movement counts toward income totals.
func (m Movement) IsIncome() bool { return m.OperationType == string(OpIncome) }

// IsExpense reports whether the movement counts toward expense totals.
func (m Movement) IsExpense() bool { return m.OperationType == string(OpExpense) }

// MonthBucket formats a date as the calendar-month grouping key.
func MonthBucket(d time.Time) string { return d.Format("2006-01") }

// SignedAmount returns the net contribution of an amount given its
// normalized operation type: income adds, everything else subtracts.
func SignedAmount(opType string, amount decimal.Decimal) decimal.Decimal {
	if opType == string(OpIncome) {
		return amount
	}
	return amount.Neg()
}
