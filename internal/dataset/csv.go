package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/treso-dev/treso/internal/model"
)

// MovementHeader is the CSV header for movements.csv.
const MovementHeader = "id,date,product_id,operation_type,amount,currency,counterparty,description"

// ProductHeader is the CSV header for products.csv.
const ProductHeader = "product_id,product_name"

const (
	movementFields = 8
	dateFormat     = "2006-01-02"
	colID          = 0
	colDate        = 1
	colProductID   = 2
	colOpType      = 3
	colAmount      = 4
	colCurrency    = 5
	colCparty      = 6
	colDesc        = 7

	productFields = 2
	colProdID     = 0
	colProdName   = 1
)

// RawMovement is one movements.csv row before cleaning. Every field stays a
// string so the cleaning stage, not the parser, decides which rows to drop.
type RawMovement struct {
	ID            string
	Date          string
	ProductID     string
	OperationType string
	Amount        string
	Currency      string
	Counterparty  string
	Description   string
}

// ReadRawMovements reads all movement rows from a movements.csv reader.
// Field values are not validated here; structural CSV errors are fatal.
func ReadRawMovements(r io.Reader) ([]RawMovement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = movementFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading movements CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	rows := make([]RawMovement, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, RawMovement{
			ID:            rec[colID],
			Date:          rec[colDate],
			ProductID:     rec[colProductID],
			OperationType: rec[colOpType],
			Amount:        rec[colAmount],
			Currency:      rec[colCurrency],
			Counterparty:  rec[colCparty],
			Description:   rec[colDesc],
		})
	}
	return rows, nil
}

// WriteMovements writes movements to a movements.csv writer (including
// header). Only the eight source columns are serialized; derived fields on
// Movement are computation artifacts and never hit disk.
func WriteMovements(w io.Writer, movements []model.Movement) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(MovementHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range movements {
		if err := cw.Write(MarshalMovement(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalMovement converts a Movement to a CSV row ([]string).
func MarshalMovement(m model.Movement) []string {
	row := make([]string, movementFields)
	row[colID] = strconv.Itoa(m.ID)
	row[colDate] = m.Date.Format(dateFormat)
	row[colProductID] = strconv.Itoa(m.ProductID)
	row[colOpType] = m.OperationType
	row[colAmount] = m.Amount.StringFixed(2)
	row[colCurrency] = m.Currency
	row[colCparty] = m.Counterparty
	row[colDesc] = m.Description
	return row
}

// ReadProducts reads the product lookup table. Unlike movements, products.csv
// is a generated catalog and a malformed row is a fatal input error.
func ReadProducts(r io.Reader) ([]model.Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = productFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading products CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var products []model.Product
	for i, rec := range records[1:] {
		id, err := strconv.Atoi(rec[colProdID])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing product_id %q: %w", i+2, rec[colProdID], err)
		}
		products = append(products, model.Product{ID: id, Name: rec[colProdName]})
	}
	return products, nil
}

// WriteProducts writes the product lookup table (including header).
func WriteProducts(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ProductHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range products {
		row := make([]string, productFields)
		row[colProdID] = strconv.Itoa(p.ID)
		row[colProdName] = p.Name
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
