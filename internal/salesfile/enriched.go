package salesfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// Header is the field header for enriched sales data files, in the order
// EnrichedTransaction fields are constructed.
const Header = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"

const (
	delimiter   = "|"
	numFields   = 12
	colTxnID    = 0
	colDate     = 1
	colProdID   = 2
	colProdName = 3
	colQty      = 4
	colPrice    = 5
	colCustID   = 6
	colRegion   = 7
	colCategory = 8
	colBrand    = 9
	colRating   = 10
	colMatch    = 11
)

// WriteEnriched writes enriched transactions as pipe-delimited text,
// header included. Nil API fields render as empty strings.
func WriteEnriched(w io.Writer, txns []model.EnrichedTransaction) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if _, err := fmt.Fprintln(bw, strings.Join(MarshalEnriched(t), delimiter)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return bw.Flush()
}

// SaveEnriched writes enriched transactions to path, creating the parent
// directory if needed.
func SaveEnriched(path string, txns []model.EnrichedTransaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteEnriched(f, txns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// ReadEnriched reads a pipe-delimited enriched data stream written by
// WriteEnriched, skipping the header line.
func ReadEnriched(r io.Reader) ([]model.EnrichedTransaction, error) {
	scanner := bufio.NewScanner(r)

	var txns []model.EnrichedTransaction
	row := 0
	for scanner.Scan() {
		row++
		if row == 1 {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := UnmarshalEnriched(strings.Split(line, delimiter))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		txns = append(txns, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading enriched data: %w", err)
	}
	return txns, nil
}

// MarshalEnriched converts an EnrichedTransaction to a pipe-delimited row.
func MarshalEnriched(t model.EnrichedTransaction) []string {
	row := make([]string, numFields)
	row[colTxnID] = t.TransactionID
	row[colDate] = t.Date
	row[colProdID] = t.ProductID
	row[colProdName] = t.ProductName
	row[colQty] = strconv.Itoa(t.Quantity)
	row[colPrice] = t.UnitPrice.StringFixed(2)
	row[colCustID] = t.CustomerID
	row[colRegion] = t.Region

	if t.APICategory != nil {
		row[colCategory] = *t.APICategory
	}
	if t.APIBrand != nil {
		row[colBrand] = *t.APIBrand
	}
	if t.APIRating != nil {
		row[colRating] = t.APIRating.String()
	}
	row[colMatch] = strconv.FormatBool(t.APIMatch)

	return row
}

// UnmarshalEnriched converts a pipe-delimited row to an EnrichedTransaction.
func UnmarshalEnriched(record []string) (model.EnrichedTransaction, error) {
	if len(record) != numFields {
		return model.EnrichedTransaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	qty, err := strconv.Atoi(record[colQty])
	if err != nil {
		return model.EnrichedTransaction{}, fmt.Errorf("parsing quantity %q: %w", record[colQty], err)
	}

	price, err := decimal.NewFromString(record[colPrice])
	if err != nil {
		return model.EnrichedTransaction{}, fmt.Errorf("parsing unit price %q: %w", record[colPrice], err)
	}

	match, err := strconv.ParseBool(record[colMatch])
	if err != nil {
		return model.EnrichedTransaction{}, fmt.Errorf("parsing match flag %q: %w", record[colMatch], err)
	}

	t := model.EnrichedTransaction{
		ValidatedTransaction: model.ValidatedTransaction{Transaction: model.Transaction{
			TransactionID: record[colTxnID],
			Date:          record[colDate],
			ProductID:     record[colProdID],
			ProductName:   record[colProdName],
			Quantity:      qty,
			UnitPrice:     price,
			CustomerID:    record[colCustID],
			Region:        record[colRegion],
		}},
		APIMatch: match,
	}

	if record[colCategory] != "" {
		category := record[colCategory]
		t.APICategory = &category
	}
	if record[colBrand] != "" {
		brand := record[colBrand]
		t.APIBrand = &brand
	}
	if record[colRating] != "" {
		rating, err := decimal.NewFromString(record[colRating])
		if err != nil {
			return model.EnrichedTransaction{}, fmt.Errorf("parsing rating %q: %w", record[colRating], err)
		}
		t.APIRating = &rating
	}

	return t, nil
}
