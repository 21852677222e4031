package parser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// Delimiter separates fields in raw sales data lines.
const Delimiter = "|"

const (
	numFields   = 8
	colTxnID    = 0
	colDate     = 1
	colProdID   = 2
	colProdName = 3
	colQty      = 4
	colPrice    = 5
	colCustID   = 6
	colRegion   = 7
)

// Parse converts raw pipe-delimited lines into Transactions, preserving
// input order. Lines with the wrong field count or a non-numeric
// quantity/price are dropped silently; a fully malformed input yields an
// empty result, never an error.
func Parse(lines []string) []model.Transaction {
	var txns []model.Transaction
	for _, line := range lines {
		txn, ok := parseLine(line)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

func parseLine(line string) (model.Transaction, bool) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != numFields {
		return model.Transaction{}, false
	}

	qty, err := strconv.Atoi(stripGrouping(fields[colQty]))
	if err != nil {
		return model.Transaction{}, false
	}

	price, err := decimal.NewFromString(stripGrouping(fields[colPrice]))
	if err != nil {
		return model.Transaction{}, false
	}

	return model.Transaction{
		TransactionID: strings.TrimSpace(fields[colTxnID]),
		Date:          strings.TrimSpace(fields[colDate]),
		ProductID:     strings.TrimSpace(fields[colProdID]),
		ProductName:   cleanProductName(fields[colProdName]),
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    strings.TrimSpace(fields[colCustID]),
		Region:        strings.TrimSpace(fields[colRegion]),
	}, true
}

// stripGrouping removes thousands separators before numeric conversion.
func stripGrouping(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// cleanProductName normalizes delimiter characters to spaces so the name
// survives a delimited round trip.
func cleanProductName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", " "))
}
