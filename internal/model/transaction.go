package model

import (
	"github.com/shopspring/decimal"
)

// Transaction represents a parsed sales record. Parsing alone does not
// establish validity; only internal/validate produces ValidatedTransactions.
type Transaction struct {
	TransactionID string
	Date          string // calendar date, used only for grouping and ordering
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	CustomerID    string
	Region        string
}

// LineAmount returns Quantity * UnitPrice. It is always derived on demand,
// never stored.
func (t Transaction) LineAmount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// ValidatedTransaction is a Transaction known to satisfy all validity rules:
// positive quantity and unit price, and the T/P/C ID prefixes.
type ValidatedTransaction struct {
	Transaction
}

// EnrichedTransaction is a ValidatedTransaction with catalog attributes
// attached. It is created once at enrichment time and never mutated; nil
// API fields mean no catalog match.
type EnrichedTransaction struct {
	ValidatedTransaction
	APICategory *string
	APIBrand    *string
	APIRating   *decimal.Decimal
	APIMatch    bool
}
