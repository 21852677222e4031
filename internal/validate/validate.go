package validate

import (
	"strings"

	"github.com/salescope-dev/salescope/internal/model"
)

// Required ID prefixes for a valid record.
const (
	txnIDPrefix      = "T"
	productIDPrefix  = "P"
	customerIDPrefix = "C"
)

// Summary reports what happened to a batch during validation and filtering.
// TotalInput = Invalid + FilteredOut + FinalCount always holds.
type Summary struct {
	TotalInput  int
	Invalid     int
	FilteredOut int
	FinalCount  int
}

// Apply runs the validity rules and then the optional filters over txns in
// a single ordered pass. Invalid records never reach the filter stage.
// An empty result is not an error; the caller decides whether to halt.
func Apply(txns []model.Transaction, criteria model.FilterCriteria) ([]model.ValidatedTransaction, Summary) {
	var valid []model.ValidatedTransaction
	sum := Summary{TotalInput: len(txns)}

	for _, t := range txns {
		if !isValid(t) {
			sum.Invalid++
			continue
		}
		vt := model.ValidatedTransaction{Transaction: t}
		if !matchesFilter(vt, criteria) {
			sum.FilteredOut++
			continue
		}
		valid = append(valid, vt)
	}

	sum.FinalCount = len(valid)
	return valid, sum
}

func isValid(t model.Transaction) bool {
	return t.Quantity > 0 &&
		t.UnitPrice.IsPositive() &&
		strings.HasPrefix(t.TransactionID, txnIDPrefix) &&
		strings.HasPrefix(t.ProductID, productIDPrefix) &&
		strings.HasPrefix(t.CustomerID, customerIDPrefix)
}

func matchesFilter(t model.ValidatedTransaction, criteria model.FilterCriteria) bool {
	if criteria.Region != "" && t.Region != criteria.Region {
		return false
	}
	amount := t.LineAmount()
	if criteria.MinAmount != nil && amount.LessThan(*criteria.MinAmount) {
		return false
	}
	if criteria.MaxAmount != nil && amount.GreaterThan(*criteria.MaxAmount) {
		return false
	}
	return true
}
