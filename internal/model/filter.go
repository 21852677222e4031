package model

import (
	"github.com/shopspring/decimal"
)

// FilterCriteria narrows validated transactions. An empty Region means no
// region filter. Nil amounts mean no bound, so an explicit zero bound is
// honored rather than being treated as unset.
type FilterCriteria struct {
	Region    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// IsZero reports whether no filter is set.
func (c FilterCriteria) IsZero() bool {
	return c.Region == "" && c.MinAmount == nil && c.MaxAmount == nil
}
