package model

import (
	"github.com/shopspring/decimal"
)

// CatalogProduct is one record from the external product catalog service.
type CatalogProduct struct {
	ID       int
	Title    string
	Category string
	Brand    string
	Rating   *decimal.Decimal // nil when the catalog has no rating
}
