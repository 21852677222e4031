package catalog

import (
	"strconv"
	"strings"

	"github.com/salescope-dev/salescope/internal/model"
)

// productIDPrefix is stripped (case-insensitively) from a ProductID to
// derive the numeric catalog key, e.g. "P101" -> 101.
const productIDPrefix = "P"

// BuildMapping indexes catalog products by numeric ID. When the catalog
// contains duplicate IDs, the later entry overwrites the earlier one.
func BuildMapping(products []model.CatalogProduct) map[int]model.CatalogProduct {
	mapping := make(map[int]model.CatalogProduct, len(products))
	for _, p := range products {
		mapping[p.ID] = p
	}
	return mapping
}

// Enrich attaches catalog attributes to each transaction. Exactly one
// EnrichedTransaction is produced per input, in input order; a transaction
// whose ProductID yields no usable key, or whose key is absent from the
// mapping, is emitted unmatched rather than aborting the batch.
func Enrich(txns []model.ValidatedTransaction, mapping map[int]model.CatalogProduct) []model.EnrichedTransaction {
	enriched := make([]model.EnrichedTransaction, 0, len(txns))
	for _, t := range txns {
		e := model.EnrichedTransaction{ValidatedTransaction: t}
		if key, ok := ProductKey(t.ProductID); ok {
			if p, found := mapping[key]; found {
				category, brand := p.Category, p.Brand
				e.APICategory = &category
				e.APIBrand = &brand
				if p.Rating != nil {
					rating := *p.Rating
					e.APIRating = &rating
				}
				e.APIMatch = true
			}
		}
		enriched = append(enriched, e)
	}
	return enriched
}

// ProductKey derives the numeric catalog key from a ProductID like "P101"
// or "p101". The second return is false when the remainder after the
// prefix is not an integer.
func ProductKey(productID string) (int, bool) {
	rest := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(productID)), productIDPrefix)
	key, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return key, true
}
