package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// Client fetches product records from the remote catalog service.
type Client struct {
	baseURL string
	limit   int
	httpc   *http.Client
}

// NewClient creates a catalog Client with a bounded request timeout.
func NewClient(baseURL string, limit int, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type productsResponse struct {
	Products []productPayload `json:"products"`
}

type productPayload struct {
	ID       int              `json:"id"`
	Title    string           `json:"title"`
	Category string           `json:"category"`
	Brand    string           `json:"brand"`
	Rating   *decimal.Decimal `json:"rating"`
}

// FetchProducts retrieves up to the configured number of catalog products.
// Callers treat any error as "no catalog available" and continue without
// enrichment.
func (c *Client) FetchProducts(ctx context.Context) ([]model.CatalogProduct, error) {
	url := fmt.Sprintf("%s?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	products := make([]model.CatalogProduct, 0, len(payload.Products))
	for _, p := range payload.Products {
		products = append(products, model.CatalogProduct{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		})
	}
	return products, nil
}
