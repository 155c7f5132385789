// Package lookup queries the Open Food Facts product database by barcode.
//
// Lookup failure of any kind is non-fatal for callers: the add form falls
// back to manual metadata entry.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shramba/internal/model"
)

// DefaultBaseURL is the public Open Food Facts endpoint.
const DefaultBaseURL = "https://world.openfoodfacts.org"

// DefaultTimeout bounds a single lookup. No retries.
const DefaultTimeout = 5 * time.Second

// Client wraps access to the product database.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// productResponse mirrors the relevant slice of the remote JSON.
type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		ImageURL    string `json:"image_url"`
		Categories  string `json:"categories"`
	} `json:"product"`
}

// Lookup fetches product metadata for a barcode. Returns (nil, nil) when the
// database has no match; any transport, status, or decode problem is an error.
func (c *Client) Lookup(ctx context.Context, barcode string) (*model.Product, error) {
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying product database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product database returned status %d", resp.StatusCode)
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decoding product response: %w", err)
	}

	if pr.Status != 1 {
		return nil, nil
	}

	return normalize(pr), nil
}

// normalize maps the remote record onto the fixed Product shape, filling
// missing fields with placeholders so callers never see empty metadata.
func normalize(pr productResponse) *model.Product {
	p := &model.Product{
		Name:     pr.Product.ProductName,
		Brand:    pr.Product.Brands,
		ImageURL: pr.Product.ImageURL,
		Category: pr.Product.Categories,
	}
	if p.Name == "" {
		p.Name = model.UnknownProduct
	}
	if p.Brand == "" {
		p.Brand = model.UnknownBrand
	}
	if p.Category == "" {
		p.Category = model.UnknownCategory
	}
	return p
}
