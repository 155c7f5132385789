package model

import "time"

// Item represents one pantry product, keyed by barcode.
type Item struct {
	ID          int64      `json:"id"`
	Barcode     string     `json:"barcode"`
	ProductName string     `json:"product_name"`
	Brand       string     `json:"brand,omitempty"`
	Category    string     `json:"category,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Unit        string     `json:"unit"`
	Quantity    int        `json:"quantity"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	DateAdded   time.Time  `json:"date_added"`
	LastUpdated time.Time  `json:"last_updated"`
}

// LowStockThreshold is the quantity at or below which an item counts as low stock.
const LowStockThreshold = 2

// DefaultUnit is the unit recorded when the form leaves it empty.
const DefaultUnit = "item"

// OutOfStock reports whether the item is depleted.
func (i *Item) OutOfStock() bool {
	return i.Quantity == 0
}

// LowStock reports whether the item is in stock but running low.
func (i *Item) LowStock() bool {
	return i.Quantity > 0 && i.Quantity <= LowStockThreshold
}

// DaysToExpiry returns the number of whole days until the item expires,
// negative if already expired. The second return is false when the item
// has no expiry date.
func (i *Item) DaysToExpiry(now time.Time) (int, bool) {
	if i.ExpiryDate == nil {
		return 0, false
	}
	expiry := i.ExpiryDate.Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	return int(expiry.Sub(today) / (24 * time.Hour)), true
}
