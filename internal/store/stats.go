package store

import (
	"context"
	"database/sql"
	"fmt"

	"shramba/internal/model"
)

// GetStats returns the aggregate inventory overview.
func GetStats(ctx context.Context, db *sql.DB) (*model.Stats, error) {
	stats := &model.Stats{}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(quantity), 0),
		        COALESCE(SUM(quantity > 0 AND quantity <= ?), 0),
		        COALESCE(SUM(quantity = 0), 0)
		 FROM inventory`, model.LowStockThreshold,
	).Scan(&stats.TotalItems, &stats.TotalUnits, &stats.LowStock, &stats.OutOfStock)
	if err != nil {
		return nil, fmt.Errorf("getting inventory totals: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT COALESCE(NULLIF(category, ''), 'Uncategorized'), COUNT(*)
		 FROM inventory
		 GROUP BY 1
		 ORDER BY COUNT(*) DESC, 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("getting category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		stats.Categories = append(stats.Categories, c)
	}
	return stats, rows.Err()
}

// ListLowStock returns items at or below the low-stock threshold,
// out-of-stock rows included, lowest quantity first.
func ListLowStock(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, barcode, product_name, brand, category, image_url, unit,
		        quantity, expiry_date, date_added, last_updated
		 FROM inventory
		 WHERE quantity <= ?
		 ORDER BY quantity, product_name`, model.LowStockThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("listing low stock: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
