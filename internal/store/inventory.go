package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shramba/internal/model"
)

// ErrNotFound is returned by UseItem when no row exists for the barcode.
var ErrNotFound = errors.New("item not found")

// Timestamp layouts. Both sort lexicographically in chronological order,
// which the last_updated index relies on.
const (
	timeLayout = "2006-01-02 15:04:05.999999999"
	dateLayout = "2006-01-02"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(timeLayout, s, time.UTC)
}

// AddItem adds quantity of an item, inserting the row on first sight of the
// barcode. For an existing row the new metadata and expiry are discarded and
// only quantity and last_updated change. Returns the resulting quantity.
//
// Quantity is not validated here; the form layer constrains input to >= 1.
func AddItem(ctx context.Context, db *sql.DB, barcode string, product model.Product, quantity int, expiry *time.Time) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM inventory WHERE barcode = ?`, barcode,
	).Scan(&current)

	var newQuantity int
	switch {
	case err == sql.ErrNoRows:
		newQuantity = quantity
		var expiryStr any
		if expiry != nil {
			expiryStr = expiry.UTC().Format(dateLayout)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory
			     (barcode, product_name, brand, category, image_url, unit,
			      quantity, expiry_date, date_added, last_updated)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			barcode, product.Name, product.Brand, product.Category, product.ImageURL,
			model.DefaultUnit, quantity, expiryStr, formatTime(now), formatTime(now),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting item: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("checking existing item: %w", err)
	default:
		newQuantity = current + quantity
		_, err = tx.ExecContext(ctx,
			`UPDATE inventory SET quantity = ?, last_updated = ? WHERE barcode = ?`,
			newQuantity, formatTime(now), barcode,
		)
		if err != nil {
			return 0, fmt.Errorf("updating quantity: %w", err)
		}
	}

	if quantity > 0 {
		if err := recordActivity(ctx, tx, barcode, model.ActionAdd, quantity, newQuantity, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing add: %w", err)
	}
	return newQuantity, nil
}

// UseItem consumes up to quantity of an item. The stored quantity is clamped
// at zero rather than going negative: a Use larger than the stock consumes
// whatever is available. Returns the remaining quantity and whether this call
// made the item newly out of stock (>0 to 0 transition).
//
// Returns ErrNotFound, leaving the table unchanged, when the barcode has no row.
func UseItem(ctx context.Context, db *sql.DB, barcode string, quantity int) (int, bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM inventory WHERE barcode = ?`, barcode,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return 0, false, ErrNotFound
	}
	if err != nil {
		return 0, false, fmt.Errorf("checking existing item: %w", err)
	}

	remaining := current - quantity
	if remaining < 0 {
		remaining = 0
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE inventory SET quantity = ?, last_updated = ? WHERE barcode = ?`,
		remaining, formatTime(now), barcode,
	)
	if err != nil {
		return 0, false, fmt.Errorf("updating quantity: %w", err)
	}

	// Log the amount actually consumed. A use against an already-empty row
	// refreshes last_updated but records nothing.
	if used := current - remaining; used > 0 {
		if err := recordActivity(ctx, tx, barcode, model.ActionUse, used, remaining, now); err != nil {
			return 0, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("committing use: %w", err)
	}
	return remaining, current > 0 && remaining == 0, nil
}

// GetItem returns an item by barcode, or nil if no row exists.
func GetItem(ctx context.Context, db *sql.DB, barcode string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, barcode, product_name, brand, category, image_url, unit,
		        quantity, expiry_date, date_added, last_updated
		 FROM inventory WHERE barcode = ?`, barcode,
	)
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, most recently touched first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, barcode, product_name, brand, category, image_url, unit,
		        quantity, expiry_date, date_added, last_updated
		 FROM inventory ORDER BY last_updated DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
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

// scanItem scans one inventory row via the given Scan function.
func scanItem(scan func(...any) error) (*model.Item, error) {
	item := &model.Item{}
	var brand, category, imageURL, expiry sql.NullString
	var dateAdded, lastUpdated string

	err := scan(&item.ID, &item.Barcode, &item.ProductName, &brand, &category,
		&imageURL, &item.Unit, &item.Quantity, &expiry, &dateAdded, &lastUpdated)
	if err != nil {
		return nil, err
	}

	item.Brand = brand.String
	item.Category = category.String
	item.ImageURL = imageURL.String

	if expiry.Valid {
		d, err := time.ParseInLocation(dateLayout, expiry.String, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing expiry date: %w", err)
		}
		item.ExpiryDate = &d
	}
	if item.DateAdded, err = parseTime(dateAdded); err != nil {
		return nil, fmt.Errorf("parsing date_added: %w", err)
	}
	if item.LastUpdated, err = parseTime(lastUpdated); err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}
	return item, nil
}
