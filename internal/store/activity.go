package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shramba/internal/model"
)

// recordActivity appends one mutation record inside an open transaction.
func recordActivity(ctx context.Context, tx *sql.Tx, barcode, action string, quantity, remaining int, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO activity (barcode, action, quantity, remaining, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		barcode, action, quantity, remaining, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}
	return nil
}

// ListActivity returns the most recent mutations, newest first.
// A limit of 0 means no limit.
func ListActivity(ctx context.Context, db *sql.DB, limit int) ([]model.Activity, error) {
	query := `SELECT a.id, a.barcode, a.action, a.quantity, a.remaining, a.occurred_at,
	                 i.product_name
	          FROM activity a
	          JOIN inventory i ON i.barcode = a.barcode
	          ORDER BY a.occurred_at DESC, a.id DESC`
	var args []any

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	return scanActivity(rows)
}

// GetItemActivity returns the mutation history for one barcode, newest first.
func GetItemActivity(ctx context.Context, db *sql.DB, barcode string) ([]model.Activity, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT a.id, a.barcode, a.action, a.quantity, a.remaining, a.occurred_at,
		        i.product_name
		 FROM activity a
		 JOIN inventory i ON i.barcode = a.barcode
		 WHERE a.barcode = ?
		 ORDER BY a.occurred_at DESC, a.id DESC`, barcode,
	)
	if err != nil {
		return nil, fmt.Errorf("getting item activity: %w", err)
	}
	defer rows.Close()

	return scanActivity(rows)
}

func scanActivity(rows *sql.Rows) ([]model.Activity, error) {
	var entries []model.Activity
	for rows.Next() {
		var a model.Activity
		var occurredAt string
		if err := rows.Scan(&a.ID, &a.Barcode, &a.Action, &a.Quantity, &a.Remaining,
			&occurredAt, &a.ProductName); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		var err error
		if a.OccurredAt, err = parseTime(occurredAt); err != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
