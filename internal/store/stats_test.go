package store

import (
	"context"
	"testing"

	"shramba/internal/db"
	"shramba/internal/model"
)

func TestGetStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", model.Product{Name: "Milk", Category: "Dairy"}, 5, nil)
	AddItem(ctx, database, "222", model.Product{Name: "Yoghurt", Category: "Dairy"}, 2, nil)
	AddItem(ctx, database, "333", model.Product{Name: "Bread", Category: "Bakery"}, 1, nil)
	UseItem(ctx, database, "333", 1)

	stats, err := GetStats(ctx, database)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", stats.TotalItems)
	}
	if stats.TotalUnits != 7 {
		t.Errorf("expected 7 units, got %d", stats.TotalUnits)
	}
	if stats.LowStock != 1 {
		t.Errorf("expected 1 low-stock item, got %d", stats.LowStock)
	}
	if stats.OutOfStock != 1 {
		t.Errorf("expected 1 out-of-stock item, got %d", stats.OutOfStock)
	}

	if len(stats.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats.Categories))
	}
	if stats.Categories[0].Category != "Dairy" || stats.Categories[0].Count != 2 {
		t.Errorf("expected Dairy x2 first, got %+v", stats.Categories[0])
	}
}

func TestGetStatsEmptyTable(t *testing.T) {
	database := db.NewTestDB(t)

	stats, err := GetStats(context.Background(), database)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalItems != 0 || stats.TotalUnits != 0 || len(stats.Categories) != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}

func TestGetStatsUncategorized(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", model.Product{Name: "Mystery"}, 1, nil)

	stats, _ := GetStats(ctx, database)
	if len(stats.Categories) != 1 || stats.Categories[0].Category != "Uncategorized" {
		t.Errorf("expected Uncategorized bucket, got %+v", stats.Categories)
	}
}

func TestListLowStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", model.Product{Name: "Milk"}, 5, nil)
	AddItem(ctx, database, "222", model.Product{Name: "Bread"}, 2, nil)
	AddItem(ctx, database, "333", model.Product{Name: "Eggs"}, 1, nil)
	UseItem(ctx, database, "333", 1)

	items, err := ListLowStock(ctx, database)
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 low-stock items, got %d", len(items))
	}
	if items[0].Barcode != "333" || items[0].Quantity != 0 {
		t.Errorf("expected depleted item first, got %+v", items[0])
	}
}
