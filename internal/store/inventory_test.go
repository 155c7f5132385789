package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"shramba/internal/db"
	"shramba/internal/model"
)

var milk = model.Product{Name: "Milk", Brand: "Alpsko", Category: "Dairy"}

func TestAddItemCreatesRow(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	qty, err := AddItem(ctx, database, "111", milk, 2, nil)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if qty != 2 {
		t.Errorf("expected quantity 2, got %d", qty)
	}

	item, err := GetItem(ctx, database, "111")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item == nil {
		t.Fatal("expected item row")
	}
	if item.ProductName != "Milk" || item.Brand != "Alpsko" || item.Category != "Dairy" {
		t.Errorf("unexpected metadata: %+v", item)
	}
	if item.Unit != model.DefaultUnit {
		t.Errorf("expected unit %q, got %q", model.DefaultUnit, item.Unit)
	}
	if item.LastUpdated.Before(item.DateAdded) {
		t.Errorf("last_updated %v before date_added %v", item.LastUpdated, item.DateAdded)
	}
}

func TestAddItemUpsertsAndDiscardsMetadata(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", milk, 2, nil)
	qty, err := AddItem(ctx, database, "111", model.Product{Name: "Other", Brand: "Nobody"}, 3, nil)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if qty != 5 {
		t.Errorf("expected quantity 5, got %d", qty)
	}

	item, _ := GetItem(ctx, database, "111")
	if item.ProductName != "Milk" {
		t.Errorf("metadata from second add should be discarded, got name %q", item.ProductName)
	}

	items, _ := ListItems(ctx, database)
	if len(items) != 1 {
		t.Errorf("expected exactly one row per barcode, got %d", len(items))
	}
}

func TestAddItemKeepsExpiry(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	expiry := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	AddItem(ctx, database, "111", milk, 1, &expiry)

	// Re-add with a different expiry; the original is kept.
	later := expiry.AddDate(0, 1, 0)
	AddItem(ctx, database, "111", milk, 1, &later)

	item, _ := GetItem(ctx, database, "111")
	if item.ExpiryDate == nil || !item.ExpiryDate.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, item.ExpiryDate)
	}
}

func TestUseItemClampsAtZero(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", milk, 2, nil)

	remaining, nowOut, err := UseItem(ctx, database, "111", 5)
	if err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected quantity clamped to 0, got %d", remaining)
	}
	if !nowOut {
		t.Error("expected out-of-stock transition to be reported")
	}
}

func TestUseItemReportsTransitionOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", milk, 1, nil)

	_, nowOut, _ := UseItem(ctx, database, "111", 1)
	if !nowOut {
		t.Error("first depletion should report the transition")
	}

	// Already at zero: silent no-op besides the timestamp refresh.
	remaining, nowOut, err := UseItem(ctx, database, "111", 1)
	if err != nil {
		t.Fatalf("UseItem on empty row: %v", err)
	}
	if remaining != 0 || nowOut {
		t.Errorf("expected (0, false), got (%d, %v)", remaining, nowOut)
	}
}

func TestUseItemPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", milk, 5, nil)

	remaining, nowOut, err := UseItem(ctx, database, "111", 2)
	if err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	if remaining != 3 {
		t.Errorf("expected 3 remaining, got %d", remaining)
	}
	if nowOut {
		t.Error("item is still in stock, no transition expected")
	}
}

func TestUseItemUnknownBarcode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", milk, 2, nil)

	_, _, err := UseItem(ctx, database, "999", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Table unchanged.
	item, _ := GetItem(ctx, database, "111")
	if item.Quantity != 2 {
		t.Errorf("expected untouched quantity 2, got %d", item.Quantity)
	}
	if item, _ := GetItem(ctx, database, "999"); item != nil {
		t.Error("no row should have been created for the unknown barcode")
	}
}

func TestUseItemOnEmptyTable(t *testing.T) {
	database := db.NewTestDB(t)

	_, _, err := UseItem(context.Background(), database, "999", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListItemsOrderedByLastUpdated(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", model.Product{Name: "Milk"}, 1, nil)
	AddItem(ctx, database, "222", model.Product{Name: "Bread"}, 1, nil)
	AddItem(ctx, database, "333", model.Product{Name: "Eggs"}, 1, nil)

	items, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Barcode != "333" {
		t.Errorf("expected most recent first, got %q", items[0].Barcode)
	}

	// Any mutation moves the row to the front.
	UseItem(ctx, database, "111", 1)
	items, _ = ListItems(ctx, database)
	if items[0].Barcode != "111" {
		t.Errorf("expected mutated row first, got %q", items[0].Barcode)
	}
}

func TestDepletedItemStaysListed(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddItem(ctx, database, "111", milk, 1, nil)
	UseItem(ctx, database, "111", 1)

	items, _ := ListItems(ctx, database)
	if len(items) != 1 {
		t.Fatalf("depleted item should stay as a zero-quantity row, got %d rows", len(items))
	}
	if items[0].Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", items[0].Quantity)
	}
}

// TestAddUseAddScenario covers: add 2, use 5 (clamp + transition), add 1.
func TestAddUseAddScenario(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	qty, _ := AddItem(ctx, database, "111", model.Product{Name: "Milk"}, 2, nil)
	if qty != 2 {
		t.Errorf("after add: expected 2, got %d", qty)
	}

	remaining, nowOut, _ := UseItem(ctx, database, "111", 5)
	if remaining != 0 || !nowOut {
		t.Errorf("after use: expected (0, true), got (%d, %v)", remaining, nowOut)
	}

	qty, _ = AddItem(ctx, database, "111", model.Product{Name: "Milk"}, 1, nil)
	if qty != 1 {
		t.Errorf("after re-add: expected 1, got %d", qty)
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing barcode, got %+v", item)
	}
}
