package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shramba/internal/model"
	"shramba/internal/store"
)

// InventoryPage handles GET /.
func (s *Server) InventoryPage(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list inventory", "error", err)
	}
	stats, err := store.GetStats(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to get inventory stats", "error", err)
		stats = &model.Stats{}
	}

	opts := ListOptions{
		Category:  r.URL.Query().Get("category"),
		ShowEmpty: r.URL.Query().Get("show_empty") == "1",
		SortBy:    r.URL.Query().Get("sort"),
	}

	s.Templates.Render(w, "inventory.html", &struct {
		PageData
		Items      []model.Item
		Categories []string
		Stats      *model.Stats
		Filters    ListOptions
	}{
		PageData:   PageData{Title: "Zaloga", LoggedIn: true},
		Items:      ApplyListOptions(items, opts),
		Categories: Categories(items),
		Stats:      stats,
		Filters:    opts,
	})
}

// ItemDetailPage handles GET /items/{barcode}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")

	item, err := store.GetItem(r.Context(), s.DB, barcode)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	history, err := store.GetItemActivity(r.Context(), s.DB, barcode)
	if err != nil {
		slog.Error("failed to get item history", "error", err)
	}

	page := PageData{Title: item.ProductName, LoggedIn: true}
	q := r.URL.Query()
	if added := q.Get("added"); added != "" {
		page.Success = fmt.Sprintf("Dodano: %s. Nova zaloga: %d.", added, item.Quantity)
	}
	if used := q.Get("used"); used != "" {
		page.Success = fmt.Sprintf("Porabljeno: %s. Preostane: %d.", used, item.Quantity)
	}
	if q.Get("out") == "1" {
		page.Error = fmt.Sprintf("%s je zmanjkalo!", item.ProductName)
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item    *model.Item
		History []model.Activity
	}{
		PageData: page,
		Item:     item,
		History:  history,
	})
}

// AddSubmit handles POST /items. This is the form boundary, so quantity is
// constrained to >= 1 here, not in the store.
func (s *Server) AddSubmit(w http.ResponseWriter, r *http.Request) {
	barcode := r.FormValue("barcode")
	name := r.FormValue("name")
	if barcode == "" || name == "" {
		http.Redirect(w, r, "/scan", http.StatusSeeOther)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	category := r.FormValue("category")
	if category == "" {
		category = model.ManualCategory
	}

	product := model.Product{
		Name:     name,
		Brand:    r.FormValue("brand"),
		Category: category,
		ImageURL: r.FormValue("image_url"),
	}

	var expiry *time.Time
	if raw := r.FormValue("expiry"); raw != "" {
		if d, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
			expiry = &d
		}
	}

	if _, err := store.AddItem(r.Context(), s.DB, barcode, product, quantity, expiry); err != nil {
		slog.Error("failed to add item", "error", err, "barcode", barcode)
		http.Error(w, "failed to add item", http.StatusInternalServerError)
		return
	}

	slog.Info("item added", "barcode", barcode, "name", name, "quantity", quantity)
	http.Redirect(w, r,
		fmt.Sprintf("/items/%s?added=%d", url.PathEscape(barcode), quantity),
		http.StatusSeeOther)
}

// UseSubmit handles POST /items/{barcode}/use.
func (s *Server) UseSubmit(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	remaining, nowOut, err := store.UseItem(r.Context(), s.DB, barcode, quantity)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to use item", "error", err, "barcode", barcode)
		http.Error(w, "failed to use item", http.StatusInternalServerError)
		return
	}

	slog.Info("item used", "barcode", barcode, "quantity", quantity, "remaining", remaining)

	target := fmt.Sprintf("/items/%s?used=%d", url.PathEscape(barcode), quantity)
	if nowOut {
		target += "&out=1"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
