package web

import (
	"log/slog"
	"net/http"
	"time"

	"shramba/internal/model"
	"shramba/internal/store"
)

// StatsPage handles GET /stats.
func (s *Server) StatsPage(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to get stats", "error", err)
		stats = &model.Stats{}
	}

	lowStock, err := store.ListLowStock(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list low stock", "error", err)
	}

	items, err := store.ListItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list items for expiry alerts", "error", err)
	}
	expired, expiring := ExpiryAlerts(items, time.Now())

	s.Templates.Render(w, "stats.html", &struct {
		PageData
		Stats    *model.Stats
		LowStock []model.Item
		Expired  []ExpiryAlert
		Expiring []ExpiryAlert
	}{
		PageData: PageData{Title: "Statistika", LoggedIn: true},
		Stats:    stats,
		LowStock: lowStock,
		Expired:  expired,
		Expiring: expiring,
	})
}
