package web

import (
	"log/slog"
	"net/http"

	"shramba/internal/model"
	"shramba/internal/store"
)

// recentActivityLimit bounds the activity feed page.
const recentActivityLimit = 50

// ActivityPage handles GET /activity.
func (s *Server) ActivityPage(w http.ResponseWriter, r *http.Request) {
	entries, err := store.ListActivity(r.Context(), s.DB, recentActivityLimit)
	if err != nil {
		slog.Error("failed to list activity", "error", err)
	}

	s.Templates.Render(w, "activity.html", &struct {
		PageData
		Entries []model.Activity
	}{
		PageData: PageData{Title: "Dnevnik", LoggedIn: true},
		Entries:  entries,
	})
}
