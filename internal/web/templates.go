package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"shramba/internal/lookup"
	webembed "shramba/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"fmtDate": func(t time.Time) string {
			return t.Format("02. 01. 2006")
		},
		"fmtDatePtr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("02. 01. 2006")
		},
		"fmtDateTime": func(t time.Time) string {
			return t.Local().Format("02. 01. 2006 15:04")
		},
		"daysUntil": func(t *time.Time) int {
			if t == nil {
				return 0
			}
			today := time.Now().UTC().Truncate(24 * time.Hour)
			return int(t.Truncate(24*time.Hour).Sub(today) / (24 * time.Hour))
		},
		"actionName": func(action string) string {
			switch action {
			case "add":
				return "Dodano"
			case "use":
				return "Porabljeno"
			default:
				return action
			}
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"inventory.html",
		"item_detail.html",
		"scan.html",
		"stats.html",
		"activity.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title    string
	LoggedIn bool
	Error    string
	Success  string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Templates *Templates
	JWTSecret string
	Lookup    *lookup.Client
}
