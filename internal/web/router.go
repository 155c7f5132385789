package web

import (
	"database/sql"
	"net/http"

	"shramba/internal/lookup"
	webembed "shramba/web"
)

// NewRouter creates the web router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, lookupClient *lookup.Client) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
		Lookup:    lookupClient,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.InventoryPage)))

	mux.Handle("POST /items", cookieAuth(http.HandlerFunc(s.AddSubmit)))
	mux.Handle("GET /items/{barcode}", cookieAuth(http.HandlerFunc(s.ItemDetailPage)))
	mux.Handle("POST /items/{barcode}/use", cookieAuth(http.HandlerFunc(s.UseSubmit)))

	mux.Handle("GET /scan", cookieAuth(http.HandlerFunc(s.ScanPage)))
	mux.Handle("POST /scan/decode", cookieAuth(http.HandlerFunc(s.ScanDecodeSubmit)))
	mux.Handle("GET /lookup", cookieAuth(http.HandlerFunc(s.LookupJSON)))

	mux.Handle("GET /stats", cookieAuth(http.HandlerFunc(s.StatsPage)))
	mux.Handle("GET /activity", cookieAuth(http.HandlerFunc(s.ActivityPage)))

	return mux, nil
}
