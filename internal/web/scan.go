package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"shramba/internal/barcode"
	"shramba/internal/model"
	"shramba/internal/store"
)

// ScanPage handles GET /scan. With a ?barcode= parameter (from a decoded
// photo or manual entry) it looks the product up and prefills the add form;
// a failed or missed lookup degrades to manual metadata entry.
func (s *Server) ScanPage(w http.ResponseWriter, r *http.Request) {
	page := PageData{Title: "Skeniranje", LoggedIn: true}

	switch r.URL.Query().Get("error") {
	case "nobarcode":
		page.Error = "Na fotografiji ni bilo najdene črtne kode. Poskusite znova ali vnesite kodo ročno."
	case "badimage":
		page.Error = "Fotografije ni bilo mogoče prebrati (podprta sta JPEG in PNG)."
	}

	data := &struct {
		PageData
		Barcode    string
		Product    *model.Product
		LookupMiss bool
		Existing   *model.Item
	}{PageData: page}

	if code := r.URL.Query().Get("barcode"); code != "" {
		data.Barcode = code

		// An already-tracked barcode short-circuits to its detail page data.
		existing, err := store.GetItem(r.Context(), s.DB, code)
		if err != nil {
			slog.Error("failed to check existing item", "error", err)
		}
		data.Existing = existing

		if existing == nil {
			product, err := s.Lookup.Lookup(r.Context(), code)
			if err != nil {
				// Non-fatal: fall back to manual entry.
				slog.Warn("product lookup failed", "error", err, "barcode", code)
			}
			data.Product = product
			data.LookupMiss = product == nil
		}
	}

	s.Templates.Render(w, "scan.html", data)
}

// ScanDecodeSubmit handles POST /scan/decode: decodes a barcode from an
// uploaded photo and redirects back to the scan page with the result.
func (s *Server) ScanDecodeSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	code, err := barcode.DecodeUpload(file)
	switch {
	case errors.Is(err, barcode.ErrNoBarcode):
		http.Redirect(w, r, "/scan?error=nobarcode", http.StatusSeeOther)
		return
	case err != nil:
		slog.Warn("failed to decode uploaded photo", "error", err)
		http.Redirect(w, r, "/scan?error=badimage", http.StatusSeeOther)
		return
	}

	slog.Info("barcode decoded", "barcode", code)
	http.Redirect(w, r, fmt.Sprintf("/scan?barcode=%s", url.QueryEscape(code)), http.StatusSeeOther)
}

// LookupJSON handles GET /lookup?barcode=. It backs the in-page refresh of
// product metadata when a barcode is typed manually.
func (s *Server) LookupJSON(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("barcode")
	if code == "" {
		jsonError(w, http.StatusBadRequest, "barcode required")
		return
	}

	product, err := s.Lookup.Lookup(r.Context(), code)
	if err != nil {
		// Treated as "not found": the form stays on manual entry.
		slog.Warn("product lookup failed", "error", err, "barcode", code)
	}
	if product == nil {
		jsonResponse(w, http.StatusOK, map[string]any{"found": false})
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"found":   true,
		"product": product,
	})
}
