package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"shramba/internal/db"
	"shramba/internal/lookup"
	"shramba/internal/store"
)

const testPassphrase = "correct horse battery staple"

// newTestApp spins up the full router backed by an in-memory database and a
// stubbed product lookup service.
func newTestApp(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassphrase), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing test passphrase: %v", err)
	}
	if err := store.SetPassphraseHash(ctx, database, string(hash)); err != nil {
		t.Fatalf("storing test passphrase: %v", err)
	}

	secret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("getting jwt secret: %v", err)
	}

	off := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "3017620422003") {
			fmt.Fprint(w, `{"status":1,"product":{"product_name":"Nutella","brands":"Ferrero","categories":"Spreads"}}`)
			return
		}
		fmt.Fprint(w, `{"status":0}`)
	}))
	t.Cleanup(off.Close)

	handler, err := NewRouter(database, secret, lookup.NewClient(off.URL))
	if err != nil {
		t.Fatalf("creating router: %v", err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	return srv, client
}

// login authenticates the client's cookie jar against the test server.
func login(t *testing.T, srv *httptest.Server, client *http.Client) {
	t.Helper()

	resp, err := client.PostForm(srv.URL+"/login", url.Values{"passphrase": {testPassphrase}})
	if err != nil {
		t.Fatalf("logging in: %v", err)
	}
	defer resp.Body.Close()

	if resp.Request.URL.Path != "/" {
		t.Fatalf("login landed on %q, want /", resp.Request.URL.Path)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return string(body)
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	srv, client := newTestApp(t)

	for _, path := range []string{"/", "/scan", "/stats", "/activity", "/items/123"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.Request.URL.Path != "/login" {
			t.Errorf("GET %s landed on %q, want /login", path, resp.Request.URL.Path)
		}
	}
}

func TestLoginWrongPassphrase(t *testing.T) {
	srv, client := newTestApp(t)

	resp, err := client.PostForm(srv.URL+"/login", url.Values{"passphrase": {"wrong"}})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	body := readBody(t, resp)

	if !strings.Contains(body, "Napačno geslo.") {
		t.Error("expected wrong-passphrase error on login page")
	}

	resp, err = client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	resp.Body.Close()
	if resp.Request.URL.Path != "/login" {
		t.Error("failed login should not grant a session")
	}
}

func TestAddAndUseFlow(t *testing.T) {
	srv, client := newTestApp(t)
	login(t, srv, client)

	// Add a new item via the form.
	resp, err := client.PostForm(srv.URL+"/items", url.Values{
		"barcode":  {"3017620422003"},
		"name":     {"Nutella"},
		"brand":    {"Ferrero"},
		"category": {"Spreads"},
		"quantity": {"2"},
	})
	if err != nil {
		t.Fatalf("POST /items: %v", err)
	}
	body := readBody(t, resp)

	if resp.Request.URL.Path != "/items/3017620422003" {
		t.Fatalf("add landed on %q, want the item detail page", resp.Request.URL.Path)
	}
	if !strings.Contains(body, "Nutella") || !strings.Contains(body, "Nova zaloga: 2") {
		t.Error("detail page missing added-item confirmation")
	}

	// Re-adding sums the quantity.
	resp, err = client.PostForm(srv.URL+"/items", url.Values{
		"barcode":  {"3017620422003"},
		"name":     {"Something Else"},
		"quantity": {"3"},
	})
	if err != nil {
		t.Fatalf("POST /items: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "Nova zaloga: 5") {
		t.Error("re-add should report the summed quantity")
	}
	if !strings.Contains(body, "Nutella") {
		t.Error("re-add should keep the original product name")
	}

	// Using more than available clamps at zero and warns.
	resp, err = client.PostForm(srv.URL+"/items/3017620422003/use", url.Values{
		"quantity": {"10"},
	})
	if err != nil {
		t.Fatalf("POST /items/{barcode}/use: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "Preostane: 0") {
		t.Error("clamped use should leave zero remaining")
	}
	if !strings.Contains(body, "je zmanjkalo") {
		t.Error("expected out-of-stock warning")
	}
}

func TestUseUnknownBarcode(t *testing.T) {
	srv, client := newTestApp(t)
	login(t, srv, client)

	resp, err := client.PostForm(srv.URL+"/items/0000000000000/use", url.Values{
		"quantity": {"1"},
	})
	if err != nil {
		t.Fatalf("POST /items/{barcode}/use: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestItemDetailNotFound(t *testing.T) {
	srv, client := newTestApp(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/items/9999999999999")
	if err != nil {
		t.Fatalf("GET /items/{barcode}: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestScanPagePrefillsFromLookup(t *testing.T) {
	srv, client := newTestApp(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/scan?barcode=3017620422003")
	if err != nil {
		t.Fatalf("GET /scan: %v", err)
	}
	body := readBody(t, resp)

	if !strings.Contains(body, "Nutella") || !strings.Contains(body, "Ferrero") {
		t.Error("scan page should prefill the add form from the lookup")
	}
}

func TestScanPageLookupMiss(t *testing.T) {
	srv, client := newTestApp(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/scan?barcode=1234567890128")
	if err != nil {
		t.Fatalf("GET /scan: %v", err)
	}
	body := readBody(t, resp)

	if !strings.Contains(body, "vnesite podatke ročno") {
		t.Error("scan page should fall back to manual entry on a lookup miss")
	}
}

func TestLookupJSON(t *testing.T) {
	srv, client := newTestApp(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/lookup?barcode=3017620422003")
	if err != nil {
		t.Fatalf("GET /lookup: %v", err)
	}
	var found struct {
		Found   bool `json:"found"`
		Product struct {
			Name string `json:"name"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		t.Fatalf("decoding lookup response: %v", err)
	}
	resp.Body.Close()
	if !found.Found || found.Product.Name != "Nutella" {
		t.Errorf("lookup = %+v, want found Nutella", found)
	}

	resp, err = client.Get(srv.URL + "/lookup?barcode=1234567890128")
	if err != nil {
		t.Fatalf("GET /lookup: %v", err)
	}
	var missed struct {
		Found bool `json:"found"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&missed); err != nil {
		t.Fatalf("decoding lookup response: %v", err)
	}
	resp.Body.Close()
	if missed.Found {
		t.Error("unknown barcode should report found=false")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	srv, client := newTestApp(t)
	login(t, srv, client)

	resp, err := client.PostForm(srv.URL+"/logout", nil)
	if err != nil {
		t.Fatalf("POST /logout: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	resp.Body.Close()
	if resp.Request.URL.Path != "/login" {
		t.Error("session should be invalid after logout")
	}
}
