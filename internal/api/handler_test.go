package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"parkpass/internal/api"
	"parkpass/internal/config"
	"parkpass/internal/purchase"
	purchasedb "parkpass/internal/purchase/db"
	"parkpass/internal/purchase/qr"
	"parkpass/internal/registry"
	"parkpass/internal/registry/store"
	"parkpass/internal/utils"
)

func newTestServer(t *testing.T) *httptest.Server {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
			AdminUsername: "admin",
			AdminPassword: "admin123",
		},
		QR: config.QRConfig{Secret: "test-qr-secret"},
	}

	reg := registry.New(store.NewFileStore(t.TempDir()))
	if err := reg.Load(); err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	// Every pooled connection would get its own in-memory database.
	sqldb.SetMaxOpenConns(1)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { bunDB.Close() })

	passDB := &purchasedb.DB{Bun: bunDB}
	if err := passDB.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	purchases := purchase.NewService(passDB, qr.NewGenerator(cfg.QR.Secret))
	handler := api.NewHandler(reg, purchases, cfg, nil)

	srv := httptest.NewServer(api.Router(handler))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, utils.APIResponse) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var envelope utils.APIResponse
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return resp, envelope
}

func register(t *testing.T, srv *httptest.Server, name, email, password string) utils.APIResponse {
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password, "confirm_password": password,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	return envelope
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope.Data.(map[string]interface{})
	return data["token"].(string)
}

func adminLogin(t *testing.T, srv *httptest.Server) string {
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/auth/admin/login", "", map[string]string{
		"username": "admin", "password": "admin123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope.Data.(map[string]interface{})
	return data["token"].(string)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"name": "", "email": "a@b.com", "password": "pw", "confirm_password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"name": "A", "email": "not-an-email", "password": "pw", "confirm_password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"name": "A", "email": "a@b.com", "password": "pw", "confirm_password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	register(t, srv, "Alice", "alice@example.com", "pw")

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"name": "Clone", "email": "alice@example.com", "password": "pw", "confirm_password": "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, envelope.Success)
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "Bob", "bob@example.com", "hunter2")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": "bob@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, srv, "bob@example.com", "hunter2")

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/account", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	account := envelope.Data.(map[string]interface{})
	assert.Equal(t, "bob@example.com", account["email"])
}

func TestAccountUpdateAndDelete(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "Carol", "carol@example.com", "pw")
	register(t, srv, "Other", "other@example.com", "pw")
	token := login(t, srv, "carol@example.com", "pw")

	// Collision with another account's email.
	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/account", token, map[string]string{
		"name": "Carol", "email": "other@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Full overwrite with a new email.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/account", token, map[string]string{
		"name": "Carol King", "email": "carol.king@example.com", "password": "newpw",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	login(t, srv, "carol.king@example.com", "newpw")

	// Delete, then the old credentials stop working.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/account", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": "carol.king@example.com", "password": "newpw",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogIsPublic(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/catalog", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, envelope.Data, 6)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/account"},
		{http.MethodPost, "/purchase"},
		{http.MethodGet, "/purchases"},
		{http.MethodGet, "/admin/sales?date=07/04/2025"},
	} {
		resp, _ := doJSON(t, route.method, srv.URL+route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}

	// A user token must not open admin routes.
	register(t, srv, "Eve", "eve@example.com", "pw")
	token := login(t, srv, "eve@example.com", "pw")
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/admin/sales?date=07/04/2025", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func purchaseBody(ticketType string, people int) map[string]interface{} {
	return map[string]interface{}{
		"ticket_type": ticketType,
		"visit_date":  "07/04/2025",
		"num_people":  people,
		"payment": map[string]interface{}{
			"method": "credit_card",
			"card":   map[string]string{"number": "4111111111111111", "expiry": "12/27", "cvv": "123"},
		},
	}
}

func TestPurchaseFlow(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "Frank", "frank@example.com", "pw")
	token := login(t, srv, "frank@example.com", "pw")
	admin := adminLogin(t, srv)

	// Admin sets a 10% discount on Single-Day Pass.
	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/admin/discounts", admin, map[string]interface{}{
		"ticket_type": "Single-Day Pass", "percentage": 10,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Buy two discounted tickets: 275 * 2 * 0.9 = 495.
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/purchase", token, purchaseBody("Single-Day Pass", 2))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := envelope.Data.(map[string]interface{})
	receipt := data["receipt"].(map[string]interface{})
	assert.Equal(t, 495.0, receipt["amount"])
	pass := data["pass"].(map[string]interface{})
	assert.Equal(t, "Single-Day Pass", pass["ticket_type"])
	assert.NotEmpty(t, pass["qr_code"])

	// Ledger counted both people.
	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/admin/sales?date=07/04/2025", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	sales := envelope.Data.(map[string]interface{})
	assert.Equal(t, 2.0, sales["tickets_sold"])

	// A second purchase accumulates.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/purchase", token, purchaseBody("Single-Day Pass", 3))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	_, envelope = doJSON(t, http.MethodGet, srv.URL+"/admin/sales?date=07/04/2025", admin, nil)
	sales = envelope.Data.(map[string]interface{})
	assert.Equal(t, 5.0, sales["tickets_sold"])

	// Purchase history lists both passes.
	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/purchases", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, envelope.Data, 2)
}

func TestPurchaseValidation(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "Grace", "grace@example.com", "pw")
	token := login(t, srv, "grace@example.com", "pw")

	body := purchaseBody("Single-Day Pass", 2)
	body["visit_date"] = "2025-07-04"
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/purchase", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = purchaseBody("Single-Day Pass", 0)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/purchase", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = purchaseBody("Moon Pass", 1)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/purchase", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = purchaseBody("Single-Day Pass", 1)
	body["payment"] = map[string]interface{}{
		"method": "credit_card",
		"card":   map[string]string{"number": "411111111111111", "expiry": "12/27", "cvv": "123"},
	}
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/purchase", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope.Error, "card number")

	// Nothing hit the ledger.
	admin := adminLogin(t, srv)
	_, envelope = doJSON(t, http.MethodGet, srv.URL+fmt.Sprintf("/admin/sales?date=%s", "07/04/2025"), admin, nil)
	sales := envelope.Data.(map[string]interface{})
	assert.Equal(t, 0.0, sales["tickets_sold"])
}

func TestAdminLoginRejectsBadCredential(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/admin/login", "", map[string]string{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSetDiscountUnknownType(t *testing.T) {
	srv := newTestServer(t)
	admin := adminLogin(t, srv)

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/admin/discounts", admin, map[string]interface{}{
		"ticket_type": "Moon Pass", "percentage": 50,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
