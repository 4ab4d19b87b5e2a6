package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/commerce-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Supplier{}, &models.Enterprise{}, &models.Product{}, &models.SuppliedBy{}, &models.Invoice{}, &models.InvoiceLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestHealthEndpoints(t *testing.T) {
	db := setupRouterTestDB(t)
	h := New(db)

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
	}
}

func TestRoutesAreWired(t *testing.T) {
	db := setupRouterTestDB(t)
	h := New(db)

	// A request without the path parameter must reach the handler and
	// produce the parameter-required message, not a router 404.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoice/get", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var env map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env["message"] != "invoiceId parameter is required." {
		t.Fatalf("unexpected body: %#v", env)
	}
}

func TestEndToEndClientCreate(t *testing.T) {
	db := setupRouterTestDB(t)
	h := New(db)

	body := `{"clientFirstName":"Ada","clientLastName":"Lovelace","clientAddress":"1 Analytical Way","clientPhoneNumber":"0102030405","clientEmail":"ada@test.co"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/client/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var count int64
	db.Model(&models.Client{}).Count(&count)
	if count != 1 {
		t.Fatalf("client row not created")
	}
}
