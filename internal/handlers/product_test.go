package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/diewo77/commerce-api/internal/models"
	"gorm.io/gorm"
)

func seedSupplier(t *testing.T, db *gorm.DB, email string) models.Supplier {
	t.Helper()
	s := models.Supplier{Name: "Supplies Co", Address: "9 Depot Lane", PhoneNumber: "0300000000", Email: email, CreationDate: "2019-06-01T00:00:00.000Z", IdentifierNumber: "SUP-1"}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("supplier: %v", err)
	}
	return s
}

func productBody(supplierID uint) string {
	return fmt.Sprintf(`{"productName":"Crate","productBuyingPrice":4,"productSellingPrice":10,"productDimensions":"60x40x40","productWeight":2.5,"productProfitMarginRate":1.5,"supplierId":%d}`, supplierID)
}

func TestProductAddCreatesAndLinks(t *testing.T) {
	db := setupTestDB(t)
	supplier := seedSupplier(t, db, "depot@test.co")
	h := testRouter(db)

	w, env := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(supplier.ID))
	if w.Code != 201 || env.Message != "Product created successfully." {
		t.Fatalf("add: %d %#v", w.Code, env)
	}
	var link models.SuppliedBy
	if err := db.Where("supplier_id = ?", supplier.ID).First(&link).Error; err != nil {
		t.Fatalf("link not created: %v", err)
	}
}

func TestProductAddUnknownSupplier(t *testing.T) {
	db := setupTestDB(t)
	h := testRouter(db)

	w, env := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(404))
	if w.Code != 404 || env.Message != "Supplier not found." {
		t.Fatalf("unexpected: %d %#v", w.Code, env)
	}
}

func TestProductAddSameSupplierConflicts(t *testing.T) {
	db := setupTestDB(t)
	supplier := seedSupplier(t, db, "depot@test.co")
	h := testRouter(db)

	if w, _ := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(supplier.ID)); w.Code != 201 {
		t.Fatal("first add failed")
	}
	w, env := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(supplier.ID))
	if w.Code != 409 || env.Message != "Product already exists and is supplied by the given supplier." {
		t.Fatalf("unexpected: %d %#v", w.Code, env)
	}
}

func TestProductAddNewSupplierLinksExisting(t *testing.T) {
	db := setupTestDB(t)
	first := seedSupplier(t, db, "depot@test.co")
	second := seedSupplier(t, db, "other@test.co")
	h := testRouter(db)

	if w, _ := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(first.ID)); w.Code != 201 {
		t.Fatal("first add failed")
	}
	w, env := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(second.ID))
	if w.Code != 201 || env.Message != "Product already exists, supply successfully linked with given supplier." {
		t.Fatalf("unexpected: %d %#v", w.Code, env)
	}
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 1 {
		t.Fatalf("duplicate product row created: %d", count)
	}
	db.Model(&models.SuppliedBy{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 supply links got %d", count)
	}
}

func TestProductGetIncludesSuppliers(t *testing.T) {
	db := setupTestDB(t)
	supplier := seedSupplier(t, db, "depot@test.co")
	h := testRouter(db)

	if w, _ := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(supplier.ID)); w.Code != 201 {
		t.Fatal("add failed")
	}
	getW, _ := do(t, h, http.MethodGet, "/api/v1/product/get/1", "")
	if getW.Code != 200 {
		t.Fatalf("get: %d %s", getW.Code, getW.Body.String())
	}
	var payload struct {
		Product models.Product `json:"product"`
	}
	if err := json.Unmarshal(getW.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Product.Suppliers) != 1 || payload.Product.Suppliers[0].Email != "depot@test.co" {
		t.Fatalf("suppliers not preloaded: %#v", payload.Product)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	supplier := seedSupplier(t, db, "depot@test.co")
	h := testRouter(db)

	if w, _ := do(t, h, http.MethodPost, "/api/v1/product/add", productBody(supplier.ID)); w.Code != 201 {
		t.Fatal("add failed")
	}
	update := `{"productName":"Crate XL","productBuyingPrice":6,"productSellingPrice":14,"productDimensions":"80x60x60","productWeight":4,"productProfitMarginRate":1.3}`
	w, env := do(t, h, http.MethodPut, "/api/v1/product/update/1", update)
	if w.Code != 200 || env.Message != "Product updated successfully." {
		t.Fatalf("update: %d %#v", w.Code, env)
	}
	var product models.Product
	if err := db.First(&product, 1).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if product.Name != "Crate XL" || product.BuyingPrice != 6 {
		t.Fatalf("not overwritten: %#v", product)
	}

	w, env = do(t, h, http.MethodDelete, "/api/v1/product/delete/1", "")
	if w.Code != 200 || env.Message != "Product deleted successfully." {
		t.Fatalf("delete: %d %#v", w.Code, env)
	}
	var links int64
	db.Model(&models.SuppliedBy{}).Where("product_id = ?", 1).Count(&links)
	if links != 0 {
		t.Fatalf("supply links not cleaned up: %d", links)
	}
}
