package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/commerce-api/internal/httpx"
	"github.com/diewo77/commerce-api/internal/models"
	"github.com/diewo77/commerce-api/internal/validation"
	"gorm.io/gorm"
)

var productCreateSchema = validation.Schema{
	{Name: "productName", Kind: validation.String},
	{Name: "productBuyingPrice", Kind: validation.Number},
	{Name: "productSellingPrice", Kind: validation.Number},
	{Name: "productDimensions", Kind: validation.String},
	{Name: "productWeight", Kind: validation.Number},
	{Name: "productProfitMarginRate", Kind: validation.Number},
	{Name: "supplierId", Kind: validation.Number},
}

// Updates re-describe the product only; the supplier link is fixed at
// creation time.
var productUpdateSchema = productCreateSchema[:6]

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

func productFromBody(body map[string]any) models.Product {
	str := func(k string) string { v, _ := body[k].(string); return v }
	num := func(k string) float64 { v, _ := body[k].(float64); return v }
	return models.Product{
		Name:             str("productName"),
		BuyingPrice:      num("productBuyingPrice"),
		SellingPrice:     num("productSellingPrice"),
		Dimensions:       str("productDimensions"),
		Weight:           num("productWeight"),
		ProfitMarginRate: num("productProfitMarginRate"),
	}
}

// Add: POST /api/v1/product/add
//
// A product identical in all six attributes is treated as the same
// product: if it is already supplied by the given supplier the request
// conflicts, otherwise only the supply link is created.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := classifyBody(body, productCreateSchema); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	supplierIDNum, _ := body["supplierId"].(float64)
	supplierID := uint(supplierIDNum)

	var supplier models.Supplier
	if err := h.DB.First(&supplier, supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Supplier not found.")
			return
		}
		respondError(w, err, "Error creating product: ")
		return
	}

	product := productFromBody(body)
	var existing models.Product
	err := h.DB.Where(map[string]any{
		"name":               product.Name,
		"buying_price":       product.BuyingPrice,
		"selling_price":      product.SellingPrice,
		"dimensions":         product.Dimensions,
		"weight":             product.Weight,
		"profit_margin_rate": product.ProfitMarginRate,
	}).First(&existing).Error
	switch {
	case err == nil:
		var link models.SuppliedBy
		linkErr := h.DB.Where("product_id = ? AND supplier_id = ?", existing.ID, supplierID).First(&link).Error
		switch {
		case linkErr == nil:
			httpx.Error(w, http.StatusConflict, "Conflict", "Product already exists and is supplied by the given supplier.")
			return
		case errors.Is(linkErr, gorm.ErrRecordNotFound):
			link = models.SuppliedBy{ProductID: existing.ID, SupplierID: supplierID}
			if err := h.DB.Create(&link).Error; err != nil {
				respondError(w, err, "Error creating product: ")
				return
			}
			httpx.Success(w, http.StatusCreated, "Created", "Product already exists, supply successfully linked with given supplier.")
			return
		default:
			respondError(w, linkErr, "Error creating product: ")
			return
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, err, "Error creating product: ")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		link := models.SuppliedBy{ProductID: product.ID, SupplierID: supplierID}
		return tx.Create(&link).Error
	})
	if err != nil {
		respondError(w, err, "Error creating product: ")
		return
	}
	httpx.Success(w, http.StatusCreated, "Created", "Product created successfully.")
}

// Get: GET /api/v1/product/get/{productId}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "productId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var product models.Product
	if err := h.DB.Preload("Suppliers").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Product not found.")
			return
		}
		respondError(w, err, "Error fetching product: ")
		return
	}
	httpx.SuccessWith(w, http.StatusOK, "OK", "Product fetched successfully.", "product", product)
}

// Update: PUT /api/v1/product/update/{productId}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "productId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := classifyBody(body, productUpdateSchema); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var existing models.Product
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Product not found.")
			return
		}
		respondError(w, err, "Error updating product: ")
		return
	}
	product := productFromBody(body)
	err := h.DB.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]any{
		"name":               product.Name,
		"buying_price":       product.BuyingPrice,
		"selling_price":      product.SellingPrice,
		"dimensions":         product.Dimensions,
		"weight":             product.Weight,
		"profit_margin_rate": product.ProfitMarginRate,
	}).Error
	if err != nil {
		respondError(w, err, "Error updating product: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Product updated successfully.")
}

// Delete: DELETE /api/v1/product/delete/{productId}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "productId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var existing models.Product
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Product not found.")
			return
		}
		respondError(w, err, "Error deleting product: ")
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.SuppliedBy{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		respondError(w, err, "Error deleting product: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Product deleted successfully.")
}
