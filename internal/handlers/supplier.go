package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/commerce-api/internal/httpx"
	"github.com/diewo77/commerce-api/internal/models"
	"github.com/diewo77/commerce-api/internal/services"
	"github.com/diewo77/commerce-api/internal/validation"
	"gorm.io/gorm"
)

var supplierSchema = validation.Schema{
	{Name: "supplierName", Kind: validation.String},
	{Name: "supplierAddress", Kind: validation.String},
	{Name: "supplierPhoneNumber", Kind: validation.String},
	{Name: "supplierEmail", Kind: validation.String},
	{Name: "supplierCreationDate", Kind: validation.String},
	{Name: "supplierIdentifierNumber", Kind: validation.String},
}

type SupplierHandler struct {
	DB *gorm.DB
}

func NewSupplierHandler(db *gorm.DB) *SupplierHandler {
	return &SupplierHandler{DB: db}
}

func supplierFromBody(body map[string]any) models.Supplier {
	str := func(k string) string { v, _ := body[k].(string); return v }
	return models.Supplier{
		Name:             str("supplierName"),
		Address:          str("supplierAddress"),
		PhoneNumber:      str("supplierPhoneNumber"),
		Email:            str("supplierEmail"),
		CreationDate:     str("supplierCreationDate"),
		IdentifierNumber: str("supplierIdentifierNumber"),
	}
}

func (h *SupplierHandler) validate(body map[string]any) *services.RequestError {
	if rerr := classifyBody(body, supplierSchema); rerr != nil {
		return rerr
	}
	if rerr := formatGate(body, "supplierEmail", validation.EmailRE); rerr != nil {
		return rerr
	}
	return formatGate(body, "supplierCreationDate", validation.TimestampRE)
}

// Add: POST /api/v1/supplier/add. Email is the uniqueness key.
func (h *SupplierHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := h.validate(body); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	supplier := supplierFromBody(body)
	var existing models.Supplier
	err := h.DB.Where("email = ?", supplier.Email).First(&existing).Error
	switch {
	case err == nil:
		httpx.Error(w, http.StatusConflict, "Conflict", "Supplier already exists.")
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, err, "Error creating supplier: ")
		return
	}
	if err := h.DB.Create(&supplier).Error; err != nil {
		respondError(w, err, "Error creating supplier: ")
		return
	}
	httpx.Success(w, http.StatusCreated, "Created", "Supplier created successfully.")
}

// Get: GET /api/v1/supplier/get/{supplierId}
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "supplierId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var supplier models.Supplier
	if err := h.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Supplier not found.")
			return
		}
		respondError(w, err, "Error fetching supplier: ")
		return
	}
	httpx.SuccessWith(w, http.StatusOK, "OK", "Supplier fetched successfully.", "supplier", supplier)
}

// Update: PUT /api/v1/supplier/update/{supplierId}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "supplierId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := h.validate(body); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var existing models.Supplier
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Supplier not found.")
			return
		}
		respondError(w, err, "Error updating supplier: ")
		return
	}
	supplier := supplierFromBody(body)
	err := h.DB.Model(&models.Supplier{}).Where("id = ?", id).Updates(map[string]any{
		"name":              supplier.Name,
		"address":           supplier.Address,
		"phone_number":      supplier.PhoneNumber,
		"email":             supplier.Email,
		"creation_date":     supplier.CreationDate,
		"identifier_number": supplier.IdentifierNumber,
	}).Error
	if err != nil {
		respondError(w, err, "Error updating supplier: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Supplier updated successfully.")
}

// Delete: DELETE /api/v1/supplier/delete/{supplierId}
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "supplierId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var existing models.Supplier
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Supplier not found.")
			return
		}
		respondError(w, err, "Error deleting supplier: ")
		return
	}
	if err := h.DB.Delete(&models.Supplier{}, id).Error; err != nil {
		respondError(w, err, "Error deleting supplier: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Supplier deleted successfully.")
}
