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

var enterpriseSchema = validation.Schema{
	{Name: "enterpriseCapital", Kind: validation.Number},
	{Name: "enterpriseWorkforceCount", Kind: validation.Number},
	{Name: "enterpriseAddress", Kind: validation.String},
	{Name: "enterprisePhoneNumber", Kind: validation.String},
	{Name: "enterpriseEmail", Kind: validation.String},
	{Name: "enterpriseName", Kind: validation.String},
	{Name: "enterpriseHeadquartersLocation", Kind: validation.String},
	{Name: "enterpriseCreationDate", Kind: validation.String},
	{Name: "enterpriseIdentifierNumber", Kind: validation.String},
}

type EnterpriseHandler struct {
	DB *gorm.DB
}

func NewEnterpriseHandler(db *gorm.DB) *EnterpriseHandler {
	return &EnterpriseHandler{DB: db}
}

func enterpriseFromBody(body map[string]any) models.Enterprise {
	str := func(k string) string { v, _ := body[k].(string); return v }
	num := func(k string) float64 { v, _ := body[k].(float64); return v }
	return models.Enterprise{
		Capital:              num("enterpriseCapital"),
		WorkforceCount:       num("enterpriseWorkforceCount"),
		Address:              str("enterpriseAddress"),
		PhoneNumber:          str("enterprisePhoneNumber"),
		Email:                str("enterpriseEmail"),
		Name:                 str("enterpriseName"),
		HeadquartersLocation: str("enterpriseHeadquartersLocation"),
		CreationDate:         str("enterpriseCreationDate"),
		IdentifierNumber:     str("enterpriseIdentifierNumber"),
	}
}

func (h *EnterpriseHandler) validate(body map[string]any) *services.RequestError {
	if rerr := classifyBody(body, enterpriseSchema); rerr != nil {
		return rerr
	}
	if rerr := formatGate(body, "enterpriseEmail", validation.EmailRE); rerr != nil {
		return rerr
	}
	return formatGate(body, "enterpriseCreationDate", validation.TimestampRE)
}

// Add: POST /api/v1/enterprise/add. Email is the uniqueness key.
func (h *EnterpriseHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := h.validate(body); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	enterprise := enterpriseFromBody(body)
	var existing models.Enterprise
	err := h.DB.Where("email = ?", enterprise.Email).First(&existing).Error
	switch {
	case err == nil:
		httpx.Error(w, http.StatusConflict, "Conflict", "Enterprise already exists.")
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, err, "Error creating enterprise: ")
		return
	}
	if err := h.DB.Create(&enterprise).Error; err != nil {
		respondError(w, err, "Error creating enterprise: ")
		return
	}
	httpx.Success(w, http.StatusCreated, "Created", "Enterprise created successfully.")
}

// Get: GET /api/v1/enterprise/get/{enterpriseId}
func (h *EnterpriseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "enterpriseId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var enterprise models.Enterprise
	if err := h.DB.First(&enterprise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Enterprise not found.")
			return
		}
		respondError(w, err, "Error fetching enterprise: ")
		return
	}
	httpx.SuccessWith(w, http.StatusOK, "OK", "Enterprise fetched successfully.", "enterprise", enterprise)
}

// Update: PUT /api/v1/enterprise/update/{enterpriseId}
func (h *EnterpriseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "enterpriseId")
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
	var existing models.Enterprise
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Enterprise not found.")
			return
		}
		respondError(w, err, "Error updating enterprise: ")
		return
	}
	enterprise := enterpriseFromBody(body)
	err := h.DB.Model(&models.Enterprise{}).Where("id = ?", id).Updates(map[string]any{
		"capital":               enterprise.Capital,
		"workforce_count":       enterprise.WorkforceCount,
		"address":               enterprise.Address,
		"phone_number":          enterprise.PhoneNumber,
		"email":                 enterprise.Email,
		"name":                  enterprise.Name,
		"headquarters_location": enterprise.HeadquartersLocation,
		"creation_date":         enterprise.CreationDate,
		"identifier_number":     enterprise.IdentifierNumber,
	}).Error
	if err != nil {
		respondError(w, err, "Error updating enterprise: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Enterprise updated successfully.")
}

// Delete: DELETE /api/v1/enterprise/delete/{enterpriseId}
func (h *EnterpriseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "enterpriseId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var existing models.Enterprise
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Enterprise not found.")
			return
		}
		respondError(w, err, "Error deleting enterprise: ")
		return
	}
	if err := h.DB.Delete(&models.Enterprise{}, id).Error; err != nil {
		respondError(w, err, "Error deleting enterprise: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Enterprise deleted successfully.")
}
