package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/commerce-api/internal/httpx"
	"github.com/diewo77/commerce-api/internal/models"
	"github.com/diewo77/commerce-api/internal/validation"
	"gorm.io/gorm"
)

var clientSchema = validation.Schema{
	{Name: "clientFirstName", Kind: validation.String},
	{Name: "clientLastName", Kind: validation.String},
	{Name: "clientAddress", Kind: validation.String},
	{Name: "clientPhoneNumber", Kind: validation.String},
	{Name: "clientEmail", Kind: validation.String},
}

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

func clientFromBody(body map[string]any) models.Client {
	str := func(k string) string { v, _ := body[k].(string); return v }
	return models.Client{
		FirstName:   str("clientFirstName"),
		LastName:    str("clientLastName"),
		Address:     str("clientAddress"),
		PhoneNumber: str("clientPhoneNumber"),
		Email:       str("clientEmail"),
	}
}

// Add: POST /api/v1/client/add. Email is the uniqueness key.
func (h *ClientHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := classifyBody(body, clientSchema); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := formatGate(body, "clientEmail", validation.EmailRE); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	client := clientFromBody(body)
	var existing models.Client
	err := h.DB.Where("email = ?", client.Email).First(&existing).Error
	switch {
	case err == nil:
		httpx.Error(w, http.StatusConflict, "Conflict", "Client already exists.")
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, err, "Error creating client: ")
		return
	}
	if err := h.DB.Create(&client).Error; err != nil {
		respondError(w, err, "Error creating client: ")
		return
	}
	httpx.Success(w, http.StatusCreated, "Created", "Client created successfully.")
}

// Get: GET /api/v1/client/get/{clientId}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "clientId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Client not found.")
			return
		}
		respondError(w, err, "Error fetching client: ")
		return
	}
	httpx.SuccessWith(w, http.StatusOK, "OK", "Client fetched successfully.", "client", client)
}

// Update: PUT /api/v1/client/update/{clientId}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "clientId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := classifyBody(body, clientSchema); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if rerr := formatGate(body, "clientEmail", validation.EmailRE); rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var existing models.Client
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Client not found.")
			return
		}
		respondError(w, err, "Error updating client: ")
		return
	}
	client := clientFromBody(body)
	err := h.DB.Model(&models.Client{}).Where("id = ?", id).Updates(map[string]any{
		"first_name":   client.FirstName,
		"last_name":    client.LastName,
		"address":      client.Address,
		"phone_number": client.PhoneNumber,
		"email":        client.Email,
	}).Error
	if err != nil {
		respondError(w, err, "Error updating client: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Client updated successfully.")
}

// Delete: DELETE /api/v1/client/delete/{clientId}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "clientId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	var existing models.Client
	if err := h.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Not found", "Client not found.")
			return
		}
		respondError(w, err, "Error deleting client: ")
		return
	}
	if err := h.DB.Delete(&models.Client{}, id).Error; err != nil {
		respondError(w, err, "Error deleting client: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Client deleted successfully.")
}
