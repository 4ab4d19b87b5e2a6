package handlers

import (
	"log"
	"net/http"

	"github.com/diewo77/commerce-api/internal/httpx"
	"github.com/diewo77/commerce-api/internal/services"
	"gorm.io/gorm"
)

// InvoiceHandler owns the invoice endpoints: validation, cross-entity
// checks, and line-set reconciliation all live behind these four
// methods.
type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// Add: POST /api/v1/invoice/add
func (h *InvoiceHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	req, rerr := services.ValidateInvoicePayload(body)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if err := h.Svc.CheckReferences(req); err != nil {
		respondError(w, err, "Error creating invoice: ")
		return
	}
	if _, err := h.Svc.Create(req); err != nil {
		respondError(w, err, "Error creating invoice: ")
		return
	}
	httpx.Success(w, http.StatusCreated, "Created", "Invoice created successfully.")
}

// Get: GET /api/v1/invoice/get/{invoiceId}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "invoiceId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		respondError(w, err, "Error fetching invoice: ")
		return
	}
	httpx.SuccessWith(w, http.StatusOK, "OK", "Invoice fetched successfully.", "invoice", inv)
}

// Update: PUT /api/v1/invoice/update/{invoiceId}
//
// The invoice's own existence is checked last among the persistence
// checks: payload validation and client/enterprise/product references
// all run first.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "invoiceId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	body, rerr := decodeBody(r)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	req, rerr := services.ValidateInvoicePayload(body)
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if err := h.Svc.CheckReferences(req); err != nil {
		respondError(w, err, "Error updating invoice: ")
		return
	}
	if err := h.Svc.Update(id, req); err != nil {
		if _, expected := err.(*services.RequestError); !expected {
			log.Printf("invoice update %d: %v", id, err)
		}
		respondError(w, err, "Error updating invoice: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Invoice updated successfully.")
}

// Delete: DELETE /api/v1/invoice/delete/{invoiceId}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, rerr := pathID(r, "invoiceId")
	if rerr != nil {
		respondRequestError(w, rerr)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		respondError(w, err, "Error deleting invoice: ")
		return
	}
	httpx.Success(w, http.StatusOK, "OK", "Invoice deleted successfully.")
}
