package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/diewo77/commerce-api/internal/models"
	"github.com/diewo77/commerce-api/internal/validation"
	"gorm.io/gorm"
)

// RequestError is a request-boundary failure with its HTTP mapping
// already decided. Short is the envelope's short status ("Bad request",
// "Not found", ...).
type RequestError struct {
	Status  int
	Short   string
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func badRequest(msg string) *RequestError {
	return &RequestError{Status: 400, Short: "Bad request", Message: msg}
}

func notFound(msg string) *RequestError {
	return &RequestError{Status: 404, Short: "Not found", Message: msg}
}

// LineRequest is one validated (product, quantity) pair.
type LineRequest struct {
	ProductID uint
	Quantity  float64
}

// InvoiceRequest is a fully validated invoice payload, ready for the
// reconciler. Dates keep their wire form; they are stored as given.
type InvoiceRequest struct {
	IssueDate    string
	DueDate      string
	Amount       float64
	ClientID     uint
	EnterpriseID uint
	Lines        []LineRequest
}

// wholeID reports whether a decoded JSON number can safely narrow to a
// row identifier. Fractional and negative values never name a row.
func wholeID(v float64) bool {
	return v >= 0 && v == math.Trunc(v)
}

var invoiceSchema = validation.Schema{
	{Name: "invoiceDate", Kind: validation.String},
	{Name: "invoiceDueDate", Kind: validation.String},
	{Name: "invoiceAmount", Kind: validation.Number},
	{Name: "clientId", Kind: validation.Number},
	{Name: "enterpriseId", Kind: validation.Number},
	{Name: "products", Kind: validation.Array, SkipEmpty: true},
}

// ValidateInvoicePayload runs the pure (no I/O) validation passes in
// fixed order: empty body, presence/empty/type classification, line-set
// structure, then date format. Existence and duplication checks against
// the store happen later in CheckReferences.
func ValidateInvoicePayload(body map[string]any) (*InvoiceRequest, *RequestError) {
	if len(body) == 0 {
		return nil, &RequestError{Status: 400, Short: "Bad Request", Message: "Request body is empty."}
	}

	if msg, failed := invoiceSchema.Classify(body).Message(); failed {
		return nil, badRequest(msg)
	}

	rawLines, ok := body["products"].([]any)
	if !ok || len(rawLines) == 0 {
		return nil, badRequest("Products array must have at least one product.")
	}

	lines := make([]LineRequest, 0, len(rawLines))
	for i, raw := range rawLines {
		entry, _ := raw.(map[string]any)
		pid, present := entry["productId"]
		if !present {
			return nil, badRequest(fmt.Sprintf("Product at index %d in products array must have a productId key.", i))
		}
		qty, present := entry["productQuantity"]
		if !present {
			return nil, badRequest(fmt.Sprintf("Product at index %d in products array must have a productQuantity key.", i))
		}
		pidNum, ok := pid.(float64)
		if !ok || !wholeID(pidNum) {
			return nil, badRequest(fmt.Sprintf("Product productId key at index %d in products array have wrong value type.", i))
		}
		qtyNum, ok := qty.(float64)
		if !ok {
			return nil, badRequest(fmt.Sprintf("Product productQuantity key at index %d in products array have wrong value type.", i))
		}
		lines = append(lines, LineRequest{ProductID: uint(pidNum), Quantity: qtyNum})
	}

	issueDate, _ := body["invoiceDate"].(string)
	dueDate, _ := body["invoiceDueDate"].(string)
	issueOK := validation.TimestampRE.MatchString(issueDate)
	dueOK := validation.TimestampRE.MatchString(dueDate)
	switch {
	case !issueOK && !dueOK:
		return nil, badRequest("Invalid invoiceDate and invoiceDueDate value format.")
	case !issueOK:
		return nil, badRequest("Invalid invoiceDate value format.")
	case !dueOK:
		return nil, badRequest("Invalid invoiceDueDate value format.")
	}

	amount, _ := body["invoiceAmount"].(float64)
	clientID, _ := body["clientId"].(float64)
	enterpriseID, _ := body["enterpriseId"].(float64)

	// Reference IDs must be whole non-negative numbers; a fractional
	// value would silently truncate to a different row.
	var badIDs validation.Classification
	if !wholeID(clientID) {
		badIDs.WrongType = append(badIDs.WrongType, "clientId")
	}
	if !wholeID(enterpriseID) {
		badIDs.WrongType = append(badIDs.WrongType, "enterpriseId")
	}
	if msg, failed := badIDs.Message(); failed {
		return nil, badRequest(msg)
	}

	return &InvoiceRequest{
		IssueDate:    issueDate,
		DueDate:      dueDate,
		Amount:       amount,
		ClientID:     uint(clientID),
		EnterpriseID: uint(enterpriseID),
		Lines:        lines,
	}, nil
}

// InvoiceService validates invoice requests against related entities
// and reconciles line sets against the store.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// CheckReferences verifies the cross-entity invariants of a validated
// request: client exists, then enterprise, then the line set is
// duplicate-free and every product resolves. Returns a *RequestError
// for contract failures and the raw error for store failures.
func (s *InvoiceService) CheckReferences(req *InvoiceRequest) error {
	var client models.Client
	if err := s.db.First(&client, req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Specified client does not exist.")
		}
		return err
	}

	var enterprise models.Enterprise
	if err := s.db.First(&enterprise, req.EnterpriseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Specified enterprise does not exist.")
		}
		return err
	}

	refs := make([]uint, 0, len(req.Lines))
	seen := make(map[uint]struct{}, len(req.Lines))
	for _, ln := range req.Lines {
		if _, dup := seen[ln.ProductID]; dup {
			return badRequest("Products array should not contain duplicated products, each product in the products array should have a unique productId.")
		}
		seen[ln.ProductID] = struct{}{}
		refs = append(refs, ln.ProductID)
	}

	// One batched existence query instead of a round-trip per product.
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id IN ?", refs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(refs)) {
		return notFound("A specified product in products array does not exist.")
	}
	return nil
}

// Create inserts the header and all its lines as one unit.
func (s *InvoiceService) Create(req *InvoiceRequest) (uint, error) {
	inv := models.Invoice{
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Amount:       req.Amount,
		ClientID:     req.ClientID,
		EnterpriseID: req.EnterpriseID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		lines := make([]models.InvoiceLine, 0, len(req.Lines))
		for _, ln := range req.Lines {
			lines = append(lines, models.InvoiceLine{InvoiceID: inv.ID, ProductID: ln.ProductID, Quantity: ln.Quantity})
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return 0, err
	}
	return inv.ID, nil
}

// Update overwrites the header and reconciles the persisted line set
// against the submitted one: delete lines whose product is no longer
// submitted, update quantities of lines that remain, insert the rest.
// The whole reconciliation runs in a single transaction so a mid-way
// failure never leaves a mixed line set behind.
func (s *InvoiceService) Update(invoiceID uint, req *InvoiceRequest) error {
	var inv models.Invoice
	if err := s.db.First(&inv, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Invoice not found.")
		}
		return err
	}

	refs := make([]uint, 0, len(req.Lines))
	for _, ln := range req.Lines {
		refs = append(refs, ln.ProductID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(map[string]any{
			"issue_date":    req.IssueDate,
			"due_date":      req.DueDate,
			"amount":        req.Amount,
			"client_id":     req.ClientID,
			"enterprise_id": req.EnterpriseID,
		}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("invoice_id = ? AND product_id NOT IN ?", invoiceID, refs).
			Delete(&models.InvoiceLine{}).Error; err != nil {
			return err
		}

		for _, ln := range req.Lines {
			var existing models.InvoiceLine
			err := tx.Where("invoice_id = ? AND product_id = ?", invoiceID, ln.ProductID).First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&models.InvoiceLine{}).
					Where("invoice_id = ? AND product_id = ?", invoiceID, ln.ProductID).
					Update("product_quantity", ln.Quantity).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				line := models.InvoiceLine{InvoiceID: invoiceID, ProductID: ln.ProductID, Quantity: ln.Quantity}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

// Get loads a header with its lines and their products.
func (s *InvoiceService) Get(invoiceID uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.Preload("Lines.Product").First(&inv, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Invoice not found.")
		}
		return nil, err
	}
	return &inv, nil
}

// Delete removes a header and its lines. Lines never outlive the header.
func (s *InvoiceService) Delete(invoiceID uint) error {
	var inv models.Invoice
	if err := s.db.First(&inv, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Invoice not found.")
		}
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, invoiceID).Error
	})
}
