package models

// Invoice is the header row; its lines are owned by it and never
// exist without a parent header.
type Invoice struct {
	ID           uint          `gorm:"primaryKey" json:"invoiceId"`
	IssueDate    string        `gorm:"size:24;not null" json:"invoiceDate"`
	DueDate      string        `gorm:"size:24;not null" json:"invoiceDueDate"`
	Amount       float64       `gorm:"not null" json:"invoiceAmount"`
	ClientID     uint          `gorm:"index;not null" json:"clientId"`
	EnterpriseID uint          `gorm:"index;not null" json:"enterpriseId"`
	Lines        []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// InvoiceLine is one product position on an invoice. Identity is the
// (invoice, product) pair; a product appears at most once per invoice.
type InvoiceLine struct {
	InvoiceID uint    `gorm:"primaryKey;autoIncrement:false" json:"invoiceId"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false" json:"productId"`
	Quantity  float64 `gorm:"column:product_quantity;not null" json:"productQuantity"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
