package models

// Supplier represents a company that supplies products.
type Supplier struct {
	ID               uint   `gorm:"primaryKey" json:"supplierId"`
	Name             string `gorm:"size:255;not null" json:"supplierName"`
	Address          string `gorm:"size:500;not null" json:"supplierAddress"`
	PhoneNumber      string `gorm:"size:50;not null" json:"supplierPhoneNumber"`
	Email            string `gorm:"size:255;not null;uniqueIndex" json:"supplierEmail"`
	CreationDate     string `gorm:"size:24;not null" json:"supplierCreationDate"`
	IdentifierNumber string `gorm:"size:50;not null" json:"supplierIdentifierNumber"`
}
