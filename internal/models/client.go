package models

// Client represents a customer that invoices can be billed to.
type Client struct {
	ID          uint   `gorm:"primaryKey" json:"clientId"`
	FirstName   string `gorm:"size:255;not null" json:"clientFirstName"`
	LastName    string `gorm:"size:255;not null" json:"clientLastName"`
	Address     string `gorm:"size:500;not null" json:"clientAddress"`
	PhoneNumber string `gorm:"size:50;not null" json:"clientPhoneNumber"`
	Email       string `gorm:"size:255;not null;uniqueIndex" json:"clientEmail"`
}
