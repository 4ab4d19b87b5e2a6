package models

// Enterprise represents the issuing company on an invoice.
type Enterprise struct {
	ID                   uint    `gorm:"primaryKey" json:"enterpriseId"`
	Capital              float64 `gorm:"not null" json:"enterpriseCapital"`
	WorkforceCount       float64 `gorm:"not null" json:"enterpriseWorkforceCount"`
	Address              string  `gorm:"size:500;not null" json:"enterpriseAddress"`
	PhoneNumber          string  `gorm:"size:50;not null" json:"enterprisePhoneNumber"`
	Email                string  `gorm:"size:255;not null;uniqueIndex" json:"enterpriseEmail"`
	Name                 string  `gorm:"size:255;not null" json:"enterpriseName"`
	HeadquartersLocation string  `gorm:"size:255;not null" json:"enterpriseHeadquartersLocation"`
	CreationDate         string  `gorm:"size:24;not null" json:"enterpriseCreationDate"`
	IdentifierNumber     string  `gorm:"size:50;not null" json:"enterpriseIdentifierNumber"`
}
