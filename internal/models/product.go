package models

// Product represents a catalog item that can appear on invoice lines.
type Product struct {
	ID               uint    `gorm:"primaryKey" json:"productId"`
	Name             string  `gorm:"size:255;not null" json:"productName"`
	BuyingPrice      float64 `gorm:"not null" json:"productBuyingPrice"`
	SellingPrice     float64 `gorm:"not null" json:"productSellingPrice"`
	Dimensions       string  `gorm:"size:100;not null" json:"productDimensions"`
	Weight           float64 `gorm:"not null" json:"productWeight"`
	ProfitMarginRate float64 `gorm:"not null" json:"productProfitMarginRate"`

	Suppliers []Supplier `gorm:"many2many:supplied_by" json:"suppliers,omitempty"`
}

// SuppliedBy links a product to one of its suppliers.
type SuppliedBy struct {
	ProductID  uint `gorm:"primaryKey;autoIncrement:false" json:"productId"`
	SupplierID uint `gorm:"primaryKey;autoIncrement:false" json:"supplierId"`
}

func (SuppliedBy) TableName() string { return "supplied_by" }
