package models

import "github.com/shopspring/decimal"

// Product is a catalog entry. CategoryID is a weak reference; nil means
// uncategorized.
type Product struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CategoryID *int64          `gorm:"column:category_id"`
}

func (Product) TableName() string { return "product" }
