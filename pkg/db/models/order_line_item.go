package models

// OrderLineItem attaches a product and quantity to an order. Both
// references are store-enforced at insert time.
type OrderLineItem struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	Quantity  int   `gorm:"column:quantity;not null"`
	ProductID int64 `gorm:"column:product_id;not null"`
	OrderID   int64 `gorm:"column:order_id;not null"`
}

func (OrderLineItem) TableName() string { return "order_product" }
