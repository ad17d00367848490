package orders

import (
	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ActiveFlg bool  `json:"active_flg"`
}

// LineItemDTO is a persisted order line.
type LineItemDTO struct {
	ID        int64 `json:"id"`
	Quantity  int   `json:"quantity"`
	ProductID int64 `json:"product_id"`
	OrderID   int64 `json:"order_id"`
}

// OrderProductDTO is one row of the product-enriched order read.
type OrderProductDTO struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	OrderID     int64           `json:"order_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func orderFromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	return &OrderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		ActiveFlg: o.ActiveFlg,
	}
}

func lineItemFromModel(li *models.OrderLineItem) *LineItemDTO {
	if li == nil {
		return nil
	}
	return &LineItemDTO{
		ID:        li.ID,
		Quantity:  li.Quantity,
		ProductID: li.ProductID,
		OrderID:   li.OrderID,
	}
}
