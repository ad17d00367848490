package orders

import (
	"context"

	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderProductRow is one row of the product-anchored order read.
type OrderProductRow struct {
	ID          int64           `gorm:"column:id"`
	ProductID   int64           `gorm:"column:product_id"`
	OrderID     int64           `gorm:"column:order_id"`
	ProductName string          `gorm:"column:product_name"`
	Price       decimal.Decimal `gorm:"column:price"`
	Quantity    int             `gorm:"column:quantity"`
}

// The join is anchored on product and walks left toward the order filter.
// A line item whose product row is gone therefore drops out of the result
// entirely rather than surfacing with null product fields.
const orderProductsQuery = `
SELECT op.id AS id, op.product_id AS product_id, op.order_id AS order_id,
       p.name AS product_name, p.price AS price, op.quantity AS quantity
FROM product p
LEFT JOIN order_product op ON op.product_id = p.id
LEFT JOIN user_order uo ON uo.id = op.order_id
WHERE uo.id = ?`

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an order and fills in the assigned id.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// ListByUser returns every order belonging to the user, unordered.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var all []models.Order
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

// AddLineItem inserts a line item and fills in the assigned id.
func (r *Repository) AddLineItem(ctx context.Context, item *models.OrderLineItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// ListOrderProducts returns the product-enriched line items of an order.
func (r *Repository) ListOrderProducts(ctx context.Context, orderID int64) ([]OrderProductRow, error) {
	var rows []OrderProductRow
	if err := r.db.WithContext(ctx).Raw(orderProductsQuery, orderID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
