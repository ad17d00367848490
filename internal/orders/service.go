package orders

import (
	"context"
	"fmt"

	"github.com/mpalmerin/storefront-backend/pkg/db"
	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mpalmerin/storefront-backend/pkg/errors"
)

// Service defines the order operations consumed by the controllers.
type Service interface {
	Create(ctx context.Context, userID int64, activeFlg bool) (*OrderDTO, error)
	ListByUser(ctx context.Context, userID int64) ([]OrderDTO, error)
	AddProduct(ctx context.Context, orderID, productID int64, quantity int) (*LineItemDTO, error)
	ListOrderProducts(ctx context.Context, orderID int64) ([]OrderProductDTO, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
	AddLineItem(ctx context.Context, item *models.OrderLineItem) error
	ListOrderProducts(ctx context.Context, orderID int64) ([]OrderProductRow, error)
}

type service struct {
	repo orderRepository
}

// NewService constructs an orders service from the provided repository.
func NewService(repo orderRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, userID int64, activeFlg bool) (*OrderDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	order := &models.Order{UserID: userID, ActiveFlg: activeFlg}
	if err := s.repo.Create(ctx, order); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	return orderFromModel(order), nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]OrderDTO, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user orders")
	}
	out := make([]OrderDTO, 0, len(all))
	for i := range all {
		out = append(out, *orderFromModel(&all[i]))
	}
	return out, nil
}

func (s *service) AddProduct(ctx context.Context, orderID, productID int64, quantity int) (*LineItemDTO, error) {
	if orderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	item := &models.OrderLineItem{
		Quantity:  quantity,
		ProductID: productID,
		OrderID:   orderID,
	}
	if err := s.repo.AddLineItem(ctx, item); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown order or product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add product to order")
	}
	return lineItemFromModel(item), nil
}

func (s *service) ListOrderProducts(ctx context.Context, orderID int64) ([]OrderProductDTO, error) {
	rows, err := s.repo.ListOrderProducts(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order products")
	}

	out := make([]OrderProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, OrderProductDTO{
			ID:          row.ID,
			ProductID:   row.ProductID,
			OrderID:     row.OrderID,
			ProductName: row.ProductName,
			Price:       row.Price,
			Quantity:    row.Quantity,
		})
	}
	return out, nil
}
