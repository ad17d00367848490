package products

import (
	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductDTO is the transport shape. Category is only populated by the
// category-joined listing.
type ProductDTO struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *int64          `json:"category_id,omitempty"`
	Category   *CategoryDTO    `json:"category,omitempty"`
}

// CreateProductInput holds the data needed to add a catalog entry.
type CreateProductInput struct {
	Name       string
	Price      decimal.Decimal
	CategoryID *int64
}

func categoryFromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name}
}

func productFromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
	}
}
