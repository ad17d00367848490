package products

import (
	"context"

	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductWithCategory is one row of the category-joined listing. Category
// fields are nullable because the join is a left join.
type ProductWithCategory struct {
	ID           int64           `gorm:"column:id"`
	Name         string          `gorm:"column:name"`
	Price        decimal.Decimal `gorm:"column:price"`
	CategoryID   *int64          `gorm:"column:category_id"`
	CategoryName *string         `gorm:"column:category_name"`
}

const productsByCategoryQuery = `
SELECT p.id, p.name, p.price, c.id AS category_id, c.name AS category_name
FROM product p
LEFT JOIN category c ON p.category_id = c.id
WHERE p.category_id = ?
ORDER BY c.name ASC`

// Repository exposes catalog persistence operations for products and
// categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateCategory inserts a category and fills in the assigned id.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// CreateProduct inserts a product and fills in the assigned id.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads a product by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the whole catalog, unordered.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var all []models.Product
	if err := r.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

// ListByCategory returns the products in a category with the category row
// embedded per result, ordered by category name ascending. A category with
// no products yields an empty slice.
func (r *Repository) ListByCategory(ctx context.Context, categoryID int64) ([]ProductWithCategory, error) {
	var rows []ProductWithCategory
	if err := r.db.WithContext(ctx).Raw(productsByCategoryQuery, categoryID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
