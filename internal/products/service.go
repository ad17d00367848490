package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mpalmerin/storefront-backend/pkg/db"
	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mpalmerin/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines the catalog operations consumed by the controllers.
type Service interface {
	AddCategory(ctx context.Context, name string) (*CategoryDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	List(ctx context.Context) ([]ProductDTO, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]ProductDTO, error)
}

type catalogRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	CreateProduct(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]ProductWithCategory, error)
}

type service struct {
	repo catalogRepository
}

// NewService constructs a catalog service from the provided repository.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) AddCategory(ctx context.Context, name string) (*CategoryDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return categoryFromModel(category), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product := &models.Product{
		Name:       name,
		Price:      input.Price,
		CategoryID: input.CategoryID,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return productFromModel(product), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get product")
	}
	return productFromModel(product), nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(all))
	for i := range all {
		out = append(out, *productFromModel(&all[i]))
	}
	return out, nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID int64) ([]ProductDTO, error) {
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products by category")
	}

	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		dto := ProductDTO{
			ID:    row.ID,
			Name:  row.Name,
			Price: row.Price,
		}
		if row.CategoryID != nil {
			dto.Category = &CategoryDTO{ID: *row.CategoryID}
			if row.CategoryName != nil {
				dto.Category.Name = *row.CategoryName
			}
		}
		out = append(out, dto)
	}
	return out, nil
}
