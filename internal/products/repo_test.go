package products

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var catalogSchema = []string{
	`CREATE TABLE category (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE product (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		category_id INTEGER REFERENCES category (id)
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range catalogSchema {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

func seedCategory(t *testing.T, repo *Repository, name string) int64 {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, repo.CreateCategory(context.Background(), category))
	return category.ID
}

func seedProduct(t *testing.T, repo *Repository, name, price string, categoryID *int64) int64 {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
	require.NoError(t, repo.CreateProduct(context.Background(), product))
	return product.ID
}

func TestRepositoryCreateProductAndFindByID(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	id := seedProduct(t, repo, "Mechanical Keyboard", "129.99", nil)

	found, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", found.Name)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("129.99")))
	assert.Nil(t, found.CategoryID)
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCreateProductUnknownCategory(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	missing := int64(999)
	err := repo.CreateProduct(context.Background(), &models.Product{
		Name:       "Orphan",
		Price:      decimal.NewFromInt(1),
		CategoryID: &missing,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
}

func TestRepositoryListEmpty(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepositoryListByCategory(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	booksID := seedCategory(t, repo, "Books")
	gamesID := seedCategory(t, repo, "Games")
	seedProduct(t, repo, "SICP", "49.50", &booksID)
	seedProduct(t, repo, "TAOCP", "199.00", &booksID)
	seedProduct(t, repo, "Chess Set", "25.00", &gamesID)

	rows, err := repo.ListByCategory(context.Background(), booksID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.NotNil(t, row.CategoryID)
		assert.Equal(t, booksID, *row.CategoryID)
		require.NotNil(t, row.CategoryName)
		assert.Equal(t, "Books", *row.CategoryName)
	}
}

func TestRepositoryListByCategoryEmpty(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	emptyID := seedCategory(t, repo, "Empty Shelf")

	rows, err := repo.ListByCategory(context.Background(), emptyID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
