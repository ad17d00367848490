package orders

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

var orderSchema = []string{
	`CREATE TABLE site_user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_name TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		password TEXT NOT NULL,
		CONSTRAINT site_user_user_name_key UNIQUE (user_name)
	)`,
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
	`CREATE TABLE user_order (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES site_user (id),
		active_flg BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE order_product (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		quantity INTEGER NOT NULL,
		product_id INTEGER NOT NULL REFERENCES product (id),
		order_id INTEGER NOT NULL REFERENCES user_order (id)
	)`,
}

type orderFixture struct {
	db        *gorm.DB
	repo      *Repository
	userID    int64
	productID int64
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

	for _, stmt := range orderSchema {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	gdb := openTestDB(t)
	ctx := context.Background()

	user := &models.User{UserName: "ada", PasswordHash: "h"}
	require.NoError(t, gdb.WithContext(ctx).Create(user).Error)

	product := &models.Product{Name: "SICP", Price: decimal.RequireFromString("49.50")}
	require.NoError(t, gdb.WithContext(ctx).Create(product).Error)

	return &orderFixture{
		db:        gdb,
		repo:      NewRepository(gdb),
		userID:    user.ID,
		productID: product.ID,
	}
}

func TestRepositoryCreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := &models.Order{UserID: f.userID, ActiveFlg: true}
	require.NoError(t, f.repo.Create(ctx, order))
	assert.Positive(t, order.ID)
}

func TestRepositoryCreateOrderUnknownUser(t *testing.T) {
	f := newOrderFixture(t)

	err := f.repo.Create(context.Background(), &models.Order{UserID: f.userID + 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
}

func TestRepositoryListByUser(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.Create(ctx, &models.Order{UserID: f.userID, ActiveFlg: true}))
	require.NoError(t, f.repo.Create(ctx, &models.Order{UserID: f.userID}))

	all, err := f.repo.ListByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := f.repo.ListByUser(ctx, f.userID+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryAddLineItemAndListOrderProducts(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := &models.Order{UserID: f.userID, ActiveFlg: true}
	require.NoError(t, f.repo.Create(ctx, order))

	item := &models.OrderLineItem{Quantity: 3, ProductID: f.productID, OrderID: order.ID}
	require.NoError(t, f.repo.AddLineItem(ctx, item))
	assert.Positive(t, item.ID)

	rows, err := f.repo.ListOrderProducts(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, item.ID, row.ID)
	assert.Equal(t, f.productID, row.ProductID)
	assert.Equal(t, order.ID, row.OrderID)
	assert.Equal(t, "SICP", row.ProductName)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("49.50")))
	assert.Equal(t, 3, row.Quantity)
}

func TestRepositoryAddLineItemUnknownProduct(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := &models.Order{UserID: f.userID}
	require.NoError(t, f.repo.Create(ctx, order))

	err := f.repo.AddLineItem(ctx, &models.OrderLineItem{
		Quantity:  1,
		ProductID: f.productID + 100,
		OrderID:   order.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
}

func TestRepositoryListOrderProductsEmptyOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := &models.Order{UserID: f.userID}
	require.NoError(t, f.repo.Create(ctx, order))

	rows, err := f.repo.ListOrderProducts(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryListOrderProductsDropsOrphanedLineItem(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := &models.Order{UserID: f.userID, ActiveFlg: true}
	require.NoError(t, f.repo.Create(ctx, order))
	require.NoError(t, f.repo.AddLineItem(ctx, &models.OrderLineItem{
		Quantity: 2, ProductID: f.productID, OrderID: order.ID,
	}))

	// Remove the product out from under the line item. The join anchors on
	// product, so the orphaned row must vanish rather than surface with
	// null product fields.
	require.NoError(t, f.db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, f.db.Exec("DELETE FROM product WHERE id = ?", f.productID).Error)
	require.NoError(t, f.db.Exec("PRAGMA foreign_keys = ON").Error)

	rows, err := f.repo.ListOrderProducts(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryListOrderProductsScopedToOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	first := &models.Order{UserID: f.userID}
	second := &models.Order{UserID: f.userID}
	require.NoError(t, f.repo.Create(ctx, first))
	require.NoError(t, f.repo.Create(ctx, second))

	require.NoError(t, f.repo.AddLineItem(ctx, &models.OrderLineItem{
		Quantity: 2, ProductID: f.productID, OrderID: first.ID,
	}))

	rows, err := f.repo.ListOrderProducts(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
