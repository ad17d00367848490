package users

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mpalmerin/storefront-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var userSchema = []string{
	`CREATE TABLE site_user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_name TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		password TEXT NOT NULL,
		CONSTRAINT site_user_user_name_key UNIQUE (user_name)
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
	// A single connection keeps every statement on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range userSchema {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

func strPtr(s string) *string { return &s }

func TestRepositoryCreateAssignsID(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	user := &models.User{
		UserName:     "ada",
		FirstName:    strPtr("Ada"),
		LastName:     strPtr("Lovelace"),
		PasswordHash: "$2a$04$hash",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.Positive(t, user.ID)
}

func TestRepositoryCreateDuplicateUserName(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{UserName: "ada", PasswordHash: "h"}))
	err := repo.Create(ctx, &models.User{UserName: "ada", PasswordHash: "h"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestRepositoryFindByID(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	seeded := &models.User{UserName: "ada", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, seeded))

	found, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", found.UserName)

	_, err = repo.FindByID(ctx, seeded.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByUserName(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{UserName: "ada", PasswordHash: "h"}))

	found, err := repo.FindByUserName(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "ada", found.UserName)

	_, err = repo.FindByUserName(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListEmpty(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepositoryListReturnsAll(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"ada", "grace", "edsger"} {
		require.NoError(t, repo.Create(ctx, &models.User{UserName: name, PasswordHash: "h"}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
