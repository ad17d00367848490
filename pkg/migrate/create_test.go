package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Product Index")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_product_index.sql") {
		t.Fatalf("unexpected filename %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, "-- +goose Up") || !strings.Contains(content, "-- +goose Down") {
		t.Fatalf("missing goose markers:\n%s", content)
	}
}

func TestCreateSQLMigrationValidatesInput(t *testing.T) {
	if _, err := CreateSQLMigration("", "name"); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if _, err := CreateSQLMigration(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatal("expected error for unsanitizable name")
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	path, err := CreateSQLMigration(t.TempDir(), "Drop: legacy/temp tables!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	base := filepath.Base(path)
	if strings.ContainsAny(base, ":/! ") {
		t.Fatalf("unsanitized filename %q", base)
	}
}
