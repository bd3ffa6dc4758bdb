package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"minestake-backend/internal/services"
)

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minestake.db")

	store, err := services.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}

	ctx := context.Background()
	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "@minestake_high_score", "4"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := store.Set(ctx, "@minestake_high_score", "9"); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	reopened, err := services.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to reopen sqlite store: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "@minestake_high_score")
	if err != nil || !ok {
		t.Fatalf("Expected stored value, got ok=%v err=%v", ok, err)
	}
	if value != "9" {
		t.Errorf("Expected latest value 9, got %q", value)
	}
}

func TestOpenSQLiteStoreRequiresPath(t *testing.T) {
	if _, err := services.OpenSQLiteStore("  "); err == nil {
		t.Error("Expected error for empty path")
	}
}
