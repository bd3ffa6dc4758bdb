package services_test

import (
	"context"
	"testing"

	"minestake-backend/internal/config"
	"minestake-backend/internal/services"
)

func TestRedisStore(t *testing.T) {
	cfg := &config.Config{
		RedisURL:    "localhost:6379",
		RedisPass:   "",
		RedisDB:     0,
		RedisPrefix: "minestake-test:",
	}

	store, err := services.NewRedisStore(cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	key := "@minestake_high_score"
	defer store.Delete(ctx, key)

	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("Expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, key, "17"); err != nil {
		t.Fatalf("Failed to set high score: %v", err)
	}

	value, ok, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Failed to get high score: %v", err)
	}
	if !ok || value != "17" {
		t.Errorf("Expected stored value 17, got %q (ok=%v)", value, ok)
	}
}
