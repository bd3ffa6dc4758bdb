package services_test

import (
	"context"
	"testing"
	"time"

	"minestake-backend/internal/services"
)

// gatedStore holds every Set until the gate is opened.
type gatedStore struct {
	*services.MemoryStore
	gate    chan struct{}
	entered chan string
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: services.NewMemoryStore(),
		gate:        make(chan struct{}),
		entered:     make(chan string, 16),
	}
}

func (s *gatedStore) Set(ctx context.Context, key, value string) error {
	s.entered <- key
	<-s.gate
	return s.MemoryStore.Set(ctx, key, value)
}

func TestPersisterWritesInBackground(t *testing.T) {
	store := newGatedStore()
	p := newTestPersister(t, store)

	done := make(chan struct{})
	go func() {
		p.Enqueue("a", "1")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a pending write")
	}

	<-store.entered
	if _, ok, _ := store.MemoryStore.Get(context.Background(), "a"); ok {
		t.Fatal("write completed before the store released it")
	}

	close(store.gate)
	p.Flush()

	value, ok, err := store.MemoryStore.Get(context.Background(), "a")
	if err != nil || !ok || value != "1" {
		t.Errorf("expected a=1, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestPersisterCoalescesPendingWrites(t *testing.T) {
	store := newGatedStore()
	p := newTestPersister(t, store)

	p.Enqueue("board", "first")
	<-store.entered

	p.Enqueue("board", "second")
	p.Enqueue("board", "third")
	p.Enqueue("high", "3")

	close(store.gate)
	p.Flush()

	if got := store.Writes(); got != 3 {
		t.Errorf("expected 3 writes after coalescing, got %d", got)
	}
	value, _, _ := store.MemoryStore.Get(context.Background(), "board")
	if value != "third" {
		t.Errorf("expected last queued value, got %q", value)
	}
}

func TestPersisterLogsFailures(t *testing.T) {
	store := services.NewMemoryStore()
	store.FailWrites(true)
	p := newTestPersister(t, store)

	p.Enqueue("k", "v")
	p.Flush()

	if p.Failed() != 1 {
		t.Errorf("expected 1 failed write, got %d", p.Failed())
	}

	store.FailWrites(false)
	p.Enqueue("k", "w")
	p.Flush()

	value, ok, _ := store.Get(context.Background(), "k")
	if !ok || value != "w" {
		t.Errorf("expected later write to succeed, got %q ok=%v", value, ok)
	}
}

func TestPersisterCloseDrains(t *testing.T) {
	store := services.NewMemoryStore()
	p := services.NewPersister(store, discardLogger(), time.Second)

	for _, v := range []string{"1", "2", "3"} {
		p.Enqueue("k", v)
	}
	p.Close()
	p.Close()

	value, _, _ := store.Get(context.Background(), "k")
	if value != "3" {
		t.Errorf("expected drained value 3, got %q", value)
	}

	p.Enqueue("k", "4")
	value, _, _ = store.Get(context.Background(), "k")
	if value != "3" {
		t.Errorf("closed persister should drop writes, got %q", value)
	}
}
