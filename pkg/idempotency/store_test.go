package idempotency

import (
	"testing"
	"time"

	"woki/pkg/model"
)

func TestStoreGetSet(t *testing.T) {
	store := NewInMemoryStore(time.Hour)
	defer store.Stop()

	if _, ok := store.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	res := &model.Reservation{ID: "RES_1", Status: model.StatusConfirmed}
	store.Set("key-1", res)

	got, ok := store.Get("key-1")
	if !ok {
		t.Fatal("expected hit for stored key")
	}
	if got.ID != "RES_1" {
		t.Errorf("expected RES_1, got %s", got.ID)
	}
}

func TestStoreExpiresEntries(t *testing.T) {
	store := NewInMemoryStore(10 * time.Millisecond)
	defer store.Stop()

	store.Set("key-1", &model.Reservation{ID: "RES_1"})

	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get("key-1"); ok {
		t.Error("expected expired entry to miss")
	}
}
