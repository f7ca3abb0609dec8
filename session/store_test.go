package session

import (
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if got, err := store.Get(); err != nil || got != "" {
		t.Fatalf("empty store: got %q, err %v", got, err)
	}
	if err := store.Save("h.p.s"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "h.p.s" {
		t.Fatalf("round trip: got %q", got)
	}

	// Saving again replaces, never appends.
	if err := store.Save("x.y.z"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := store.Get(); got != "x.y.z" {
		t.Fatalf("replace: got %q", got)
	}
}

func TestFileStoreClearIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if err := store.Save("h.p.s"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if got, err := store.Get(); err != nil || got != "" {
		t.Fatalf("after clear: got %q, err %v", got, err)
	}
}

func TestFileStoreSharedPath(t *testing.T) {
	dir := t.TempDir()
	writer := NewFileStore(dir)
	reader := NewFileStore(dir)

	if err := writer.Save("h.p.s"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := reader.Get(); got != "h.p.s" {
		t.Fatalf("second handle sees %q", got)
	}

	// A clear by one holder is seen by the other only on its next read.
	if err := reader.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := writer.Get(); got != "" {
		t.Fatalf("expected cleared slot, got %q", got)
	}
}

func TestMemoryStore(t *testing.T) {
	store := &MemoryStore{}
	if err := store.Save("abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := store.Get(); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := store.Get(); got != "" {
		t.Fatalf("after clear: got %q", got)
	}
}
