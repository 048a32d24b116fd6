package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	fs := NewFileStorage(path)
	ctx := context.Background()

	// Empty slot reads as (nil, nil).
	raw, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load empty slot: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected empty slot, got %q", raw)
	}

	if err := fs.Save(ctx, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err = fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(raw) != `{"id":1}` {
		t.Fatalf("unexpected slot content: %q", raw)
	}

	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	raw, err = fs.Load(ctx)
	if err != nil || raw != nil {
		t.Fatalf("slot not empty after clear: %q, %v", raw, err)
	}
}

func TestFileStorage_ClearMissingFile(t *testing.T) {
	fs := NewFileStorage(filepath.Join(t.TempDir(), "nope.json"))

	if err := fs.Clear(context.Background()); err != nil {
		t.Fatalf("clear on missing file must be a no-op, got %v", err)
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, Config{Driver: DriverFile, FilePath: filepath.Join(t.TempDir(), "s.json")}, "currentUser")
	if err != nil {
		t.Fatalf("file driver: %v", err)
	}
	if _, ok := s.(*FileStorage); !ok {
		t.Fatalf("expected *FileStorage, got %T", s)
	}

	// Unset driver falls back to file.
	s, err = New(ctx, Config{FilePath: filepath.Join(t.TempDir(), "s.json")}, "currentUser")
	if err != nil {
		t.Fatalf("default driver: %v", err)
	}
	if _, ok := s.(*FileStorage); !ok {
		t.Fatalf("expected *FileStorage, got %T", s)
	}

	if _, err := New(ctx, Config{Driver: "etcd"}, "currentUser"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
