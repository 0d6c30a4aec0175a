package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, KeyToken, "t1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, KeyLanguage, "en"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, err := s.Get(ctx, KeyToken); err != nil || v != "t1" {
		t.Fatalf("Get = %q, %v", v, err)
	}
	if err := s.Set(ctx, KeyToken, "t2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _ := s.Get(ctx, KeyToken); v != "t2" {
		t.Fatalf("overwrite not visible, got %q", v)
	}
	if err := s.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
	if _, err := s.Get(ctx, KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete: err = %v", err)
	}
	if got := GetOr(ctx, s, KeyLanguage, "vi"); got != "en" {
		t.Fatalf("GetOr = %q, other keys must survive deletes", got)
	}
	if got := GetOr(ctx, s, KeyRememberedEmail, "none"); got != "none" {
		t.Fatalf("GetOr fallback = %q", got)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	exerciseStore(t, fs)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	first, _ := NewFileStore(path)
	if err := first.Set(context.Background(), KeyToken, "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second, _ := NewFileStore(path)
	v, err := second.Get(context.Background(), KeyToken)
	if err != nil || v != "persisted" {
		t.Fatalf("reopened store Get = %q, %v", v, err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs, _ := NewFileStore(path)
	if _, err := fs.Get(context.Background(), KeyToken); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	s, closeFn, err := Open(ctx, Options{Driver: "mongo", MongoURI: uri, MongoDatabase: "medischedule_portal_test", Profile: t.Name()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn(ctx)
	_ = s.Delete(ctx, KeyLanguage)
	exerciseStore(t, s)
	_ = s.Delete(ctx, KeyLanguage)
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, _, err := Open(context.Background(), Options{Driver: "redis"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if _, _, err := Open(context.Background(), Options{Driver: "mongo"}); err == nil {
		t.Fatal("expected error for mongo without uri")
	}
}
