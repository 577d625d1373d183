package studio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	domainstudio "github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
)

func writeStyles(t *testing.T, dir string, content string) string {
	t.Helper()

	path := filepath.Join(dir, "styles.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write styles file: %v", err)
	}
	return path
}

const stylesTOML = `
version = 1

[[styles]]
id = "neon"
name = "Neon noir"
palette = ["#0f0f23", "#ff2a6d"]
instructions = "High contrast, dark background."

[[styles]]
id = "pastel"
name = "Pastel sketch"
palette = ["#ffd6e0", "#c1fba4"]
`

func TestStyleStoreLoadsFile(t *testing.T) {
	path := writeStyles(t, t.TempDir(), stylesTOML)

	store, err := NewStyleStore(path)
	if err != nil {
		t.Fatalf("NewStyleStore() error = %v", err)
	}

	neon, err := store.Get("neon")
	if err != nil {
		t.Fatalf("Get(neon) error = %v", err)
	}
	if neon.Name != "Neon noir" || len(neon.Palette) != 2 {
		t.Fatalf("neon = %+v", neon)
	}

	// Empty id falls back to the first profile in file order.
	first, err := store.Get("")
	if err != nil {
		t.Fatalf("Get(\"\") error = %v", err)
	}
	if first.ID != "neon" {
		t.Fatalf("default profile = %q, want neon", first.ID)
	}

	if _, err := store.Get("missing"); !errors.Is(err, domainstudio.ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	profiles := store.List()
	if len(profiles) != 2 || profiles[1].ID != "pastel" {
		t.Fatalf("List() = %+v", profiles)
	}
}

func TestStyleStoreDefaultsWithoutFile(t *testing.T) {
	store, err := NewStyleStore("")
	if err != nil {
		t.Fatalf("NewStyleStore() error = %v", err)
	}
	if len(store.List()) == 0 {
		t.Fatal("expected built-in profiles")
	}
	if _, err := store.Get(""); err != nil {
		t.Fatalf("Get(\"\") error = %v", err)
	}
}

func TestStyleStoreRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{"wrong version", "version = 2\n\n[[styles]]\nid = \"a\"\nname = \"A\"\n"},
		{"no profiles", "version = 1\n"},
		{"missing id", "version = 1\n\n[[styles]]\nname = \"A\"\n"},
		{"missing name", "version = 1\n\n[[styles]]\nid = \"a\"\n"},
		{"duplicate id", "version = 1\n\n[[styles]]\nid = \"a\"\nname = \"A\"\n\n[[styles]]\nid = \"a\"\nname = \"B\"\n"},
		{"not toml", "{\"version\": 1}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeStyles(t, filepath.Join(dir, ""), tc.content)
			if _, err := NewStyleStore(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestStyleStoreReloadKeepsLastGoodSet(t *testing.T) {
	dir := t.TempDir()
	path := writeStyles(t, dir, stylesTOML)

	store, err := NewStyleStore(path)
	if err != nil {
		t.Fatalf("NewStyleStore() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("version = 1\n"), 0o644); err != nil {
		t.Fatalf("rewrite styles file: %v", err)
	}
	if err := store.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error for empty profile set")
	}

	// A failed reload must not disturb the profiles already in memory.
	if _, err := store.Get("neon"); err != nil {
		t.Fatalf("Get(neon) after failed reload error = %v", err)
	}
}

func TestStyleStoreWatchPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	path := writeStyles(t, dir, stylesTOML)

	store, err := NewStyleStore(path)
	if err != nil {
		t.Fatalf("NewStyleStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := store.Watch(ctx); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	updated := `
version = 1

[[styles]]
id = "mono"
name = "Monochrome"
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite styles file: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := store.Get("mono"); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("watcher never applied the updated profile set")
}
