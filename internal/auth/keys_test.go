package auth

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("LoadOrGenerateKey: %v", err)
	}
	if len(key) != keyLength {
		t.Fatalf("key length: got %d, want %d", len(key), keyLength)
	}

	// A second load returns the same key.
	again, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("LoadOrGenerateKey (reload): %v", err)
	}
	if !bytes.Equal(key, again) {
		t.Error("reloaded key differs from generated key")
	}

	// Key file has restricted permissions.
	info, err := os.Stat(filepath.Join(dir, "auth.key"))
	if err != nil {
		t.Fatalf("stat auth.key: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("auth.key permissions: got %o, want 600", perm)
	}
}

func TestLoadOrGenerateKeyRejectsCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "auth.key"), []byte("garbage"), 0o600); err != nil {
		t.Fatalf("write corrupt key: %v", err)
	}

	if _, err := LoadOrGenerateKey(dir); err == nil {
		t.Error("expected error for corrupt key file")
	}
}
