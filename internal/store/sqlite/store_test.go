package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{"users", "books", "reviews"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestPragmasApplyToEveryPoolConnection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Hold two connections at once so the pool has to open a second one.
	conn1, err := s.db.Conn(ctx)
	if err != nil {
		t.Fatalf("conn 1: %v", err)
	}
	defer conn1.Close()

	conn2, err := s.db.Conn(ctx)
	if err != nil {
		t.Fatalf("conn 2: %v", err)
	}
	defer conn2.Close()

	for i, conn := range []*sql.Conn{conn1, conn2} {
		var fk int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("conn %d: query foreign_keys: %v", i+1, err)
		}
		if fk != 1 {
			t.Errorf("conn %d: foreign_keys = %d, want 1", i+1, fk)
		}
	}

	// An orphan insert must be rejected on the second connection too.
	_, err = conn2.ExecContext(ctx, `
		INSERT INTO reviews (creada_en, puntuacion, id_usuario, id_libro, texto)
		VALUES (?, 3, 999, 999, '')`,
		formatTime(time.Now()))
	if err == nil {
		t.Fatal("orphan review inserted on second pool connection")
	}
	if !isForeignKeyViolation(err) {
		t.Errorf("expected a foreign key violation, got %v", err)
	}
}

func TestFormatTimeSortsChronologically(t *testing.T) {
	// A fraction that is a prefix of another must still sort before it.
	base := time.Date(2026, 1, 2, 3, 4, 5, 120_000_000, time.UTC)
	later := base.Add(5 * time.Millisecond)

	a, b := formatTime(base), formatTime(later)
	if !(a < b) {
		t.Errorf("formatTime order: %q should sort before %q", a, b)
	}
	if len(a) != len(b) {
		t.Errorf("formatTime width varies: %q vs %q", a, b)
	}
	if strings.HasSuffix(a, "Z") != strings.HasSuffix(b, "Z") {
		t.Errorf("inconsistent zone suffix: %q vs %q", a, b)
	}

	got, err := parseTime(a)
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !got.Equal(base) {
		t.Errorf("round-trip: got %v, want %v", got, base)
	}
}

func TestOpenIdempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening an existing database must not fail on the schema.
	s, err = Open(dbPath, logger)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s.Close()
}
