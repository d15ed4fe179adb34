package storage

import (
	"bytes"
	"database/sql"
	"errors"
	"testing"

	"depscope/internal/depgraph"
	"depscope/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
	db, err := Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewResultCache(testDB(t))
	if err != nil {
		t.Fatalf("NewResultCache failed: %v", err)
	}

	payload := []byte(`{"hotspots":[],"stats":{"nodeCount":2}}`)
	if err := cache.Put("abc123", payload, 2, 1, 3600); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, found, err := cache.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("entry not found after Put")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload mismatch:\n got %s\nwant %s", got, payload)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, err := NewResultCache(testDB(t))
	if err != nil {
		t.Fatalf("NewResultCache failed: %v", err)
	}

	_, found, err := cache.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("found=true for missing key")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewResultCache(testDB(t))
	if err != nil {
		t.Fatalf("NewResultCache failed: %v", err)
	}

	// TTL in the past: the entry must read back as a miss.
	if err := cache.Put("stale", []byte("{}"), 1, 1, -10); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	_, found, err := cache.Get("stale")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expired entry returned")
	}
}

func TestCachePrune(t *testing.T) {
	cache, err := NewResultCache(testDB(t))
	if err != nil {
		t.Fatalf("NewResultCache failed: %v", err)
	}

	if err := cache.Put("old", []byte("{}"), 1, 1, -10); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put("fresh", []byte("{}"), 1, 1, 3600); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	removed, err := cache.Prune()
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d rows, want 1", removed)
	}

	if _, found, _ := cache.Get("fresh"); !found {
		t.Error("fresh entry pruned")
	}
}

func TestFingerprintCanonical(t *testing.T) {
	a := []depgraph.Edge{{From: "x", To: "y"}, {From: "y", To: "z"}}
	b := []depgraph.Edge{{From: "y", To: "z"}, {From: "x", To: "y"}, {From: "x", To: "y"}}

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("fingerprint depends on edge order or duplicates")
	}

	c := []depgraph.Edge{{From: "x", To: "y"}}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("different graphs share a fingerprint")
	}
}

func TestFingerprintSeparatorSafety(t *testing.T) {
	// "a"->"bc" and "ab"->"c" must not collide.
	a := []depgraph.Edge{{From: "a", To: "bc"}}
	b := []depgraph.Edge{{From: "ab", To: "c"}}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("fingerprint boundary collision")
	}
}

func TestWithTxRollback(t *testing.T) {
	db := testDB(t)

	failure := errors.New("boom")
	err := db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO result_cache
				(fingerprint, payload, node_count, edge_count, expires_at, created_at)
			VALUES ('tx', x'00', 0, 0, '2099-01-01T00:00:00Z', '2020-01-01T00:00:00Z')
		`); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("WithTx error = %v, want the callback error", err)
	}

	var count int
	if err := db.Conn().QueryRow(
		"SELECT COUNT(*) FROM result_cache WHERE fingerprint = 'tx'").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Error("rolled-back insert is visible")
	}
}
