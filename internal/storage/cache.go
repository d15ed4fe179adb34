package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ResultCache stores zstd-compressed JSON analysis payloads keyed by
// input fingerprint. Cache misses, expired rows, and storage failures
// all look the same to callers: run the analysis again.
type ResultCache struct {
	db      *DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewResultCache creates a cache backed by an open database.
func NewResultCache(db *DB) (*ResultCache, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ResultCache{db: db, encoder: encoder, decoder: decoder}, nil
}

// Get retrieves the cached payload for a fingerprint. Returns found=false
// when the entry is missing or expired; expired rows are deleted on read.
func (c *ResultCache) Get(fingerprint string) ([]byte, bool, error) {
	var payload []byte
	var expiresAt string

	err := c.db.conn.QueryRow(`
		SELECT payload, expires_at
		FROM result_cache
		WHERE fingerprint = ?
	`, fingerprint).Scan(&payload, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("result cache lookup failed: %w", err)
	}

	expiresAtTime, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return nil, false, fmt.Errorf("invalid expires_at format: %w", err)
	}
	if time.Now().After(expiresAtTime) {
		c.db.conn.Exec("DELETE FROM result_cache WHERE fingerprint = ?", fingerprint)
		return nil, false, nil
	}

	decompressed, err := c.decoder.DecodeAll(payload, nil)
	if err != nil {
		// Corrupt row; drop it and treat as a miss.
		c.db.conn.Exec("DELETE FROM result_cache WHERE fingerprint = ?", fingerprint)
		return nil, false, nil
	}
	return decompressed, true, nil
}

// Put stores a payload under a fingerprint with the given TTL.
func (c *ResultCache) Put(fingerprint string, payload []byte, nodeCount, edgeCount, ttlSeconds int) error {
	now := time.Now()
	expiresAt := now.Add(time.Duration(ttlSeconds) * time.Second)
	compressed := c.encoder.EncodeAll(payload, nil)

	_, err := c.db.conn.Exec(`
		INSERT OR REPLACE INTO result_cache
			(fingerprint, payload, node_count, edge_count, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, fingerprint, compressed, nodeCount, edgeCount,
		expiresAt.Format(time.RFC3339), now.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Prune deletes all expired entries and returns the number removed.
func (c *ResultCache) Prune() (int64, error) {
	res, err := c.db.conn.Exec(`
		DELETE FROM result_cache WHERE expires_at < ?
	`, time.Now().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}
