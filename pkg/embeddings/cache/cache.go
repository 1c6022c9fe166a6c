// Package cache provides a durable, content-addressed store for text
// embeddings backed by SQLite.
//
// Entries are keyed by the content digest of the embedded text. The store
// is bounded: once it holds more than the configured maximum, Put deletes
// the entries with the oldest created_at until exactly the maximum remain.
// The timestamp is refreshed only on write, never on read, so eviction is
// oldest-by-insertion, not least-recently-used.
package cache

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/embeddings"
)

// DefaultMaxItems bounds the cache when no maximum is configured.
const DefaultMaxItems = 50000

// Config holds configuration for the embedding cache.
type Config struct {
	// DBPath is the path to the SQLite database file.
	// Use ":memory:" for an in-memory database.
	DBPath string

	// MaxItems is the maximum number of entries the cache may hold.
	// Defaults to DefaultMaxItems if zero.
	MaxItems int
}

// Cache is a bounded content-addressed embedding store. Every access,
// read or write, serializes through a single mutex.
type Cache struct {
	mu       sync.Mutex
	db       *sql.DB
	maxItems int
	logger   *zap.Logger
}

// New opens (creating if needed) the embedding cache at the configured path.
func New(c Config, logger *zap.Logger) (*Cache, error) {
	if c.DBPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	maxItems := c.MaxItems
	if maxItems == 0 {
		maxItems = DefaultMaxItems
	}
	if maxItems < 0 {
		return nil, fmt.Errorf("max items must be positive, got %d", maxItems)
	}

	db, err := sql.Open("sqlite3", c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			hash TEXT PRIMARY KEY,
			vector BLOB NOT NULL,
			created_at REAL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	logger.Debug("embedding cache opened",
		zap.String("db_path", c.DBPath),
		zap.Int("max_items", maxItems),
	)

	return &Cache{
		db:       db,
		maxItems: maxItems,
		logger:   logger,
	}, nil
}

// Get returns the cached vector for the given content digest. The second
// return value is false when the digest has no entry. Lookup is exact,
// no partial matching.
func (c *Cache) Get(hash string) ([]float32, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var blob []byte
	err := c.db.QueryRow(`SELECT vector FROM cache WHERE hash = ?`, hash).Scan(&blob)
	switch err {
	case nil:
	case sql.ErrNoRows:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("%w: reading %s: %v", embeddings.ErrCache, hash, err)
	}

	vec, err := deserializeFloat32(blob)
	if err != nil {
		return nil, false, fmt.Errorf("%w: decoding %s: %v", embeddings.ErrCache, hash, err)
	}

	return vec, true, nil
}

// Put upserts the vector under the given digest with the current timestamp,
// then enforces the size bound by deleting the oldest entries beyond the
// maximum. Upsert and eviction run in one transaction so a crash rolls
// back to the pre-put state rather than leaving a half-applied eviction.
func (c *Cache) Put(hash string, vec []float32) error {
	blob := serializeFloat32(vec)
	ts := float64(time.Now().UnixNano()) / float64(time.Second)

	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", embeddings.ErrCache, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`REPLACE INTO cache (hash, vector, created_at) VALUES (?, ?, ?)`,
		hash, blob, ts,
	); err != nil {
		return fmt.Errorf("%w: writing %s: %v", embeddings.ErrCache, hash, err)
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM cache`).Scan(&count); err != nil {
		return fmt.Errorf("%w: counting entries: %v", embeddings.ErrCache, err)
	}

	if count > c.maxItems {
		toRemove := count - c.maxItems
		if _, err := tx.Exec(`
			DELETE FROM cache WHERE hash IN (
				SELECT hash FROM cache
				ORDER BY created_at ASC
				LIMIT ?
			)
		`, toRemove); err != nil {
			return fmt.Errorf("%w: evicting %d entries: %v", embeddings.ErrCache, toRemove, err)
		}

		c.logger.Debug("evicted oldest cache entries",
			zap.Int("removed", toRemove),
			zap.Int("max_items", c.maxItems),
		)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", embeddings.ErrCache, err)
	}

	return nil
}

// Count returns the number of entries currently stored.
func (c *Cache) Count() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting entries: %v", embeddings.ErrCache, err)
	}

	return count, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// serializeFloat32 converts a float32 slice to a little-endian byte slice.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// deserializeFloat32 converts a little-endian byte slice back to a float32 slice.
func deserializeFloat32(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob length %d: must be divisible by 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
