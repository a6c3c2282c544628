package storage

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
	ErrLocked      = errors.New("store directory is locked by another process")
)

// KV is a small string-keyed value store.
//
// Implementations must be safe for concurrent use. A Delete of a missing
// key is not an error.
type KV interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a key-value pair, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases the store.
	Close() error
}

// BadgerConfig contains Badger tuning parameters for a client-side store.
type BadgerConfig struct {
	// Dir is the storage directory.
	Dir string

	// GCInterval is the interval between automatic value-log GC runs.
	// Zero disables the background loop.
	GCInterval time.Duration

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	CacheSize int64

	// MemTableSize is the memtable size in bytes.
	MemTableSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	ValueLogFileSize int64

	// ValueThreshold is the largest value kept inline in the LSM tree.
	// It must fit in one write batch, which badger sizes from MemTableSize.
	ValueThreshold int64

	// SyncWrites fsyncs after each write. A token written by login must
	// survive a crash right after the command returns.
	SyncWrites bool
}

// DefaultValueThreshold keeps tokens and preferences inline.
const DefaultValueThreshold = 1 << 10 // 1KB

// DefaultBadgerConfig returns a small-footprint configuration.
func DefaultBadgerConfig(dir string) BadgerConfig {
	return BadgerConfig{
		Dir:              dir,
		GCInterval:       10 * time.Minute,
		GCThreshold:      0.5,
		CacheSize:        4 << 20,  // 4MB
		MemTableSize:     4 << 20,  // 4MB
		ValueLogFileSize: 16 << 20, // 16MB
		ValueThreshold:   DefaultValueThreshold,
		SyncWrites:       true,
	}
}
