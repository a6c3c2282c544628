package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
	"github.com/yndnr/medqueue-go/pkg/crypto/adaptive"
)

// badgerLockMessage prefixes the error Badger returns when another
// handle holds the directory lock.
const badgerLockMessage = "Cannot acquire directory lock"

// BadgerEngine is the durable KV tier, backed by Badger v3.
//
// When a cipher is configured, values are sealed at rest with the key
// name bound as additional data, so a value moved under a different key
// fails to open.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	cipher adaptive.Cipher
	logger logger.Logger

	closed    atomic.Bool
	closeOnce sync.Once

	lastGCTime atomic.Int64 // Unix milliseconds
	gcRuns     atomic.Uint64

	stopCh chan struct{}
	doneCh chan struct{}
}

// BadgerOption configures a BadgerEngine.
type BadgerOption func(*BadgerEngine)

// WithCipher seals values at rest with c.
func WithCipher(c adaptive.Cipher) BadgerOption {
	return func(e *BadgerEngine) { e.cipher = c }
}

// WithBadgerLogger sets the engine logger.
func WithBadgerLogger(l logger.Logger) BadgerOption {
	return func(e *BadgerEngine) { e.logger = l }
}

// NewBadgerEngine opens (or creates) a Badger store in cfg.Dir.
func NewBadgerEngine(cfg BadgerConfig, opts ...BadgerOption) (*BadgerEngine, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}

	engine := &BadgerEngine{
		cfg:    cfg,
		logger: logger.Discard(),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(engine)
	}

	bopts := badger.DefaultOptions(cfg.Dir)
	bopts.Logger = &badgerLogger{logger: engine.logger.With("component", "badger")}
	if cfg.CacheSize > 0 {
		bopts.BlockCacheSize = cfg.CacheSize
	}
	if cfg.MemTableSize > 0 {
		bopts.MemTableSize = cfg.MemTableSize
	}
	if cfg.ValueLogFileSize > 0 {
		bopts.ValueLogFileSize = cfg.ValueLogFileSize
	}
	bopts.ValueThreshold = DefaultValueThreshold
	if cfg.ValueThreshold > 0 {
		bopts.ValueThreshold = cfg.ValueThreshold
	}
	bopts.NumMemtables = 2
	bopts.NumLevelZeroTables = 2
	bopts.NumLevelZeroTablesStall = 4
	bopts.SyncWrites = cfg.SyncWrites

	db, err := badger.Open(bopts)
	if err != nil {
		if strings.Contains(err.Error(), badgerLockMessage) {
			return nil, fmt.Errorf("badger: open %s: %w", cfg.Dir, ErrLocked)
		}
		return nil, fmt.Errorf("badger: open db: %w", err)
	}
	engine.db = db

	if cfg.GCInterval > 0 {
		go engine.gcLoop()
	} else {
		close(engine.doneCh)
	}

	engine.logger.Debug("badger engine opened",
		"dir", cfg.Dir,
		"sealed", engine.cipher != nil)

	return engine, nil
}

// Get retrieves a value by key.
func (e *BadgerEngine) Get(ctx context.Context, key string) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	if e.cipher == nil {
		return value, nil
	}
	plain, err := e.cipher.Decrypt(value, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("badger: open %q: %w", key, err)
	}
	return plain, nil
}

// Set stores a key-value pair.
func (e *BadgerEngine) Set(ctx context.Context, key string, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}

	if e.cipher != nil {
		sealed, err := e.cipher.Encrypt(value, []byte(key))
		if err != nil {
			return fmt.Errorf("badger: seal %q: %w", key, err)
		}
		value = sealed
	}

	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes a key.
func (e *BadgerEngine) Delete(ctx context.Context, key string) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// GC runs value-log garbage collection until nothing more can be rewritten.
func (e *BadgerEngine) GC(ctx context.Context) error {
	if e.closed.Load() {
		return ErrClosed
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := e.db.RunValueLogGC(e.cfg.GCThreshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) {
				break
			}
			return fmt.Errorf("gc: %w", err)
		}
		e.gcRuns.Add(1)
	}

	e.lastGCTime.Store(time.Now().UnixMilli())
	return nil
}

// Close stops the GC loop and closes the database. Safe to call twice.
func (e *BadgerEngine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.stopCh)
		<-e.doneCh

		if cerr := e.db.Close(); cerr != nil {
			err = fmt.Errorf("close db: %w", cerr)
		}
		e.logger.Debug("badger engine closed")
	})
	return err
}

// RegisterMetrics registers size and GC gauges with registry.
// Values are read at scrape time.
func (e *BadgerEngine) RegisterMetrics(registry prometheus.Registerer) *BadgerEngine {
	size := func(pick func(lsm, vlog int64) int64) func() float64 {
		return func() float64 {
			if e.closed.Load() {
				return 0
			}
			lsm, vlog := e.db.Size()
			return float64(pick(lsm, vlog))
		}
	}

	registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "medqueue",
			Subsystem: "badger",
			Name:      "lsm_size_bytes",
			Help:      "Badger LSM tree size in bytes",
		}, size(func(lsm, _ int64) int64 { return lsm })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "medqueue",
			Subsystem: "badger",
			Name:      "value_log_size_bytes",
			Help:      "Badger value log size in bytes",
		}, size(func(_, vlog int64) int64 { return vlog })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "medqueue",
			Subsystem: "badger",
			Name:      "last_gc_timestamp_seconds",
			Help:      "Unix timestamp of the last Badger GC run",
		}, func() float64 { return float64(e.lastGCTime.Load()) / 1000.0 }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "medqueue",
			Subsystem: "badger",
			Name:      "gc_rewrites_total",
			Help:      "Value log files rewritten by Badger garbage collection",
		}, func() float64 { return float64(e.gcRuns.Load()) }),
	)

	return e
}

func (e *BadgerEngine) gcLoop() {
	defer close(e.doneCh)

	ticker := time.NewTicker(e.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := e.GC(ctx); err != nil && !errors.Is(err, ErrClosed) {
				e.logger.Warn("auto gc failed", "error", err)
			}
			cancel()

		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger adapts logger.Logger to Badger's Logger interface.
// Badger's info output is noise for a CLI, so it is demoted to debug.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
