package page

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/yndnr/medqueue-go/internal/cli/config"
	"github.com/yndnr/medqueue-go/internal/cli/connection"
	"github.com/yndnr/medqueue-go/internal/client/guard"
	"github.com/yndnr/medqueue-go/internal/client/resource"
	"github.com/yndnr/medqueue-go/internal/client/session"
	"github.com/yndnr/medqueue-go/internal/client/theme"
	"github.com/yndnr/medqueue-go/internal/client/tokenstore"
	"github.com/yndnr/medqueue-go/internal/core/domain"
	"github.com/yndnr/medqueue-go/internal/infra/tlsroots"
	"github.com/yndnr/medqueue-go/internal/storage"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
	"github.com/yndnr/medqueue-go/internal/telemetry/metric"
	"github.com/yndnr/medqueue-go/pkg/crypto/adaptive"
)

// Layout of cfg.Storage.Dir.
const (
	dbDir   = "db"
	keyFile = "state.key"
)

// Context is the client state for one process.
type Context struct {
	Config  *config.CLIConfig
	Logger  logger.Logger
	Metrics *metric.Registry

	Durable *storage.BadgerEngine
	Tab     *storage.MemoryKV

	Transport *connection.HTTPClient
	Tokens    *tokenstore.Store
	Session   *session.Client
	Guard     *guard.Guard
	Resources *resource.Client
	Theme     *theme.Manager

	closeOnce sync.Once
	closeErr  error
}

// Open creates the client context from cfg. The caller must Close it.
func Open(ctx context.Context, cfg *config.CLIConfig, log logger.Logger) (*Context, error) {
	if log == nil {
		log = logger.Discard()
	}

	metrics := metric.NewRegistry()

	transportOpts := []connection.Option{
		connection.WithTimeout(cfg.Server.Timeout),
		connection.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		connection.WithLogger(log),
		connection.WithMetrics(metrics),
	}
	if cfg.Server.CAFile != "" {
		pool, err := tlsroots.LoadCAFile(cfg.Server.CAFile)
		if err != nil {
			return nil, fmt.Errorf("load CA file: %w", err)
		}
		transportOpts = append(transportOpts, connection.WithRootCAs(pool))
	}
	transport := connection.NewHTTPClient(cfg.Server.BaseURL, transportOpts...)

	durable, err := openDurable(cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	durable.RegisterMetrics(metrics.Registerer())

	tab := storage.NewMemoryKV()
	tokens := tokenstore.New(durable, tab, tokenstore.WithLogger(log))
	sess := session.New(transport, tokens,
		session.WithLogger(log),
		session.WithMetrics(metrics),
		session.WithRemember(cfg.Session.Remember),
	)

	themes := theme.NewManager(durable, theme.WithLogger(log))
	if _, err := themes.Init(ctx); err != nil {
		_ = durable.Close()
		return nil, err
	}

	log.Debug("page context opened",
		"base_url", transport.BaseURL(),
		"storage", cfg.Storage.Dir,
		"encrypted", cfg.Storage.Encrypt,
	)

	return &Context{
		Config:    cfg,
		Logger:    log,
		Metrics:   metrics,
		Durable:   durable,
		Tab:       tab,
		Transport: transport,
		Tokens:    tokens,
		Session:   sess,
		Guard:     guard.New(sess),
		Resources: resource.New(transport, sess),
		Theme:     themes,
	}, nil
}

func openDurable(cfg config.StorageConfig, log logger.Logger) (*storage.BadgerEngine, error) {
	opts := []storage.BadgerOption{storage.WithBadgerLogger(log)}

	if cfg.Encrypt {
		key, err := storage.LoadOrCreateKey(filepath.Join(cfg.Dir, keyFile))
		if err != nil {
			return nil, domain.ErrStorageKey.WithDetails(err.Error()).WithCause(err)
		}
		cipher, err := adaptive.New(key)
		if err != nil {
			return nil, fmt.Errorf("init state cipher: %w", err)
		}
		opts = append(opts, storage.WithCipher(cipher))
	}

	engine, err := storage.NewBadgerEngine(storage.DefaultBadgerConfig(filepath.Join(cfg.Dir, dbDir)), opts...)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	return engine, nil
}

// Close drops the tab tier and closes the durable store.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		c.Logger.Debug("dropping tab tier", "entries", c.Tab.Len())
		_ = c.Tab.Close()
		c.closeErr = c.Durable.Close()
	})
	return c.closeErr
}
