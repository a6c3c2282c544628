package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/medqueue-go/internal/storage"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
)

// Key is the slot name used in both tiers.
const Key = "token"

// Store reads and writes the bearer token.
//
// Concurrent Saves are last-write-wins in the order they reach the tier,
// not the order they were issued.
type Store struct {
	durable storage.KV
	session storage.KV
	logger  logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store over the given tiers.
func New(durable, session storage.KV, opts ...Option) *Store {
	s := &Store{
		durable: durable,
		session: session,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the durable-tier token if present, else the session-tier
// token. A tier that fails to read counts as empty.
func (s *Store) Get() (string, bool) {
	ctx := context.Background()
	if t, ok := s.read(ctx, s.durable, "durable"); ok {
		return t, true
	}
	return s.read(ctx, s.session, "session")
}

func (s *Store) read(ctx context.Context, kv storage.KV, tier string) (string, bool) {
	v, err := kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("token read failed", "tier", tier, "error", err)
		}
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// Save writes token to the durable tier when remember is set, otherwise
// to the session tier.
func (s *Store) Save(token string, remember bool) error {
	kv, tier := s.session, "session"
	if remember {
		kv, tier = s.durable, "durable"
	}
	if err := kv.Set(context.Background(), Key, []byte(token)); err != nil {
		return fmt.Errorf("save token to %s tier: %w", tier, err)
	}
	s.logger.Debug("token saved", "tier", tier)
	return nil
}

// Remove clears both tiers. Removing an absent token is not an error.
// Both tiers are attempted even if the first fails.
func (s *Store) Remove() error {
	ctx := context.Background()
	var errs []error
	if err := s.durable.Delete(ctx, Key); err != nil {
		errs = append(errs, fmt.Errorf("durable tier: %w", err))
	}
	if err := s.session.Delete(ctx, Key); err != nil {
		errs = append(errs, fmt.Errorf("session tier: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("remove token: %w", errors.Join(errs...))
	}
	s.logger.Debug("token removed")
	return nil
}
