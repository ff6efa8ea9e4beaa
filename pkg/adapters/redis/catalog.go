// Package redis caches catalog definitions in Redis in front of a slower
// upstream, typically the directory-backed catalog on shared storage.
//
// It is a cache, not a store: Redis being unreachable degrades every call to
// the upstream instead of failing it, and definition lookups that miss are
// filled from the upstream and written back with a TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/ports"
)

const (
	defaultPrefix = "breadboard:catalog:"
	defaultTTL    = time.Hour
)

// Catalog decorates an upstream ports.Catalog with per-definition Redis
// snapshots.
type Catalog struct {
	client   *backend.Client
	upstream ports.Catalog
	prefix   string
	ttl      time.Duration
	logger   *slog.Logger
}

var _ ports.Catalog = (*Catalog)(nil)

// Option configures the Catalog.
type Option func(*Catalog)

// WithTTL sets how long cached definitions live. Zero keeps them until
// invalidated.
func WithTTL(ttl time.Duration) Option {
	return func(c *Catalog) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix, e.g. "custom:app:".
func WithPrefix(prefix string) Option {
	return func(c *Catalog) {
		c.prefix = prefix
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewFromClient wraps upstream with a cache on an existing Redis client.
func NewFromClient(client *backend.Client, upstream ports.Catalog, opts ...Option) *Catalog {
	c := &Catalog{
		client:   client,
		upstream: upstream,
		prefix:   defaultPrefix,
		ttl:      defaultTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) key(id uuid.UUID) string {
	return c.prefix + id.String()
}

// Resolve returns the cached definition when present, otherwise asks the
// upstream and writes the result back. Redis failures and corrupt snapshots
// count as misses.
func (c *Catalog) Resolve(ctx context.Context, id uuid.UUID) (*catalog.Definition, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var def catalog.Definition
		if err := json.Unmarshal(raw, &def); err == nil {
			return &def, nil
		}
		c.logger.Warn("discarding corrupt cached definition", "id", id, "error", err)
	case !errors.Is(err, backend.Nil):
		c.logger.Warn("catalog cache read failed", "id", id, "error", err)
	}

	def, err := c.upstream.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, def)
	return def, nil
}

// List always consults the upstream, which owns catalog membership, and
// refreshes the per-definition snapshots on the way through.
func (c *Catalog) List(ctx context.Context) ([]*catalog.Definition, error) {
	defs, err := c.upstream.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		c.store(ctx, def)
	}
	return defs, nil
}

// Invalidate drops cached snapshots, e.g. after the upstream reloaded.
func (c *Catalog) Invalidate(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached definitions: %w", err)
	}
	return nil
}

func (c *Catalog) store(ctx context.Context, def *catalog.Definition) {
	raw, err := json.Marshal(def)
	if err != nil {
		c.logger.Warn("failed to encode definition for cache", "id", def.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(def.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "id", def.ID, "error", err)
	}
}
