package semantic

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/trace"
)

// BuildFunc builds the model of one project root.
type BuildFunc func(ctx context.Context, root string) (Model, error)

// Cache keeps one model per project root for the whole run. Concurrent Get
// calls for one root share a single build; failed builds are not cached.
type Cache struct {
	group  singleflight.Group
	mu     sync.RWMutex
	models map[string]Model
	builds int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{models: make(map[string]Model)}
}

// Get returns the model for root, building it on first use.
func (c *Cache) Get(ctx context.Context, root string, build BuildFunc) (Model, error) {
	tracer := trace.FromContext(ctx)
	c.mu.RLock()
	m, ok := c.models[root]
	c.mu.RUnlock()
	if ok {
		trace.Point(tracer, trace.ScopePass, "semantic-cache", "hit", map[string]string{"root": root})
		return m, nil
	}
	v, err, shared := c.group.Do(root, func() (any, error) {
		c.mu.RLock()
		m, ok := c.models[root]
		c.mu.RUnlock()
		if ok {
			return m, nil
		}
		span := trace.Begin(tracer, trace.ScopePass, "semantic", trace.CurrentSpan(ctx).SpanID)
		m, err := build(ctx, root)
		if err != nil {
			span.End("failed")
			return nil, fmt.Errorf("semantic model for %s: %w", root, err)
		}
		span.End("")
		c.mu.Lock()
		c.models[root] = m
		c.builds++
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		trace.Point(tracer, trace.ScopePass, "semantic-cache", "shared", map[string]string{"root": root})
	}
	model, _ := v.(Model)
	return model, nil
}

// Builds reports how many models were built; used by tests and timings.
func (c *Cache) Builds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builds
}
