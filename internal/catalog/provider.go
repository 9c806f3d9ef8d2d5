package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Provider hands out the current catalog snapshot. Implementations must be
// safe for concurrent use.
type Provider interface {
	Snapshot(ctx context.Context) (*Catalog, error)
}

// StaticProvider always returns the same snapshot.
type StaticProvider struct {
	c *Catalog
}

// NewStaticProvider wraps c.
func NewStaticProvider(c *Catalog) *StaticProvider {
	return &StaticProvider{c: c}
}

// Snapshot returns the wrapped catalog.
func (p *StaticProvider) Snapshot(context.Context) (*Catalog, error) {
	return p.c, nil
}

// FileProvider serves a catalog loaded from disk and reloads it on demand.
// Concurrent Refresh calls collapse into a single read. A failed reload keeps
// the previous snapshot.
type FileProvider struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	current *Catalog

	group singleflight.Group
}

var (
	_ Provider = (*StaticProvider)(nil)
	_ Provider = (*FileProvider)(nil)
)

// NewFileProvider returns a provider for the catalog at path. Nothing is read
// until the first Snapshot or Refresh.
func NewFileProvider(path string, logger *slog.Logger) *FileProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProvider{path: path, logger: logger}
}

// Path returns the file the provider reads.
func (p *FileProvider) Path() string { return p.path }

// Snapshot returns the current catalog, loading it first if needed.
func (p *FileProvider) Snapshot(ctx context.Context) (*Catalog, error) {
	p.mu.RLock()
	c := p.current
	p.mu.RUnlock()
	if c != nil {
		return c, nil
	}
	return p.Refresh(ctx)
}

// Refresh re-reads the catalog file and, on success, makes it the current
// snapshot.
func (p *FileProvider) Refresh(ctx context.Context) (*Catalog, error) {
	ch := p.group.DoChan("refresh", func() (any, error) {
		c, err := Load(p.path)
		if err != nil {
			p.logger.Warn("catalog reload failed", "path", p.path, "error", err)
			return nil, err
		}

		p.mu.Lock()
		prev := p.current
		p.current = c
		p.mu.Unlock()

		attrs := []any{"path", p.path, "models", c.Len()}
		if prev != nil {
			attrs = append(attrs, "previous", prev.Len())
		}
		p.logger.Info("catalog loaded", attrs...)
		return c, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("refreshing catalog: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Catalog), nil
	}
}
