package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/config"
)

// ErrNotFound is returned when an asset is absent from the cache and the
// origin cannot serve it either.
var ErrNotFound = errors.New("asset not found")

// PrecachePaths lists the application shell assets fetched eagerly so the UI
// keeps working when the origin is unreachable.
var PrecachePaths = []string{
	"/",
	"/index.html",
	"/css/styles.css",
	"/js/database.js",
	"/js/inventory.js",
	"/js/pos.js",
	"/js/app.js",
	"/manifest.json",
}

type entry struct {
	body        []byte
	contentType string
}

// Cache serves static assets cache-first with a network fallback. Entries are
// keyed by path and scoped to a version string; bumping the version drops all
// cached entries.
type Cache struct {
	client  *resty.Client
	logger  *zap.Logger
	version string

	mu      sync.RWMutex
	entries map[string]entry
}

// NewCache builds an asset cache fetching from the configured origin.
func NewCache(cfg config.AssetsConfig, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.OriginURL, "/")).
		SetTimeout(15 * time.Second)

	return &Cache{
		client:  restyClient,
		logger:  logger.Named("assets"),
		version: cfg.CacheVersion,
		entries: make(map[string]entry),
	}
}

// Version returns the active cache version.
func (c *Cache) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Precache eagerly fetches the application shell assets. Individual fetch
// failures are logged and skipped so one missing asset does not block the
// rest.
func (c *Cache) Precache(ctx context.Context) error {
	var failed int
	for _, path := range PrecachePaths {
		if _, _, err := c.fetch(ctx, path); err != nil {
			c.logger.Warn("precache fetch failed", zap.String("path", path), zap.Error(err))
			failed++
		}
	}
	if failed == len(PrecachePaths) {
		return fmt.Errorf("precache failed for all %d assets", failed)
	}
	c.logger.Info("precache complete",
		zap.Int("cached", len(PrecachePaths)-failed),
		zap.Int("failed", failed),
	)
	return nil
}

// Get returns an asset body and content type, serving from the cache when
// possible and falling back to the origin otherwise.
func (c *Cache) Get(ctx context.Context, path string) ([]byte, string, error) {
	c.mu.RLock()
	cached, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return cached.body, cached.contentType, nil
	}
	return c.fetch(ctx, path)
}

// Invalidate switches to a new cache version, dropping every cached entry
// when the version actually changes.
func (c *Cache) Invalidate(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version == c.version {
		return
	}
	c.logger.Info("cache version changed",
		zap.String("old", c.version),
		zap.String("new", version),
	)
	c.version = version
	c.entries = make(map[string]entry)
}

func (c *Cache) fetch(ctx context.Context, path string) ([]byte, string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, "", fmt.Errorf("fetch asset %s: %w", path, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, "", fmt.Errorf("fetch asset %s: status %d", path, resp.StatusCode())
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")

	c.mu.Lock()
	c.entries[path] = entry{body: body, contentType: contentType}
	c.mu.Unlock()

	return body, contentType, nil
}
