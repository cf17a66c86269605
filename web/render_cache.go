// ABOUTME: In-memory cache for markdown preview rendering, sha256-keyed.
// ABOUTME: Supports TTL-based expiry, concurrent access, and manual clearing.
package web

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// RenderFunc is the signature of a markdown rendering function the cache wraps.
type RenderFunc func(source string) (string, error)

type cacheEntry struct {
	html      string
	createdAt time.Time
}

// RenderCache wraps a markdown renderer with an in-memory cache so repeated
// previews of the same draft do not re-render. Keys are the sha256 of the
// source. Entries expire after the configured TTL.
type RenderCache struct {
	renderFn RenderFunc
	ttl      time.Duration
	entries  map[string]*cacheEntry
	mu       sync.RWMutex
}

// NewRenderCache creates a RenderCache wrapping the given rendering function.
func NewRenderCache(renderFn RenderFunc, ttl time.Duration) *RenderCache {
	return &RenderCache{
		renderFn: renderFn,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry),
	}
}

// Render returns the HTML for the given markdown source, from cache when the
// entry is fresh. Errors are never cached.
func (c *RenderCache) Render(source string) (string, error) {
	key := fmt.Sprintf("%x", sha256.Sum256([]byte(source)))

	c.mu.RLock()
	if entry, ok := c.entries[key]; ok {
		if time.Since(entry.createdAt) < c.ttl {
			html := entry.html
			c.mu.RUnlock()
			return html, nil
		}
	}
	c.mu.RUnlock()

	html, err := c.renderFn(source)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{html: html, createdAt: time.Now()}
	c.mu.Unlock()

	return html, nil
}

// Len returns the number of entries currently cached, including expired ones.
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *RenderCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}
