package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sora-estate/maisoku/internal/listing"
	"golang.org/x/sync/singleflight"
)

// CachedExtractor wraps an Extractor with an in-memory, process-lifetime
// cache keyed by image content and target language. Entries are never
// evicted; unbounded growth is an accepted tradeoff for a single-session
// tool. Concurrent misses for the same key are collapsed into one upstream
// call, so insert-on-miss is atomic per key.
type CachedExtractor struct {
	inner Extractor

	mu      sync.RWMutex
	entries map[cacheKey]*listing.Record
	group   singleflight.Group
}

type cacheKey struct {
	hash string
	lang listing.Language
}

// NewCachedExtractor creates a caching decorator around inner.
func NewCachedExtractor(inner Extractor) *CachedExtractor {
	return &CachedExtractor{
		inner:   inner,
		entries: make(map[cacheKey]*listing.Record),
	}
}

// hashImage identifies an image by the SHA-256 of its full content. A
// truncated byte prefix would be cheaper but lets two distinct flyers
// sharing a prefix collide, so the full hash is used.
func hashImage(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Extract implements the Extractor interface with caching. Failed calls are
// never written to the cache.
func (c *CachedExtractor) Extract(ctx context.Context, imageData []byte, mimeType string, lang listing.Language) (*listing.Record, error) {
	key := cacheKey{hash: hashImage(imageData), lang: lang}

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		log.Debug().Str("hash", key.hash[:16]).Str("language", string(lang)).Msg("extraction cache hit")
		return cached, nil
	}

	v, err, _ := c.group.Do(key.hash+"|"+string(lang), func() (any, error) {
		rec, err := c.inner.Extract(ctx, imageData, mimeType, lang)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = rec
		c.mu.Unlock()
		log.Debug().Str("hash", key.hash[:16]).Str("language", string(lang)).Msg("cached extraction result")
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*listing.Record), nil
}

// Len reports the number of cached entries.
func (c *CachedExtractor) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
