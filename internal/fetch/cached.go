// Package fetch - cached.go provides URL fetching with in-memory caching.
package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched page stays fresh. Reference
// documents rarely change within a single run of the pipeline, so the TTL
// mostly guards repeated URLs across requests in long-lived processes.
const DefaultCacheTTL = 1 * time.Hour

// CachedFetcher wraps URL fetching with an in-memory cache so the same URL
// appearing in multiple reference styles is fetched once.
type CachedFetcher struct {
	options   *Options
	cacheTTL  time.Duration
	skipCache bool

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	result    *Result
	fetchedAt time.Time
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultCacheTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	return &CachedFetcher{
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
		cache:     make(map[string]cacheEntry),
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, returning the cached result if one is fresh.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if !f.skipCache {
		if cached := f.lookup(urlStr); cached != nil {
			return &CachedResult{Result: cached, FromCache: true}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)
	text, _ := ExtractMainText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	result.Text = text
	result.Title = ExtractTitle(result.HTML)

	f.store(urlStr, result)

	return &CachedResult{Result: result, FromCache: false}, nil
}

// Invalidate drops a URL from the cache, forcing a re-fetch on next request.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.cache, urlStr)
}

func (f *CachedFetcher) lookup(urlStr string) *Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.cache[urlStr]
	if !ok || time.Since(entry.fetchedAt) > f.cacheTTL {
		return nil
	}
	return entry.result
}

func (f *CachedFetcher) store(urlStr string, result *Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache[urlStr] = cacheEntry{result: result, fetchedAt: time.Now()}
}
