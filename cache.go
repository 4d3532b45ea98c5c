package fireauth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/httpcc"
)

// Resource is a fetched payload together with how long it may be
// cached.
type Resource struct {
	Data   []byte
	MaxAge time.Duration
}

// Fetcher retrieves a remote resource and its cache lifetime.
// Production uses HTTPFetcher; tests supply stubs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Resource, error)
}

// HTTPFetcher fetches resources over HTTP, deriving the cache lifetime
// from the response's Cache-Control directives.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Resource, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Resource{}, newError(ErrCodeFetchFailed, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Resource{}, newError(ErrCodeFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Resource{}, newError(ErrCodeBadHTTPStatus, fmt.Errorf("%s returned %s", url, resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Resource{}, newError(ErrCodeFetchFailed, err)
	}

	return Resource{Data: data, MaxAge: cacheLifetime(resp.Header)}, nil
}

// cacheLifetime extracts s-maxage, falling back to max-age and then to
// zero. A zero lifetime means the next cache access refetches.
func cacheLifetime(h http.Header) time.Duration {
	value := h.Get("Cache-Control")
	if value == "" {
		return 0
	}
	directives, err := httpcc.ParseResponse(value)
	if err != nil {
		return 0
	}
	if sec, ok := directives.SMaxAge(); ok {
		return time.Duration(sec) * time.Second
	}
	if sec, ok := directives.MaxAge(); ok {
		return time.Duration(sec) * time.Second
	}
	return 0
}

type cacheEntry[T any] struct {
	content   T
	expiresAt time.Time
}

func (e cacheEntry[T]) expired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// HTTPCache keeps one TTL-bounded copy of a remote resource and serves
// it to concurrent callers, refreshing lazily with at most one fetch in
// flight. Readers only take the content lock; refreshers additionally
// serialize on a dedicated mutex so waiting to refresh never blocks
// readers of the current entry.
type HTTPCache[T any] struct {
	fetcher Fetcher
	url     string
	parse   func([]byte) (T, error)
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	entry cacheEntry[T]

	refreshMu sync.Mutex
}

// NewHTTPCache performs one synchronous fetch and fails if it fails;
// there is no cache-less fallback mode.
func NewHTTPCache[T any](ctx context.Context, fetcher Fetcher, url string, parse func([]byte) (T, error), logger *slog.Logger) (*HTTPCache[T], error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &HTTPCache[T]{
		fetcher: fetcher,
		url:     url,
		parse:   parse,
		logger:  logger,
		now:     time.Now,
	}
	entry, err := c.fetchEntry(ctx)
	if err != nil {
		return nil, newError(ErrCodeCacheInit, err)
	}
	c.entry = entry
	return c, nil
}

// Get returns the cached content, refreshing it first when expired.
func (c *HTTPCache[T]) Get(ctx context.Context) (T, error) {
	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if !entry.expired(c.now()) {
		return entry.content, nil
	}

	// Only one caller refreshes; the rest wait here.
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while this one waited.
	c.mu.RLock()
	entry = c.entry
	c.mu.RUnlock()
	if !entry.expired(c.now()) {
		return entry.content, nil
	}

	fresh, err := c.fetchEntry(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.entry = fresh
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "refreshed cached resource",
		slog.String("url", c.url),
		slog.Time("expires_at", fresh.expiresAt),
	)

	return fresh.content, nil
}

func (c *HTTPCache[T]) fetchEntry(ctx context.Context) (cacheEntry[T], error) {
	resource, err := c.fetcher.Fetch(ctx, c.url)
	if err != nil {
		return cacheEntry[T]{}, err
	}
	content, err := c.parse(resource.Data)
	if err != nil {
		return cacheEntry[T]{}, newError(ErrCodeBadPayload, err)
	}
	return cacheEntry[T]{
		content:   content,
		expiresAt: c.now().Add(resource.MaxAge),
	}, nil
}
