package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/typescatter/pkg/buildinfo"
	"github.com/matzehuels/typescatter/pkg/cache"
	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/observability"
)

// maxBodySize caps fetched asset bodies.
const maxBodySize = 8 << 20

// Fetcher downloads small assets over HTTP with retry and caching.
type Fetcher struct {
	Client  *http.Client
	Cache   cache.Cache
	TTL     time.Duration
	Backoff Backoff
}

// NewFetcher returns a Fetcher with a 15s client timeout and
// [DefaultBackoff]. A nil cache disables caching.
func NewFetcher(c cache.Cache, ttl time.Duration) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		Client:  &http.Client{Timeout: 15 * time.Second},
		Cache:   c,
		TTL:     ttl,
		Backoff: DefaultBackoff,
	}
}

// Get returns the body at rawURL, consulting the cache first.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.AssetKey(rawURL)
	if data, hit, err := f.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "asset")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "asset")

	var body []byte
	err := f.Backoff.Retry(ctx, func() error {
		var err error
		body, err = f.do(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := f.Cache.Set(ctx, key, body, f.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "asset", len(body))
	}
	return body, nil
}

func (f *Fetcher) do(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := f.Client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		code := errors.ErrCodeNetwork
		if os.IsTimeout(err) {
			code = errors.ErrCodeTimeout
		}
		return nil, Retryable(errors.Wrap(code, fmt.Errorf("%w: %v", cache.ErrNetwork, err), "fetch %s", u.Host))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{
			Err:   errors.Wrap(errors.ErrCodeNetwork, cache.ErrNetwork, "%s: status %d", rawURL, resp.StatusCode),
			After: retryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: status %d", rawURL, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

// retryAfter parses the delay-seconds form of Retry-After; dates and garbage
// yield 0 so the regular backoff applies.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
