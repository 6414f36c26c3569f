// Package httputil provides HTTP utilities for fetching remote assets.
//
// # Overview
//
//   - [Backoff]: retry with exponential, capped backoff
//   - [Fetcher]: GET with retry, response caching and observability hooks
//
// # Retry
//
// [Backoff.Retry] re-runs an operation while it fails with a
// [RetryableError]. [Fetcher] marks network errors, 5xx and 429 responses as
// retryable and honors a Retry-After header in seconds; everything else is
// returned immediately.
//
// # Fetching
//
//	f := httputil.NewFetcher(fileCache, 24*time.Hour)
//	data, err := f.Get(ctx, "https://example.com/Shapes01.svg")
//
// Successful bodies are stored in the configured [cache.Cache] under
// [cache.AssetKey] so that later processes skip the network.
//
// [cache.Cache]: github.com/matzehuels/typescatter/pkg/cache.Cache
// [cache.AssetKey]: github.com/matzehuels/typescatter/pkg/cache.AssetKey
package httputil
