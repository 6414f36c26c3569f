package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/typescatter/pkg/cache"
	tserrors "github.com/matzehuels/typescatter/pkg/errors"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg"><rect width="4" height="4"/></svg>`

func TestFetcherCachesBody(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(testSVG))
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(c, time.Hour)

	for i := 0; i < 2; i++ {
		body, err := f.Get(context.Background(), srv.URL+"/Shapes01.svg")
		if err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
		if string(body) != testSVG {
			t.Errorf("body = %q", body)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1 (second call cached)", n)
	}
}

func TestFetcherRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(testSVG))
	}))
	defer srv.Close()

	f := NewFetcher(nil, 0)
	f.Backoff.Delay = time.Millisecond

	body, err := f.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != testSVG || hits.Load() != 2 {
		t.Errorf("body=%q hits=%d", body, hits.Load())
	}
}

func TestFetcherDoesNotRetryNotFound(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(nil, 0)
	f.Backoff.Delay = time.Millisecond

	if _, err := f.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
}

func TestFetcherNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := NewFetcher(nil, 0)
	f.Backoff.Attempts = 1

	_, err := f.Get(context.Background(), url)
	if !errors.Is(err, cache.ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
	if code := tserrors.GetCode(err); code != tserrors.ErrCodeNetwork {
		t.Errorf("code = %q, want %q", code, tserrors.ErrCodeNetwork)
	}
}

func TestFetcherSendsUserAgent(t *testing.T) {
	var ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.UserAgent())
		w.Write([]byte(testSVG))
	}))
	defer srv.Close()

	if _, err := NewFetcher(nil, 0).Get(context.Background(), srv.URL); err != nil {
		t.Fatal(err)
	}
	if got, _ := ua.Load().(string); !strings.HasPrefix(got, "typescatter/") {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":                              0,
		"3":                             3 * time.Second,
		" 1 ":                           time.Second,
		"-2":                            0,
		"Wed, 21 Oct 2015 07:28:00 GMT": 0,
	}
	for in, want := range tests {
		if got := retryAfter(in); got != want {
			t.Errorf("retryAfter(%q) = %v, want %v", in, got, want)
		}
	}
}
