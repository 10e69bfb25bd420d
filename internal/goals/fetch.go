package goals

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	appLog "goalcal/internal/log"
)

// cacheEntry holds HTTP cache metadata for a single ICS URL.
type cacheEntry struct {
	ETag         string
	LastModified string
	Body         []byte
}

// Fetcher retrieves ICS payloads from http(s) URLs or local paths. HTTP
// responses are cached in memory and revalidated with ETag /
// Last-Modified; on network errors the cached body is reused.
type Fetcher struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  make(map[string]cacheEntry),
	}
}

// Fetch returns the ICS body for src. fromCache is true when a cached
// body was served (304 or fallback after an error).
func (f *Fetcher) Fetch(ctx context.Context, src string) (body []byte, fromCache bool, err error) {
	if src == "" {
		return nil, false, errors.New("ics source is empty")
	}
	if !isHTTP(src) {
		body, err := os.ReadFile(src)
		return body, false, err
	}

	f.mu.Lock()
	cached, hasCache := f.cache[src]
	f.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, false, err
	}
	if cached.ETag != "" {
		req.Header.Set("If-None-Match", cached.ETag)
	}
	if cached.LastModified != "" {
		req.Header.Set("If-Modified-Since", cached.LastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if hasCache {
			appLog.Error("ics fetch network error, using cached body", err, "url", redactURL(src))
			return cached.Body, true, nil
		}
		return nil, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, false, err
		}
		f.mu.Lock()
		f.cache[src] = cacheEntry{
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			Body:         b,
		}
		f.mu.Unlock()
		appLog.Debug("ics fetch success", "url", redactURL(src), "bytes", len(b))
		return b, false, nil

	case http.StatusNotModified:
		if !hasCache {
			return nil, false, errors.New("received 304 Not Modified but no cached body available")
		}
		return cached.Body, true, nil

	default:
		if hasCache {
			appLog.Error("ics fetch non-OK, using cached body", errors.New(resp.Status), "url", redactURL(src))
			return cached.Body, true, nil
		}
		return nil, false, fmt.Errorf("ics fetch %s: %s", redactURL(src), resp.Status)
	}
}

func isHTTP(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// redactURL hides path and query of a feed URL, which often carry tokens.
func redactURL(src string) string {
	if !isHTTP(src) {
		return src
	}
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return "ics://...(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}
