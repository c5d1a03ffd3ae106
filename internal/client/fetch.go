package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"apigallery/viewer/internal/cache"
	"apigallery/viewer/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const userAgent = "apigallery-viewer/1.0"

// fetcher is the one read path shared by every endpoint
type fetcher struct {
	rl      ratelimit.Limiter
	cache   cache.Cache
	proxies proxy.ProxySupplier
	timeout time.Duration

	mu      sync.Mutex
	clients map[string]*resty.Client // By proxy URL, "" is the direct client
}

type fetcherOptions struct {
	Timeout              time.Duration
	MaxRequestsPerSecond int
	Cache                cache.Cache
	ProxySupplier        proxy.ProxySupplier
}

func newFetcher(opts fetcherOptions) *fetcher {
	rl := ratelimit.NewUnlimited()
	if opts.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(opts.MaxRequestsPerSecond)
	}

	c := opts.Cache
	if c == nil {
		c = cache.Noop{}
	}

	return &fetcher{
		rl:      rl,
		cache:   c,
		proxies: opts.ProxySupplier,
		timeout: opts.Timeout,
		clients: make(map[string]*resty.Client),
	}
}

// client returns the resty client for the next proxy in the pool.
// Each proxy gets its own client, so the proxy setting is never changed on a client in use.
func (f *fetcher) client() *resty.Client {
	proxyURL := ""
	if f.proxies != nil {
		proxyURL = f.proxies.Get()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.clients[proxyURL]; ok {
		return c
	}

	c := resty.New().
		SetTimeout(f.timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	if proxyURL != "" {
		c.SetProxy(proxyURL)
		log.WithField("proxy", proxyURL).Info("Using proxy")
	}

	f.clients[proxyURL] = c
	return c
}

// getJSON fetches url and decodes the body into T. Bodies that decode cleanly are cached by url.
func getJSON[T any](ctx context.Context, f *fetcher, url string) (*T, error) {
	body, cached, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response from %s: %w", ErrRequestFailed, url, err)
	}

	if !cached {
		f.cache.Set(ctx, url, body)
	}

	return &out, nil
}

func (f *fetcher) get(ctx context.Context, url string) ([]byte, bool, error) {
	if body, ok := f.cache.Get(ctx, url); ok {
		log.WithField("url", url).Debug("Served from cache")
		return body, true, nil
	}

	f.rl.Take()

	resp, err := f.client().R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("%w: request cancelled: %w", ErrRequestFailed, ctx.Err())
		}
		return nil, false, fmt.Errorf("%w: failed to fetch %s: %w", ErrRequestFailed, url, err)
	}

	if !resp.IsSuccess() {
		return nil, false, fmt.Errorf("%w: HTTP error: %d %s", ErrRequestFailed, resp.StatusCode(), url)
	}

	body := []byte(resp.String())

	log.WithFields(log.Fields{
		"url":           url,
		"status":        resp.StatusCode(),
		"response_size": len(body),
	}).Debug("API request successful")

	return body, false, nil
}
