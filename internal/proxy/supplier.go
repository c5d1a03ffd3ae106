package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// maxConcurrentProbes bounds parallel proxy validation
const maxConcurrentProbes = 16

// ProxySupplier hands out outbound proxies in round-robin order
type ProxySupplier interface {
	// Get returns the next proxy URL, or "" when the pool is empty
	Get() string
	Len() int
}

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier probes every proxy against testURL in parallel and keeps those that answer.
// Input order is preserved among the survivors. An empty testURL skips probing.
func NewProxySupplier(ctx context.Context, proxies []string, testURL string) ProxySupplier {
	if len(proxies) == 0 || testURL == "" {
		return &proxySupplier{proxies: append([]string(nil), proxies...)}
	}

	log.Infof("Testing %d proxies in parallel...", len(proxies))

	working := make([]bool, len(proxies))
	semaphore := make(chan struct{}, maxConcurrentProbes)
	var wg sync.WaitGroup

	for i, proxyURL := range proxies {
		wg.Add(1)
		go func(index int, proxy string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			working[index] = isProxyValid(ctx, proxy, testURL)
			if working[index] {
				log.WithField("proxy", proxy).Info("Proxy is working")
			} else {
				log.WithField("proxy", proxy).Warn("Proxy is not working, skipping")
			}
		}(i, proxyURL)
	}
	wg.Wait()

	valid := make([]string, 0, len(proxies))
	for i, ok := range working {
		if ok {
			valid = append(valid, proxies[i])
		}
	}

	log.Infof("ProxySupplier initialized with %d working proxies out of %d tested", len(valid), len(proxies))
	return &proxySupplier{proxies: valid}
}

func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)
	return proxy
}

func (p *proxySupplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

func isProxyValid(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL)

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)
	if err != nil {
		log.WithError(err).WithField("proxy", proxyURL).Debug("Proxy probe failed")
		return false
	}

	if !resp.IsSuccess() {
		log.WithField("proxy", proxyURL).Debugf("Proxy probe failed with status: %s", resp.Status())
		return false
	}

	return true
}
