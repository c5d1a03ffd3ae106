package client

import (
	"context"
	"fmt"
	"strings"

	"apigallery/viewer/internal/config"
	"apigallery/viewer/internal/domain"
	"apigallery/viewer/internal/proxy"
)

type DogAPIClient interface {
	// RandomImage returns the URL of one random dog image
	RandomImage(ctx context.Context) (string, error)
}

type dogAPIClient struct {
	baseURL string
	fetcher *fetcher
}

// NewDogAPIClient never caches: every call must produce a fresh random image.
func NewDogAPIClient(cfg config.DogAPIConfig, proxySupplier proxy.ProxySupplier) DogAPIClient {
	return &dogAPIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		fetcher: newFetcher(fetcherOptions{
			Timeout:       cfg.TimeoutDuration(),
			ProxySupplier: proxySupplier,
		}),
	}
}

func (c *dogAPIClient) RandomImage(ctx context.Context) (string, error) {
	img, err := getJSON[domain.DogImage](ctx, c.fetcher, c.baseURL+"/breeds/image/random")
	if err != nil {
		return "", fmt.Errorf("failed to fetch random dog image: %w", err)
	}

	if img.Status != domain.DogStatusSuccess || img.Message == "" {
		return "", fmt.Errorf("%w: dog api returned status %q", ErrRequestFailed, img.Status)
	}

	return img.Message, nil
}
