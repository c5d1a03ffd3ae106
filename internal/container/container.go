package container

import (
	"context"
	"fmt"

	"apigallery/viewer/internal/cache"
	"apigallery/viewer/internal/client"
	"apigallery/viewer/internal/config"
	"apigallery/viewer/internal/proxy"
	"apigallery/viewer/internal/service"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config        *config.Config
	PokeAPI       client.PokeAPIClient
	DogAPI        client.DogAPIClient
	Cache         cache.Cache
	ProxySupplier proxy.ProxySupplier

	Gallery  *service.Gallery
	Searcher *service.Searcher
	Dog      *service.DogViewer

	redis *redis.Client
}

// New creates a new container with all dependencies initialized.
// onSearch receives every debounced search state change and may be nil.
func New(ctx context.Context, cfg *config.Config, onSearch func(service.SearchView)) (*Container, error) {
	if err := ConfigureLogging(cfg.Log); err != nil {
		return nil, err
	}

	container := &Container{
		Config: cfg,
	}

	// Initialize ProxySupplier
	proxySupplier := proxy.NewProxySupplier(ctx, cfg.Proxy.URLs, cfg.Proxy.TestURL)
	if len(cfg.Proxy.URLs) > 0 && proxySupplier.Len() == 0 {
		log.Warn("No configured proxy passed the probe, connecting directly")
	}
	container.ProxySupplier = proxySupplier

	if cfg.Cache.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		log.Info("✅ Connected to Redis successfully")
		container.redis = rdb
	}

	responseCache, err := cache.New(cfg.Cache, container.redis, cfg.Redis.KeyPrefix)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	container.Cache = responseCache

	container.PokeAPI = client.NewPokeAPIClient(cfg.PokeAPI, responseCache, proxySupplier)
	container.DogAPI = client.NewDogAPIClient(cfg.DogAPI, proxySupplier)

	container.Gallery = service.NewGallery(container.PokeAPI, cfg.Gallery.ItemsPerPage)
	container.Searcher = service.NewSearcher(container.PokeAPI, cfg.Search.Debounce(), onSearch)
	container.Dog = service.NewDogViewer(container.DogAPI)

	log.WithFields(log.Fields{
		"cache":   cfg.Cache.Backend,
		"proxies": proxySupplier.Len(),
	}).Debug("Container initialized")

	return container, nil
}

// ConfigureLogging applies the configured level and format to the standard logger
func ConfigureLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if c.Searcher != nil {
		c.Searcher.Close()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	log.Debug("Container shut down successfully")
	return nil
}
