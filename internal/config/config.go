package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	PokeAPI PokeAPIConfig `mapstructure:"pokeapi"`
	DogAPI  DogAPIConfig  `mapstructure:"dogapi"`
	Gallery GalleryConfig `mapstructure:"gallery"`
	Search  SearchConfig  `mapstructure:"search"`
	Proxy   ProxyConfig   `mapstructure:"proxy"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// PokeAPIConfig holds PokeAPI client configuration
type PokeAPIConfig struct {
	BaseURL              string `mapstructure:"base_url" validate:"required,url"`
	Timeout              int    `mapstructure:"timeout" validate:"gte=0"` // Seconds, 0 disables
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second" validate:"gt=0"`
}

// DogAPIConfig holds dog image API configuration
type DogAPIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Timeout int    `mapstructure:"timeout" validate:"gte=0"`
}

type GalleryConfig struct {
	ItemsPerPage int `mapstructure:"items_per_page" validate:"eq=20"`
}

type SearchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" validate:"gte=0"`
}

// ProxyConfig lists outbound proxies shared round-robin by the API clients
type ProxyConfig struct {
	URLs    []string `mapstructure:"urls" validate:"dive,url"`
	TestURL string   `mapstructure:"test_url" validate:"omitempty,url"` // Probed through each proxy at startup
}

// CacheConfig selects where successful GET bodies are kept
type CacheConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=none memory redis"`
	TTL     int    `mapstructure:"ttl" validate:"gt=0"`  // Seconds
	Size    int    `mapstructure:"size" validate:"gt=0"` // Entries, memory backend only
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database" validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

func (c PokeAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c DogAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// Load loads configuration from an optional YAML file with environment variable overrides.
// An empty path looks for config.yaml in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit path must exist, the implicit one may not
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if c.Cache.Backend == "redis" && c.Redis.Host == "" {
		return fmt.Errorf("config validation error: redis.host is required for the redis cache backend")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("pokeapi.timeout", 30)
	v.SetDefault("pokeapi.max_requests_per_second", 50)

	v.SetDefault("dogapi.base_url", "https://dog.ceo/api")
	v.SetDefault("dogapi.timeout", 30)

	v.SetDefault("gallery.items_per_page", 20)

	v.SetDefault("search.debounce_ms", 500)

	v.SetDefault("proxy.urls", []string{})
	v.SetDefault("proxy.test_url", "https://pokeapi.co/api/v2/pokemon?limit=1")

	v.SetDefault("cache.backend", "none")
	v.SetDefault("cache.ttl", 3600)
	v.SetDefault("cache.size", 1024)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "apigallery:http:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
