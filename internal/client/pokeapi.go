package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"apigallery/viewer/internal/cache"
	"apigallery/viewer/internal/config"
	"apigallery/viewer/internal/domain"
	"apigallery/viewer/internal/proxy"

	log "github.com/sirupsen/logrus"
)

type PokeAPIClient interface {
	// ListPokemon fetches one page of the list endpoint
	ListPokemon(ctx context.Context, limit, offset int) (*domain.PokemonList, error)
	// GetPokemonByURL follows a list entry's detail URL
	GetPokemonByURL(ctx context.Context, detailURL string) (*domain.PokemonDetail, error)
	// GetPokemon looks a Pokémon up by lower-case name or numeric ID
	GetPokemon(ctx context.Context, nameOrID string) (*domain.PokemonDetail, error)
}

type pokeAPIClient struct {
	baseURL string
	fetcher *fetcher
}

func NewPokeAPIClient(cfg config.PokeAPIConfig, c cache.Cache, proxySupplier proxy.ProxySupplier) PokeAPIClient {
	return &pokeAPIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		fetcher: newFetcher(fetcherOptions{
			Timeout:              cfg.TimeoutDuration(),
			MaxRequestsPerSecond: cfg.MaxRequestsPerSecond,
			Cache:                c,
			ProxySupplier:        proxySupplier,
		}),
	}
}

func (c *pokeAPIClient) ListPokemon(ctx context.Context, limit, offset int) (*domain.PokemonList, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	listURL := fmt.Sprintf("%s/pokemon?%s", c.baseURL, params.Encode())

	list, err := getJSON[domain.PokemonList](ctx, c.fetcher, listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon (limit=%d offset=%d): %w", limit, offset, err)
	}

	log.Debugf("Listed %d of %d pokemon at offset %d", len(list.Results), list.Count, offset)
	return list, nil
}

func (c *pokeAPIClient) GetPokemonByURL(ctx context.Context, detailURL string) (*domain.PokemonDetail, error) {
	detail, err := getJSON[domain.PokemonDetail](ctx, c.fetcher, detailURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon details: %w", err)
	}
	return detail, nil
}

func (c *pokeAPIClient) GetPokemon(ctx context.Context, nameOrID string) (*domain.PokemonDetail, error) {
	if nameOrID == "" {
		return nil, fmt.Errorf("%w: empty pokemon name or id", ErrRequestFailed)
	}

	detailURL := fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(nameOrID))

	detail, err := getJSON[domain.PokemonDetail](ctx, c.fetcher, detailURL)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pokemon %q: %w", nameOrID, err)
	}
	return detail, nil
}
