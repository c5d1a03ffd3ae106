package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"apigallery/viewer/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidPage = errors.New("page out of range")
	// ErrSuperseded is returned for a completion that arrived after a newer request was issued
	ErrSuperseded = errors.New("superseded by a newer request")
)

const GalleryErrorMessage = "Failed to load Pokémon. Please try again."

// PokemonSource is what the gallery needs from the PokeAPI client
type PokemonSource interface {
	ListPokemon(ctx context.Context, limit, offset int) (*domain.PokemonList, error)
	GetPokemonByURL(ctx context.Context, detailURL string) (*domain.PokemonDetail, error)
}

// GalleryView is a point-in-time copy of the gallery state for rendering
type GalleryView struct {
	Items       []domain.ListItemSummary `json:"items"`
	CurrentPage int                      `json:"current_page"`
	TotalPages  int                      `json:"total_pages"`
	Loading     bool                     `json:"loading"`
	Error       string                   `json:"error,omitempty"`
}

// Gallery orchestrates page loads and navigation. Safe for concurrent use.
type Gallery struct {
	source  PokemonSource
	perPage int

	mu      sync.Mutex
	state   domain.PageState
	items   []domain.ListItemSummary
	loading bool
	errMsg  string
	seq     uint64 // Bumped per issued load; only the newest completion is applied
}

// NewGallery creates a gallery that fetches perPage entries per page. A non-positive perPage means domain.ItemsPerPage.
func NewGallery(source PokemonSource, perPage int) *Gallery {
	if perPage < 1 {
		perPage = domain.ItemsPerPage
	}
	state := domain.NewPageState()
	state.ItemsPerPage = perPage
	return &Gallery{
		source:  source,
		perPage: perPage,
		state:   state,
	}
}

// Snapshot returns the current state without fetching
func (g *Gallery) Snapshot() GalleryView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

// Window returns the navigation controls for the current state
func (g *Gallery) Window() []PageWindowEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return PageWindow(g.state.CurrentPage, g.state.TotalPages)
}

// LoadPage fetches page and makes it current. Any 1 <= page <= max(totalPages, 1) is accepted.
func (g *Gallery) LoadPage(ctx context.Context, page int) (GalleryView, error) {
	g.mu.Lock()
	if page < 1 || page > g.state.MaxPage() {
		view := g.viewLocked()
		g.mu.Unlock()
		return view, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidPage, page, view.TotalPages)
	}
	seq, offset := g.beginLocked(page)
	g.mu.Unlock()

	return g.complete(ctx, seq, page, offset)
}

// GoToPreviousPage moves to max(currentPage-1, 1). No-op on the first page.
func (g *Gallery) GoToPreviousPage(ctx context.Context) (GalleryView, error) {
	return g.navigate(ctx, func(s domain.PageState) int {
		return max(s.CurrentPage-1, 1)
	})
}

// GoToNextPage moves to min(currentPage+1, totalPages). No-op on the last page.
func (g *Gallery) GoToNextPage(ctx context.Context) (GalleryView, error) {
	return g.navigate(ctx, func(s domain.PageState) int {
		return min(s.CurrentPage+1, s.TotalPages)
	})
}

// GoToPage jumps to page, which must be within 1..totalPages
func (g *Gallery) GoToPage(ctx context.Context, page int) (GalleryView, error) {
	g.mu.Lock()
	total := g.state.TotalPages
	g.mu.Unlock()

	if page < 1 || page > total {
		return g.Snapshot(), fmt.Errorf("%w: %d not in 1..%d", ErrInvalidPage, page, total)
	}

	return g.navigate(ctx, func(domain.PageState) int { return page })
}

func (g *Gallery) navigate(ctx context.Context, target func(domain.PageState) int) (GalleryView, error) {
	g.mu.Lock()
	page := target(g.state)
	if page < 1 || page == g.state.CurrentPage {
		view := g.viewLocked()
		g.mu.Unlock()
		return view, nil
	}
	seq, offset := g.beginLocked(page)
	g.mu.Unlock()

	return g.complete(ctx, seq, page, offset)
}

func (g *Gallery) beginLocked(page int) (uint64, int) {
	g.seq++
	g.state.CurrentPage = page
	g.loading = true
	g.errMsg = ""
	return g.seq, g.state.Offset()
}

func (g *Gallery) complete(ctx context.Context, seq uint64, page, offset int) (GalleryView, error) {
	items, totalCount, err := FetchPage(ctx, g.source, g.perPage, offset)

	g.mu.Lock()
	defer g.mu.Unlock()

	if seq != g.seq {
		log.WithFields(log.Fields{
			"page":   page,
			"offset": offset,
		}).Debug("Discarding stale gallery response")
		return g.viewLocked(), ErrSuperseded
	}

	g.loading = false

	if err != nil {
		g.errMsg = GalleryErrorMessage
		log.WithError(err).WithFields(log.Fields{
			"page":   page,
			"offset": offset,
		}).Error("Failed to load gallery page")
		return g.viewLocked(), err
	}

	g.items = items
	g.state.TotalPages = domain.TotalPages(totalCount, g.perPage)

	// The catalogue shrank under us; keep currentPage within the known pages
	if g.state.CurrentPage > g.state.MaxPage() {
		log.WithFields(log.Fields{
			"page":        page,
			"total_pages": g.state.TotalPages,
		}).Warn("Requested page is past the end of the catalogue, clamping")
		g.state.CurrentPage = g.state.MaxPage()
	}

	log.WithFields(log.Fields{
		"page":        page,
		"total_pages": g.state.TotalPages,
		"items":       len(items),
	}).Debug("Gallery page loaded")

	return g.viewLocked(), nil
}

func (g *Gallery) viewLocked() GalleryView {
	items := make([]domain.ListItemSummary, len(g.items))
	copy(items, g.items)
	return GalleryView{
		Items:       items,
		CurrentPage: g.state.CurrentPage,
		TotalPages:  g.state.TotalPages,
		Loading:     g.loading,
		Error:       g.errMsg,
	}
}

// FetchPage loads one list page and every entry's details concurrently.
// The first failing detail request cancels the rest and fails the whole page. Item order follows the list.
func FetchPage(ctx context.Context, source PokemonSource, limit, offset int) ([]domain.ListItemSummary, int, error) {
	list, err := source.ListPokemon(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.ListItemSummary, len(list.Results))
	errGroup, groupCtx := errgroup.WithContext(ctx)

	for i, entry := range list.Results {
		errGroup.Go(func() error {
			detail, err := source.GetPokemonByURL(groupCtx, entry.URL)
			if err != nil {
				return fmt.Errorf("failed to fetch details for %s: %w", entry.Name, err)
			}
			items[i] = detail.Summary()
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return nil, 0, err
	}

	return items, list.Count, nil
}
