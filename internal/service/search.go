package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"apigallery/viewer/internal/domain"

	log "github.com/sirupsen/logrus"
)

var ErrEmptyTerm = errors.New("search term is empty")

const SearchErrorMessage = "Pokémon not found. Try another name or ID."

type PokemonLookup interface {
	GetPokemon(ctx context.Context, nameOrID string) (*domain.PokemonDetail, error)
}

type SearchView struct {
	Term    string                  `json:"term"`
	Result  *domain.ListItemSummary `json:"result,omitempty"`
	Loading bool                    `json:"loading"`
	Error   string                  `json:"error,omitempty"`
}

// Searcher runs a lookup once the term has been stable for the debounce delay.
// Each keystroke cancels the pending lookup; results for an outdated term are dropped.
type Searcher struct {
	lookup   PokemonLookup
	delay    time.Duration
	onChange func(SearchView)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	view   SearchView
	closed bool
}

// NewSearcher creates a debounced searcher. onChange, when set, receives every state transition.
func NewSearcher(lookup PokemonLookup, delay time.Duration, onChange func(SearchView)) *Searcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Searcher{
		lookup:   lookup,
		delay:    delay,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// NormalizeTerm trims the term and lower-cases it the way the API expects
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// SetTerm records the latest input and restarts the debounce timer.
// A blank term clears the result and error without issuing a request.
func (s *Searcher) SetTerm(term string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.seq++
	seq := s.seq
	s.stopTimerLocked()
	s.view.Term = term

	if NormalizeTerm(term) == "" {
		s.view.Result = nil
		s.view.Error = ""
		s.view.Loading = false
		view := s.view
		s.mu.Unlock()
		s.notify(view)
		return
	}

	s.wg.Add(1)
	s.timer = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		s.run(seq, term)
	})
	s.mu.Unlock()
}

// Search looks term up immediately, bypassing the debouncer and its state
func (s *Searcher) Search(ctx context.Context, term string) (*domain.ListItemSummary, error) {
	normalized := NormalizeTerm(term)
	if normalized == "" {
		return nil, ErrEmptyTerm
	}

	detail, err := s.lookup.GetPokemon(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("search for %q failed: %w", normalized, err)
	}

	summary := detail.Summary()
	return &summary, nil
}

func (s *Searcher) Snapshot() SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Wait blocks until the pending lookup, if any, has run to completion.
// SetTerm must not be called while Wait is blocked.
func (s *Searcher) Wait() {
	s.wg.Wait()
}

// Close cancels any pending or in-flight lookup and waits for it to finish
func (s *Searcher) Close() {
	s.mu.Lock()
	s.closed = true
	s.seq++
	s.stopTimerLocked()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Searcher) run(seq uint64, term string) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.view.Loading = true
	s.view.Error = ""
	view := s.view
	s.mu.Unlock()
	s.notify(view)

	result, err := s.Search(s.ctx, term)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		log.WithField("term", term).Debug("Discarding stale search result")
		return
	}

	s.view.Loading = false
	if err != nil {
		log.WithError(err).WithField("term", term).Warn("Search failed")
		s.view.Result = nil
		s.view.Error = SearchErrorMessage
	} else {
		s.view.Result = result
	}
	view = s.view
	s.mu.Unlock()
	s.notify(view)
}

func (s *Searcher) stopTimerLocked() {
	if s.timer != nil && s.timer.Stop() {
		// The callback will never run, so release its slot
		s.wg.Done()
	}
	s.timer = nil
}

func (s *Searcher) notify(view SearchView) {
	if s.onChange != nil {
		s.onChange(view)
	}
}
