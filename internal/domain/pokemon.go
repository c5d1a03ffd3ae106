package domain

import "strings"

// TypeSeparator joins type names in ListItemSummary.Types
const TypeSeparator = ", "

// PokemonListEntry is one row of the list endpoint
type PokemonListEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"` // Detail endpoint for this entry
}

// PokemonList is the list endpoint response
type PokemonList struct {
	Count   int                `json:"count"` // Total records available, not just this page
	Results []PokemonListEntry `json:"results"`
}

type PokemonTypeSlot struct {
	Type NamedResource `json:"type"`
}

type NamedResource struct {
	Name string `json:"name"`
}

type PokemonSprites struct {
	FrontDefault string `json:"front_default"`
}

// PokemonDetail is the subset of the detail endpoint the gallery reads
type PokemonDetail struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Types   []PokemonTypeSlot `json:"types"`
	Sprites PokemonSprites    `json:"sprites"`
}

// ListItemSummary is what a gallery card shows
type ListItemSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Types     string `json:"types"` // e.g. "grass, poison"
	SpriteURL string `json:"sprite_url"`
}

// Summary projects a detail record onto the card fields
func (d *PokemonDetail) Summary() ListItemSummary {
	return ListItemSummary{
		ID:        d.ID,
		Name:      d.Name,
		Types:     d.TypeNames(),
		SpriteURL: d.Sprites.FrontDefault,
	}
}

// TypeNames returns the type names in slot order, comma-joined
func (d *PokemonDetail) TypeNames() string {
	names := make([]string, 0, len(d.Types))
	for _, slot := range d.Types {
		names = append(names, slot.Type.Name)
	}
	return strings.Join(names, TypeSeparator)
}

// SplitTypes reverses the Types join for per-type rendering
func (s ListItemSummary) SplitTypes() []string {
	if s.Types == "" {
		return nil
	}
	return strings.Split(s.Types, TypeSeparator)
}
