package service

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatGallery renders a gallery view and its navigation controls as plain text
func FormatGallery(view GalleryView, window []PageWindowEntry) string {
	var b strings.Builder

	switch {
	case view.Loading:
		b.WriteString("Loading...\n")
	case view.Error != "":
		b.WriteString(view.Error + "\n")
	}

	for _, item := range view.Items {
		fmt.Fprintf(&b, "#%-4d %-16s %-20s %s\n", item.ID, item.Name, item.Types, item.SpriteURL)
	}

	if view.TotalPages > 0 {
		fmt.Fprintf(&b, "Page %d of %d (%d Pokémon shown)\n", view.CurrentPage, view.TotalPages, len(view.Items))
	}

	b.WriteString(FormatWindow(window, view.CurrentPage, view.TotalPages))
	b.WriteString("\n")

	return b.String()
}

// FormatWindow renders the page controls; disabled arrows are wrapped in parentheses
func FormatWindow(window []PageWindowEntry, current, totalPages int) string {
	parts := make([]string, 0, len(window)+2)

	prev := "← Previous"
	if current <= 1 {
		prev = "(" + prev + ")"
	}
	parts = append(parts, prev)

	for _, entry := range window {
		switch {
		case entry.Ellipsis:
			parts = append(parts, "…")
		case entry.Current:
			parts = append(parts, "["+strconv.Itoa(entry.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(entry.Page))
		}
	}

	next := "Next →"
	if current >= totalPages {
		next = "(" + next + ")"
	}
	parts = append(parts, next)

	return strings.Join(parts, " ")
}

func FormatSearch(view SearchView) string {
	switch {
	case view.Loading:
		return "Searching...\n"
	case view.Error != "":
		return view.Error + "\n"
	case view.Result == nil:
		return ""
	}

	r := view.Result
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", r.ID, r.Name)
	if types := r.SplitTypes(); len(types) > 0 {
		fmt.Fprintf(&b, "Types: %s\n", strings.Join(types, " / "))
	}
	if r.SpriteURL != "" {
		fmt.Fprintf(&b, "Sprite: %s\n", r.SpriteURL)
	}
	return b.String()
}

func FormatDog(view DogView) string {
	switch {
	case view.Loading:
		return "Loading...\n"
	case view.Error != "":
		return view.Error + "\n"
	case view.ImageURL == "":
		return ""
	}
	return view.ImageURL + "\n"
}
