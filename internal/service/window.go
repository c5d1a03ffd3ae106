package service

const windowSize = 5

// PageWindowEntry is one navigation control. Ellipsis entries carry no page.
type PageWindowEntry struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// PageWindow lays out up to five page numbers starting at max(1, current-2),
// with the first and last pages pinned and ellipses marking skipped ranges.
// A page number never appears twice.
func PageWindow(current, totalPages int) []PageWindowEntry {
	var entries []PageWindowEntry

	appendPage := func(p int) {
		entries = append(entries, PageWindowEntry{Page: p, Current: p == current})
	}

	if current > 3 {
		appendPage(1)
		entries = append(entries, PageWindowEntry{Ellipsis: true})
	}

	start := max(1, current-2)
	last := 0
	for p := start; p < start+windowSize && p <= totalPages; p++ {
		appendPage(p)
		last = p
	}

	if current < totalPages-2 && last < totalPages {
		if current < totalPages-3 {
			entries = append(entries, PageWindowEntry{Ellipsis: true})
		}
		appendPage(totalPages)
	}

	return entries
}
