package domain

// ItemsPerPage is the fixed gallery page size
const ItemsPerPage = 20

// PageState holds the gallery's pagination position
type PageState struct {
	CurrentPage  int `json:"current_page"`   // 1-based
	ItemsPerPage int `json:"items_per_page"` // Always ItemsPerPage
	TotalPages   int `json:"total_pages"`    // Derived from the last successful fetch
}

// NewPageState returns the state for a gallery that has not fetched anything yet
func NewPageState() PageState {
	return PageState{
		CurrentPage:  1,
		ItemsPerPage: ItemsPerPage,
	}
}

// Offset returns the list offset for the current page
func (s PageState) Offset() int {
	return PageOffset(s.CurrentPage, s.ItemsPerPage)
}

// MaxPage is the highest page the state may point at. Before totals are known it is 1.
func (s PageState) MaxPage() int {
	return max(s.TotalPages, 1)
}

// PageOffset converts a 1-based page number to a list offset, never negative
func PageOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// TotalPages is ceil(totalCount / perPage)
func TotalPages(totalCount, perPage int) int {
	if totalCount <= 0 || perPage <= 0 {
		return 0
	}
	return (totalCount + perPage - 1) / perPage
}
