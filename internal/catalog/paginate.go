package catalog

import (
	"github.com/ogero/ghibli-films/pkg/ghibli"
)

// DefaultPageSize is the number of cards per page.
const DefaultPageSize = 6

// TotalPages is ceil(count / pageSize). It is zero when there is nothing to show.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage keeps page within [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the films on the given 1-based page. Out of range pages are clamped.
// The returned slice never holds more than pageSize films.
func Paginate(films []*ghibli.Film, page, pageSize int) []*ghibli.Film {
	if pageSize <= 0 {
		return []*ghibli.Film{}
	}
	page = ClampPage(page, TotalPages(len(films), pageSize))

	start := (page - 1) * pageSize
	if start >= len(films) {
		return []*ghibli.Film{}
	}
	end := min(start+pageSize, len(films))
	return films[start:end:end]
}
