// Package catalog derives the visible film grid from the fetched films and the current view state.
//
// The pipeline is always filter, then sort, then paginate. Nothing here mutates the input slice.
package catalog

import (
	"github.com/ogero/ghibli-films/pkg/ghibli"
)

// Query is the part of the view state that shapes the grid.
type Query struct {
	Search string
	Sort   SortKey
	Page   int
}

// Page is one derived page of the film grid.
type Page struct {
	Films       []*ghibli.Film `json:"films"`
	Search      string         `json:"search"`
	Sort        SortKey        `json:"sort"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalFilms  int            `json:"totalFilms"`
	PageSize    int            `json:"pageSize"`
	Pages       []int          `json:"-"`
}

// HasPrev reports whether a previous page exists.
func (p *Page) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p *Page) HasNext() bool { return p.CurrentPage < p.TotalPages }

// PrevPage is the page number the previous button points to.
func (p *Page) PrevPage() int { return ClampPage(p.CurrentPage-1, p.TotalPages) }

// NextPage is the page number the next button points to.
func (p *Page) NextPage() int { return ClampPage(p.CurrentPage+1, p.TotalPages) }

// Browse runs films through filter, sort and paginate for q.
func Browse(films []*ghibli.Film, q Query, pageSize int) *Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := Sort(Filter(films, q.Search), q.Sort)
	totalPages := TotalPages(len(filtered), pageSize)
	current := ClampPage(q.Page, totalPages)

	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}

	return &Page{
		Films:       Paginate(filtered, current, pageSize),
		Search:      q.Search,
		Sort:        q.Sort,
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalFilms:  len(filtered),
		PageSize:    pageSize,
		Pages:       pages,
	}
}
