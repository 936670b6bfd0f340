package catalog

import (
	"github.com/ogero/ghibli-films/pkg/ghibli"
)

// State is the long-lived view state of an interactive browser.
type State struct {
	SearchQuery string
	SortKey     SortKey
	CurrentPage int
	Selected    *ghibli.Film
	ModalOpen   bool
}

// NewState returns a state showing the first page in fetch order.
func NewState() *State {
	return &State{CurrentPage: 1}
}

// SetSearch replaces the search text. Any change of the search resets to the first page.
func (s *State) SetSearch(query string) {
	if query == s.SearchQuery {
		return
	}
	s.SearchQuery = query
	s.CurrentPage = 1
}

// SetSort replaces the sort key.
func (s *State) SetSort(k SortKey) {
	s.SortKey = k
}

// GoToPage moves to page, clamped to [1, max(1, totalPages)].
func (s *State) GoToPage(page, totalPages int) {
	s.CurrentPage = ClampPage(page, totalPages)
}

// NextPage advances one page unless already on the last one.
func (s *State) NextPage(totalPages int) {
	s.GoToPage(s.CurrentPage+1, totalPages)
}

// PrevPage goes back one page unless already on the first one.
func (s *State) PrevPage(totalPages int) {
	s.GoToPage(s.CurrentPage-1, totalPages)
}

// Open shows the detail modal for f.
func (s *State) Open(f *ghibli.Film) {
	if f == nil {
		return
	}
	s.Selected = f
	s.ModalOpen = true
}

// Close hides the detail modal and clears the selection.
func (s *State) Close() {
	s.Selected = nil
	s.ModalOpen = false
}

// Query returns the grid-shaping part of the state.
func (s *State) Query() Query {
	return Query{
		Search: s.SearchQuery,
		Sort:   s.SortKey,
		Page:   s.CurrentPage,
	}
}

// View derives the current page and pulls CurrentPage back into range if the film set shrank.
func (s *State) View(films []*ghibli.Film, pageSize int) *Page {
	page := Browse(films, s.Query(), pageSize)
	s.CurrentPage = page.CurrentPage
	return page
}
