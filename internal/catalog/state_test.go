package catalog_test

import (
	"testing"

	"github.com/ogero/ghibli-films/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestState_SearchResetsPage(t *testing.T) {
	s := catalog.NewState()
	s.GoToPage(3, 4)
	assert.Equal(t, 3, s.CurrentPage)

	s.SetSearch("castle")
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, "castle", s.SearchQuery)

	s.GoToPage(2, 4)
	s.SetSearch("castle")
	assert.Equal(t, 2, s.CurrentPage, "unchanged search keeps the page")
}

func TestState_Navigation(t *testing.T) {
	s := catalog.NewState()

	s.PrevPage(4)
	assert.Equal(t, 1, s.CurrentPage)

	s.NextPage(4)
	s.NextPage(4)
	s.NextPage(4)
	s.NextPage(4)
	assert.Equal(t, 4, s.CurrentPage)

	s.GoToPage(0, 4)
	assert.Equal(t, 1, s.CurrentPage)

	s.GoToPage(7, 0)
	assert.Equal(t, 1, s.CurrentPage)
}

func TestState_SortKeepsPage(t *testing.T) {
	s := catalog.NewState()
	s.GoToPage(2, 4)
	s.SetSort(catalog.SortDirectorDesc)
	assert.Equal(t, 2, s.CurrentPage)
	assert.Equal(t, catalog.SortDirectorDesc, s.Query().Sort)
}

func TestState_Modal(t *testing.T) {
	s := catalog.NewState()
	f := fixture()[0]

	s.Open(nil)
	assert.False(t, s.ModalOpen)

	s.Open(f)
	assert.True(t, s.ModalOpen)
	assert.Same(t, f, s.Selected)

	s.Close()
	assert.False(t, s.ModalOpen)
	assert.Nil(t, s.Selected)
}

func TestState_ViewClampsCurrentPage(t *testing.T) {
	s := catalog.NewState()
	films := numbered(22)

	page := s.View(films, 6)
	s.GoToPage(4, page.TotalPages)

	s.SearchQuery = "Film 0"
	page = s.View(films, 6)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, s.CurrentPage)
	assert.Len(t, page.Films, 3)
}
