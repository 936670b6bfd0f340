package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/ogero/ghibli-films/pkg/ghibli"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of the film grid.
type SortKey string

const (
	SortTitleAsc     SortKey = "title-asc"
	SortTitleDesc    SortKey = "title-desc"
	SortDirectorAsc  SortKey = "director-asc"
	SortDirectorDesc SortKey = "director-desc"
	SortReleaseAsc   SortKey = "release-asc"
	SortReleaseDesc  SortKey = "release-desc"
)

// SortKeys lists every supported key in dropdown order.
var SortKeys = []SortKey{
	SortTitleAsc,
	SortTitleDesc,
	SortDirectorAsc,
	SortDirectorDesc,
	SortReleaseAsc,
	SortReleaseDesc,
}

var sortKeyLabels = map[SortKey]string{
	SortTitleAsc:     "Title (A-Z)",
	SortTitleDesc:    "Title (Z-A)",
	SortDirectorAsc:  "Director (A-Z)",
	SortDirectorDesc: "Director (Z-A)",
	SortReleaseAsc:   "Release date (oldest)",
	SortReleaseDesc:  "Release date (newest)",
}

// Valid reports whether k is one of the six supported keys.
func (k SortKey) Valid() bool {
	_, ok := sortKeyLabels[k]
	return ok
}

// Label is the human readable name shown in the sort dropdown.
func (k SortKey) Label() string {
	if l, ok := sortKeyLabels[k]; ok {
		return l
	}
	return "Default"
}

// Next cycles through SortKeys, wrapping around. The zero key moves to the first one.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// Prev cycles backwards through SortKeys, wrapping around.
func (k SortKey) Prev() SortKey {
	i := slices.Index(SortKeys, k)
	if i <= 0 {
		return SortKeys[len(SortKeys)-1]
	}
	return SortKeys[i-1]
}

// Compare returns the comparator for k, or nil when k is not a supported key.
func Compare(k SortKey) func(a, b *ghibli.Film) int {
	// Collators keep internal buffers and must not be shared between goroutines.
	c := collate.New(language.English)

	byTitle := func(a, b *ghibli.Film) int { return c.CompareString(a.Title, b.Title) }
	byDirector := func(a, b *ghibli.Film) int { return c.CompareString(a.Director, b.Director) }
	byRelease := func(a, b *ghibli.Film) int { return compareRelease(a.ReleaseDate, b.ReleaseDate) }

	switch k {
	case SortTitleAsc:
		return byTitle
	case SortTitleDesc:
		return reverse(byTitle)
	case SortDirectorAsc:
		return byDirector
	case SortDirectorDesc:
		return reverse(byDirector)
	case SortReleaseAsc:
		return byRelease
	case SortReleaseDesc:
		return reverse(byRelease)
	default:
		return nil
	}
}

// Sort returns a sorted copy of films. Unknown keys keep the input order.
// The sort is stable, so films comparing equal keep their relative order.
func Sort(films []*ghibli.Film, k SortKey) []*ghibli.Film {
	sorted := slices.Clone(films)
	if fn := Compare(k); fn != nil {
		slices.SortStableFunc(sorted, fn)
	}
	return sorted
}

func reverse(fn func(a, b *ghibli.Film) int) func(a, b *ghibli.Film) int {
	return func(a, b *ghibli.Film) int { return fn(b, a) }
}

// compareRelease orders by the leading year. Unparseable dates go first and compare as strings.
func compareRelease(a, b string) int {
	ya, okA := releaseYear(a)
	yb, okB := releaseYear(b)
	switch {
	case okA && okB:
		return cmp.Compare(ya, yb)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return strings.Compare(a, b)
	}
}

func releaseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	y, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return y, true
}
