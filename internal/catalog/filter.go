package catalog

import (
	"strings"

	"github.com/ogero/ghibli-films/pkg/ghibli"
	"golang.org/x/text/cases"
)

// Matches reports whether the film's title or original title contains query, ignoring case.
// An empty query matches every film.
func Matches(f *ghibli.Film, query string) bool {
	return newMatcher(query)(f)
}

// Filter returns the films matching query, in their original order.
func Filter(films []*ghibli.Film, query string) []*ghibli.Film {
	match := newMatcher(query)
	filtered := make([]*ghibli.Film, 0, len(films))
	for _, f := range films {
		if match(f) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func newMatcher(query string) func(f *ghibli.Film) bool {
	if query == "" {
		return func(*ghibli.Film) bool { return true }
	}

	// A Caser is stateful; each matcher owns its own.
	fold := cases.Fold()
	needle := fold.String(query)

	return func(f *ghibli.Film) bool {
		return strings.Contains(fold.String(f.Title), needle) ||
			strings.Contains(fold.String(f.OriginalTitle), needle)
	}
}
