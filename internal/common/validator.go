package common

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/ogero/ghibli-films/internal/catalog"
)

// ValidateSortKey checks if the sort key is one of the supported keys.
// An empty key is valid and means fetch order.
func ValidateSortKey(k string) error {
	if k == "" {
		return nil
	}
	if !catalog.SortKey(k).Valid() {
		return errors.New("invalid sort key")
	}

	return nil
}

// ValidatePage parses a 1-based page number.
// An empty value means the first page. Values past the last page are clamped later, not rejected here.
func ValidatePage(p string) (int, error) {
	if p == "" {
		return 1, nil
	}

	v, err := strconv.Atoi(p)
	if err != nil {
		return 0, errors.New("invalid page, not a number")
	}

	if v <= 0 {
		return 0, errors.New("invalid page, less than or equal to 0")
	}

	return v, nil
}

// ValidateFilmID checks if the given film ID is valid.
// Film IDs are UUIDs.
func ValidateFilmID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid film id, not a UUID")
	}

	return nil
}
