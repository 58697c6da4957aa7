package catalog

import (
	"sort"
	"strings"

	"github.com/mrlokans/bookcatalog/internal/domain"
)

// Sort keys accepted by SortBooks. Anything else falls back to alphabetical.
const (
	SortAlphabetical   = "alphabetical"
	SortYearAscending  = "ascending"
	SortYearDescending = "descending"
	SortBestReviewed   = "best_reviewed"
	SortMostReviewed   = "most_reviewed"
)

// SortBooks orders books in place by the given key. Sorts are stable, so
// books tied on the key keep their incoming ascending-id order. Books without
// a release year go last under both year orderings.
func SortBooks(books []*domain.Book, key string) {
	switch key {
	case SortYearAscending:
		sort.SliceStable(books, func(i, j int) bool {
			yi, yj := books[i].ReleaseYear(), books[j].ReleaseYear()
			if yi == nil {
				return false
			}
			if yj == nil {
				return true
			}
			return *yi < *yj
		})
	case SortYearDescending:
		sort.SliceStable(books, func(i, j int) bool {
			yi, yj := books[i].ReleaseYear(), books[j].ReleaseYear()
			if yi == nil {
				return false
			}
			if yj == nil {
				return true
			}
			return *yi > *yj
		})
	case SortBestReviewed:
		sort.SliceStable(books, func(i, j int) bool {
			return averageRating(books[i].Reviews()) > averageRating(books[j].Reviews())
		})
	case SortMostReviewed:
		sort.SliceStable(books, func(i, j int) bool {
			return len(books[i].Reviews()) > len(books[j].Reviews())
		})
	default:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Title()) < strings.ToLower(books[j].Title())
		})
	}
}
