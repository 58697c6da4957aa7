package catalog

import (
	"sort"
	"strings"

	"github.com/mrlokans/bookcatalog/internal/repository"
)

// Filters describes the browse criteria. A blank query or nil year is
// inactive and bypassed entirely rather than matching nothing; an active
// query that matches no entities matches no books.
type Filters struct {
	TitleQuery     string
	AuthorQuery    string
	PublisherQuery string
	Year           *int
	FavouriteIDs   []int
	// FavouritesOnly restricts results to FavouriteIDs even when that
	// list is empty.
	FavouritesOnly bool
}

// FilterBookIDs returns the ids of books matching every active criterion,
// deduplicated and in ascending order. With no active criteria the whole
// catalog qualifies.
func FilterBookIDs(repo repository.Repository, f Filters) []int {
	lists := [][]int{}
	if active(f.TitleQuery) {
		lists = append(lists, repo.PartialSearchBooksByTitle(f.TitleQuery))
	}
	if active(f.AuthorQuery) {
		lists = append(lists, repo.BookIDsByAuthors(repo.PartialSearchAuthors(f.AuthorQuery)))
	}
	if active(f.PublisherQuery) {
		lists = append(lists, repo.BookIDsByPublishers(repo.PartialSearchPublishers(f.PublisherQuery)))
	}
	if f.Year != nil {
		lists = append(lists, repo.BookIDsByYear(*f.Year))
	}
	if f.FavouritesOnly {
		lists = append(lists, f.FavouriteIDs)
	}

	if len(lists) == 0 {
		return repo.AllBookIDs()
	}

	// Seed the scan with the largest active list; every other active list
	// acts as a membership check.
	largest := 0
	for i, list := range lists {
		if len(list) > len(lists[largest]) {
			largest = i
		}
	}

	sets := make([]map[int]struct{}, 0, len(lists)-1)
	for i, list := range lists {
		if i == largest {
			continue
		}
		set := make(map[int]struct{}, len(list))
		for _, id := range list {
			set[id] = struct{}{}
		}
		sets = append(sets, set)
	}

	matched := []int{}
candidates:
	for _, id := range lists[largest] {
		for _, set := range sets {
			if _, ok := set[id]; !ok {
				continue candidates
			}
		}
		matched = append(matched, id)
	}
	return dedupAscending(matched)
}

func active(query string) bool {
	return strings.TrimSpace(query) != ""
}

// dedupAscending sorts ids ascending and drops duplicates, giving the engine
// a deterministic baseline order before any user-chosen sort.
func dedupAscending(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := []int{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Ints(unique)
	return unique
}
