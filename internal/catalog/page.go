package catalog

import "github.com/mrlokans/bookcatalog/internal/domain"

// PerPageChoices are the accepted page sizes.
var PerPageChoices = []int{12, 18, 24}

// DefaultPerPage is used when the requested size is not one of the choices.
const DefaultPerPage = 12

// NormalizePerPage maps any requested page size onto an accepted one.
func NormalizePerPage(perPage int) int {
	for _, choice := range PerPageChoices {
		if perPage == choice {
			return perPage
		}
	}
	return DefaultPerPage
}

// Page is one window of a sorted book list. Count is the offset the window
// starts at; PrevCount and NextCount are the offsets of the neighbouring
// windows and are only meaningful when the matching Has flag is set.
type Page struct {
	Books     []*domain.Book
	Total     int
	Count     int
	PerPage   int
	HasPrev   bool
	PrevCount int
	HasNext   bool
	NextCount int
}

// Paginate slices books into the window [count, count+perPage). A negative
// count is treated as zero and perPage is normalized.
func Paginate(books []*domain.Book, count, perPage int) Page {
	perPage = NormalizePerPage(perPage)
	if count < 0 {
		count = 0
	}

	total := len(books)
	start := count
	if start > total {
		start = total
	}
	end := count + perPage
	if end > total {
		end = total
	}

	page := Page{
		Books:   books[start:end],
		Total:   total,
		Count:   count,
		PerPage: perPage,
	}
	if count > 0 {
		page.HasPrev = true
		page.PrevCount = count - perPage
		if page.PrevCount < 0 {
			page.PrevCount = 0
		}
	}
	if count+perPage < total {
		page.HasNext = true
		page.NextCount = count + perPage
	}
	return page
}
