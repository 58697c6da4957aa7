package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/catalog"
)

type BrowseController struct {
	catalog      *catalog.Service
	sessions     *auth.SessionManager
	booksPerPage int
}

func NewBrowseController(service *catalog.Service, sessions *auth.SessionManager, booksPerPage int) *BrowseController {
	return &BrowseController{
		catalog:      service,
		sessions:     sessions,
		booksPerPage: booksPerPage,
	}
}

// Browse lists the catalog with optional filters, sorting and pagination.
// GET /browse?title=&author=&publisher=&year=&sort_by=&count=&books_per_page=
func (bc *BrowseController) Browse(c *gin.Context) {
	query, ok := bc.parseQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bc.catalog.Browse(query))
}

// Bookshelf lists the session user's favourites with the same filters.
// GET /bookshelf
func (bc *BrowseController) Bookshelf(c *gin.Context) {
	query, ok := bc.parseQuery(c)
	if !ok {
		return
	}
	query.FavouritesOf = auth.UserName(c)
	c.JSON(http.StatusOK, bc.catalog.Browse(query))
}

func (bc *BrowseController) parseQuery(c *gin.Context) (catalog.BrowseQuery, bool) {
	query := catalog.BrowseQuery{
		Title:     c.Query("title"),
		Author:    c.Query("author"),
		Publisher: c.Query("publisher"),
		SortBy:    c.Query("sort_by"),
		PerPage:   bc.booksPerPage,
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "invalid year")
			return catalog.BrowseQuery{}, false
		}
		query.Year = &year
	}
	if raw := c.Query("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "invalid count")
			return catalog.BrowseQuery{}, false
		}
		query.Count = count
	}
	if raw := c.Query("books_per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "invalid books_per_page")
			return catalog.BrowseQuery{}, false
		}
		query.PerPage = perPage
	}
	return query, true
}
