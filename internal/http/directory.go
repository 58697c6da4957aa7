package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/repository"
)

// DirectoryController lists publishers and authors, optionally narrowed by a
// partial name query.
type DirectoryController struct {
	repo repository.Repository
}

func NewDirectoryController(repo repository.Repository) *DirectoryController {
	return &DirectoryController{repo: repo}
}

// Publishers lists publisher names.
// GET /publishers?q=
func (dc *DirectoryController) Publishers(c *gin.Context) {
	publishers := dc.repo.Publishers()
	if query := c.Query("q"); query != "" {
		publishers = dc.repo.PartialSearchPublishers(query)
	}
	names := []string{}
	for _, publisher := range publishers {
		names = append(names, publisher.Name())
	}
	c.JSON(http.StatusOK, gin.H{"publishers": names})
}

type authorEntry struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

// Authors lists authors.
// GET /authors?q=
func (dc *DirectoryController) Authors(c *gin.Context) {
	authors := dc.repo.Authors()
	if query := c.Query("q"); query != "" {
		authors = dc.repo.PartialSearchAuthors(query)
	}
	entries := []authorEntry{}
	for _, author := range authors {
		entries = append(entries, authorEntry{ID: author.ID(), FullName: author.FullName()})
	}
	c.JSON(http.StatusOK, gin.H{"authors": entries})
}
