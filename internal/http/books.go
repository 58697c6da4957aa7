package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/repository"
)

type BookController struct {
	catalog  *catalog.Service
	sessions *auth.SessionManager
}

func NewBookController(service *catalog.Service, sessions *auth.SessionManager) *BookController {
	return &BookController{catalog: service, sessions: sessions}
}

// BookDetailResponse is the book page payload: the projection plus its
// aggregated ratings and the session user's favourite flag.
type BookDetailResponse struct {
	catalog.BookRecord
	RatingStats catalog.RatingStats `json:"rating_stats"`
	IsFavourite bool                `json:"is_favourite"`
}

// Detail returns a single book.
// GET /books/:id
func (bc *BookController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	record, err := bc.catalog.BookByID(id)
	if errors.Is(err, catalog.ErrUnknownBook) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "book detail")
		return
	}

	stats, err := bc.catalog.RatingStatsForBook(id)
	if err != nil {
		respondInternalError(c, err, "book rating stats")
		return
	}

	response := BookDetailResponse{
		BookRecord:  record,
		RatingStats: stats,
	}
	if bc.sessions != nil {
		if userName := bc.sessions.GetUserName(c.Request); userName != "" {
			response.IsFavourite = bc.catalog.IsFavourite(userName, id)
		}
	}
	c.JSON(http.StatusOK, response)
}

// Reviews lists a book's reviews, newest first.
// GET /books/:id/reviews
func (bc *BookController) Reviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := bc.catalog.ReviewsForBook(id)
	if errors.Is(err, catalog.ErrUnknownBook) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "book reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"book_id": id, "reviews": reviews})
}

// ReviewRequest is the POST body for a new review.
type ReviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// PostReview posts a review on a book as the session user.
// POST /books/:id/reviews
func (bc *BookController) PostReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid review payload")
		return
	}

	err := bc.catalog.AddReview(id, req.Text, req.Rating, auth.UserName(c))
	switch {
	case errors.Is(err, catalog.ErrUnknownBook):
		respondNotFound(c, "book")
	case errors.Is(err, catalog.ErrUnknownUser):
		respondNotFound(c, "user")
	case errors.Is(err, repository.ErrInconsistentReview):
		respondInternalError(c, err, "post review")
	case err != nil:
		respondBadRequest(c, err.Error())
	default:
		respondSuccess(c, "review added")
	}
}

// ToggleFavourite flips the favourite mark on a book for the session user.
// POST /books/:id/favourite
func (bc *BookController) ToggleFavourite(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userName := auth.UserName(c)
	err := bc.catalog.ToggleFavourite(userName, id)
	switch {
	case errors.Is(err, catalog.ErrUnknownBook):
		respondNotFound(c, "book")
	case errors.Is(err, catalog.ErrUnknownUser):
		respondNotFound(c, "user")
	case err != nil:
		respondInternalError(c, err, "toggle favourite")
	default:
		c.JSON(http.StatusOK, gin.H{
			"book_id":      id,
			"is_favourite": bc.catalog.IsFavourite(userName, id),
		})
	}
}
