package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/catalog"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/domain"
	"github.com/mrlokans/bookcatalog/internal/repository/memory"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *memory.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.New()
	seedTestCatalog(t, repo)

	sessions, err := auth.NewSessionManager(nil, config.Auth{
		SessionLifetime: time.Hour,
		SecureCookies:   false,
	})
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Repository:     repo,
		Catalog:        catalog.NewService(repo),
		AuthService:    auth.NewService(repo, bcrypt.MinCost),
		SessionManager: sessions,
		LoginLimiter:   auth.NewLoginLimiter(60, 30),
		BooksPerPage:   12,
		Version:        "test",
	})
	return router, repo
}

func seedTestCatalog(t *testing.T, repo *memory.Repository) {
	t.Helper()

	gaiman, err := domain.NewAuthor(1, "Neil Gaiman")
	require.NoError(t, err)
	require.NoError(t, repo.AddAuthor(gaiman))

	gollancz := domain.NewPublisher("Gollancz")
	require.NoError(t, repo.AddPublisher(gollancz))

	gods, err := domain.NewBook(1, "American Gods")
	require.NoError(t, err)
	require.NoError(t, gods.SetReleaseYear(2001))
	require.NoError(t, domain.MakeAuthorAssociation(gods, gaiman))
	require.NoError(t, domain.MakePublisherAssociation(gods, gollancz))
	require.NoError(t, repo.AddBook(gods))

	coraline, err := domain.NewBook(2, "Coraline")
	require.NoError(t, err)
	require.NoError(t, domain.MakeAuthorAssociation(coraline, gaiman))
	require.NoError(t, repo.AddBook(coraline))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns the session cookies.
func register(t *testing.T, router *gin.Engine, userName, password string) []*http.Cookie {
	t.Helper()
	w := doJSON(t, router, "POST", "/auth/register", CredentialsRequest{
		UserName: userName,
		Password: password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "count=2", health.Checks["books"])
}

func TestBrowse(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("whole catalog", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/browse", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result catalog.BrowseResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 2, result.Total)
		require.Len(t, result.Books, 2)
		assert.Equal(t, "American Gods", result.Books[0].Title)
	})

	t.Run("filters combine", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/browse?title=america&year=2001", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result catalog.BrowseResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Len(t, result.Books, 1)
		assert.Equal(t, 1, result.Books[0].ID)
	})

	t.Run("malformed year", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/browse?year=abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookDetail(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("existing book", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/books/1", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var detail BookDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, "American Gods", detail.Title)
		assert.Equal(t, "Gollancz", detail.Publisher)
		assert.False(t, detail.IsFavourite)
		assert.Zero(t, detail.RatingStats.Count)
	})

	t.Run("book without publisher", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/books/2", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var detail BookDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, domain.UnknownPublisher, detail.Publisher)
	})

	t.Run("unknown book", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/books/99", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/books/abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDirectory(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/publishers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"publishers":["Gollancz"]}`, w.Body.String())

	w = doJSON(t, router, "GET", "/authors?q=gaiman", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authors":[{"id":1,"full_name":"Neil Gaiman"}]}`, w.Body.String())
}

func TestAuthFlow(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("register login logout", func(t *testing.T) {
		cookies := register(t, router, "Martin", "Password123")

		w := doJSON(t, router, "POST", "/auth/login", CredentialsRequest{
			UserName: "martin",
			Password: "Password123",
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "POST", "/auth/logout", nil, cookies)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		register(t, router, "Eve", "Password123")
		w := doJSON(t, router, "POST", "/auth/register", CredentialsRequest{
			UserName: "EVE",
			Password: "Password456",
		}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/auth/register", CredentialsRequest{
			UserName: "short",
			Password: "tiny",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong password is a generic 401", func(t *testing.T) {
		register(t, router, "Frank", "Password123")
		w := doJSON(t, router, "POST", "/auth/login", CredentialsRequest{
			UserName: "frank",
			Password: "Password999",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid username or password"}`, w.Body.String())

		w = doJSON(t, router, "POST", "/auth/login", CredentialsRequest{
			UserName: "ghost",
			Password: "Password123",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid username or password"}`, w.Body.String())
	})
}

func TestProtectedRoutes(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("anonymous requests are rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, router, "GET", "/bookshelf", nil, nil).Code)
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, router, "POST", "/books/1/favourite", nil, nil).Code)
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, router, "POST", "/books/1/reviews", ReviewRequest{Text: "x", Rating: 3}, nil).Code)
	})

	t.Run("favourite toggle and bookshelf", func(t *testing.T) {
		cookies := register(t, router, "Martin", "Password123")

		w := doJSON(t, router, "POST", "/books/1/favourite", nil, cookies)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"book_id":1,"is_favourite":true}`, w.Body.String())

		w = doJSON(t, router, "GET", "/bookshelf", nil, cookies)
		require.Equal(t, http.StatusOK, w.Code)
		var shelf catalog.BrowseResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shelf))
		require.Len(t, shelf.Books, 1)
		assert.Equal(t, 1, shelf.Books[0].ID)

		w = doJSON(t, router, "POST", "/books/1/favourite", nil, cookies)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"book_id":1,"is_favourite":false}`, w.Body.String())
	})

	t.Run("post review", func(t *testing.T) {
		cookies := register(t, router, "Reviewer", "Password123")

		w := doJSON(t, router, "POST", "/books/2/reviews", ReviewRequest{Text: "Creepy and great", Rating: 5}, cookies)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "GET", "/books/2/reviews", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var payload struct {
			Reviews []catalog.ReviewRecord `json:"reviews"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		require.Len(t, payload.Reviews, 1)
		assert.Equal(t, "reviewer", payload.Reviews[0].UserName)
		assert.Equal(t, 5, payload.Reviews[0].Rating)

		w = doJSON(t, router, "POST", "/books/2/reviews", ReviewRequest{Text: "x", Rating: 11}, cookies)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, router, "POST", "/books/99/reviews", ReviewRequest{Text: "x", Rating: 3}, cookies)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
