package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/auth"
	"github.com/jon4hz/bookshelf/internal/api/models"
	"github.com/jon4hz/bookshelf/internal/catalog"
	"github.com/jon4hz/bookshelf/internal/config"
	"github.com/jon4hz/bookshelf/internal/database"
)

type Handler struct {
	db       database.DB
	books    *catalog.Client
	provider *auth.Provider
	cfg      *config.GoogleBooksConfig
}

func New(db database.DB, books *catalog.Client, provider *auth.Provider, cfg *config.GoogleBooksConfig) *Handler {
	return &Handler{
		db:       db,
		books:    books,
		provider: provider,
		cfg:      cfg,
	}
}

// Home renders the fixed-subject catalog page. An upstream failure results in
// an empty listing, never an error page.
func (h *Handler) Home(c *gin.Context) {
	volumes := h.books.Search(c.Request.Context(), h.cfg.HomeSubject, h.cfg.HomeLimit)

	user, _ := auth.CurrentUser(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"books":   models.ToSearchResults(volumes),
		"user":    user,
		"flashes": auth.Flashes(c),
	})
}

// Search renders up to the configured maximum of catalog results for a
// free-text query. Nothing is persisted.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		query = c.PostForm("query")
	}

	var results []models.SearchResult
	if query != "" {
		results = models.ToSearchResults(h.books.Search(c.Request.Context(), query, h.cfg.SearchLimit))
	}

	user, _ := auth.CurrentUser(c)
	c.HTML(http.StatusOK, "search.html", gin.H{
		"books":   results,
		"query":   query,
		"user":    user,
		"flashes": auth.Flashes(c),
	})
}
