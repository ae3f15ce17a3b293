package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/auth"
	"github.com/jon4hz/bookshelf/internal/api/models"
	"github.com/jon4hz/bookshelf/internal/database"
	"gorm.io/gorm"
)

// bookForm is the request-parameter contract for adding a book, either
// manually or from a search result.
type bookForm struct {
	Title       string `form:"title" binding:"required"`
	Author      string `form:"author"`
	Description string `form:"description"`
	Thumbnail   string `form:"thumbnail"`
	InfoLink    string `form:"info_link"`
}

// Dashboard lists the owner's shelf. A POST with a query additionally runs a
// catalog search and renders the transient results on the same page.
func (h *Handler) Dashboard(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	books, err := h.db.GetBooksByUser(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to load shelf", "error", err, "user", user.Username)
	}

	view := gin.H{
		"user":    user,
		"books":   models.ToBooks(books),
		"flashes": auth.Flashes(c),
	}

	if c.Request.Method == http.MethodPost {
		if query := c.PostForm("query"); query != "" {
			results := h.books.Search(c.Request.Context(), query, h.cfg.SearchLimit)
			view["search_results"] = models.ToSearchResults(results)
			view["query"] = query
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", view)
}

// AddBook inserts a manually entered book into the owner's shelf. No
// duplicate check is performed here.
func (h *Handler) AddBook(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		auth.AddFlash(c, auth.FlashDanger, "A book title is required.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	book := newBook(form, user.ID)
	if err := h.db.CreateBook(c.Request.Context(), book); err != nil {
		auth.AddFlash(c, auth.FlashDanger, "Failed to add the book to your shelf.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	auth.AddFlash(c, auth.FlashSuccess, fmt.Sprintf("Book %q added to your shelf!", book.Title))
	c.Redirect(http.StatusFound, "/dashboard")
}

// AddBookToShelf inserts a book from the search results unless a book with
// exactly the same title is already on the owner's shelf.
func (h *Handler) AddBookToShelf(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		auth.AddFlash(c, auth.FlashDanger, "A book title is required.")
		c.Redirect(http.StatusFound, "/search")
		return
	}

	ctx := c.Request.Context()
	_, err := h.db.GetBookByTitleAndOwner(ctx, form.Title, user.ID)
	if err == nil {
		auth.AddFlash(c, auth.FlashInfo, "This book is already on your shelf.")
		c.Redirect(http.StatusFound, "/search")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		auth.AddFlash(c, auth.FlashDanger, "Failed to add the book to your shelf.")
		c.Redirect(http.StatusFound, "/search")
		return
	}

	book := newBook(form, user.ID)
	if err := h.db.CreateBook(ctx, book); err != nil {
		auth.AddFlash(c, auth.FlashDanger, "Failed to add the book to your shelf.")
		c.Redirect(http.StatusFound, "/search")
		return
	}

	auth.AddFlash(c, auth.FlashSuccess, fmt.Sprintf("Book %q added to your shelf!", book.Title))
	c.Redirect(http.StatusFound, "/search")
}

// RemoveBookFromShelf deletes the book with the given ID only if it is owned
// by the current identity.
func (h *Handler) RemoveBookFromShelf(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		auth.AddFlash(c, auth.FlashDanger, "The book could not be found or does not belong to your shelf.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	book, err := h.db.DeleteBook(c.Request.Context(), uint(id), user.ID)
	if err != nil {
		auth.AddFlash(c, auth.FlashDanger, "The book could not be found or does not belong to your shelf.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	auth.AddFlash(c, auth.FlashSuccess, fmt.Sprintf("Book %q removed from your shelf.", book.Title))
	c.Redirect(http.StatusFound, "/dashboard")
}

func newBook(form bookForm, userID uint) *database.Book {
	author := form.Author
	if author == "" {
		author = "Unknown Author"
	}
	return &database.Book{
		Title:       form.Title,
		Author:      author,
		Description: form.Description,
		Thumbnail:   form.Thumbnail,
		InfoLink:    form.InfoLink,
		UserID:      userID,
	}
}
