package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/auth"
	"github.com/jon4hz/bookshelf/internal/api/models"
)

// AdminDashboard lists all users and, per user, all owned books.
func (h *Handler) AdminDashboard(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	ctx := c.Request.Context()

	users, err := h.db.GetAllUsers(ctx)
	if err != nil {
		log.Error("failed to load users", "error", err)
	}

	shelves := make([]models.UserShelf, 0, len(users))
	for _, u := range users {
		books, err := h.db.GetBooksByUser(ctx, u.ID)
		if err != nil {
			log.Error("failed to load shelf", "error", err, "user", u.Username)
		}
		shelves = append(shelves, models.UserShelf{
			User:  models.ToUser(&u),
			Books: models.ToBooks(books),
		})
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"user":    user,
		"shelves": shelves,
		"flashes": auth.Flashes(c),
	})
}
