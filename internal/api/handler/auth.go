package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/auth"
	"github.com/jon4hz/bookshelf/internal/api/models"
)

// credentialsForm is the request-parameter contract shared by the login,
// signup and admin login actions.
type credentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// AuthPage renders the combined login/signup page.
func (h *Handler) AuthPage(c *gin.Context) {
	h.renderAuth(c)
}

// AuthSubmit handles both login and signup, discriminated by the submit
// button name, mirroring the single auth form.
func (h *Handler) AuthSubmit(c *gin.Context) {
	switch {
	case postFormHas(c, "login"):
		h.login(c)
	case postFormHas(c, "signup"):
		h.signup(c)
	default:
		auth.AddFlash(c, auth.FlashDanger, "Unknown form action.")
		h.renderAuth(c)
	}
}

func (h *Handler) login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		auth.AddFlash(c, auth.FlashDanger, "Username and password are required.")
		h.renderAuth(c)
		return
	}

	user, err := h.provider.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error("failed to authenticate user", "error", err)
		}
		auth.AddFlash(c, auth.FlashDanger, "Invalid username or password.")
		h.renderAuth(c)
		return
	}

	identity := models.ToUser(user)
	if err := auth.LoginSession(c, identity); err != nil {
		log.Error("failed to save session", "error", err)
		auth.AddFlash(c, auth.FlashDanger, "Failed to establish session.")
		h.renderAuth(c)
		return
	}

	auth.AddFlash(c, auth.FlashSuccess, "Login successful!")
	if identity.IsAdmin {
		c.Redirect(http.StatusFound, "/admin_dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) signup(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		auth.AddFlash(c, auth.FlashDanger, "Username and password are required.")
		h.renderAuth(c)
		return
	}

	if _, err := h.provider.Register(c.Request.Context(), form.Username, form.Password); err != nil {
		if errors.Is(err, auth.ErrDuplicateUsername) {
			auth.AddFlash(c, auth.FlashDanger, "Username already taken. Please choose a different one.")
		} else {
			log.Error("failed to register user", "error", err)
			auth.AddFlash(c, auth.FlashDanger, "Sign up failed. Please try again.")
		}
		h.renderAuth(c)
		return
	}

	auth.AddFlash(c, auth.FlashSuccess, "Sign Up successful! You can now log in.")
	h.renderAuth(c)
}

// AdminLoginPage renders the dedicated admin login page.
func (h *Handler) AdminLoginPage(c *gin.Context) {
	h.renderAdminLogin(c)
}

// AdminLoginSubmit authenticates restricted to users with the admin flag set.
func (h *Handler) AdminLoginSubmit(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		auth.AddFlash(c, auth.FlashDanger, "Username and password are required.")
		h.renderAdminLogin(c)
		return
	}

	user, err := h.provider.AuthenticateAdmin(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error("failed to authenticate admin", "error", err)
		}
		auth.AddFlash(c, auth.FlashDanger, "Invalid admin credentials.")
		h.renderAdminLogin(c)
		return
	}

	if err := auth.LoginSession(c, models.ToUser(user)); err != nil {
		log.Error("failed to save session", "error", err)
		auth.AddFlash(c, auth.FlashDanger, "Failed to establish session.")
		h.renderAdminLogin(c)
		return
	}

	auth.AddFlash(c, auth.FlashSuccess, "Admin login successful!")
	c.Redirect(http.StatusFound, "/admin_dashboard")
}

// Logout invalidates the session and redirects to the home page.
func (h *Handler) Logout(c *gin.Context) {
	if err := auth.LogoutSession(c); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) renderAuth(c *gin.Context) {
	c.HTML(http.StatusOK, "auth.html", gin.H{
		"flashes": auth.Flashes(c),
	})
}

func (h *Handler) renderAdminLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"flashes": auth.Flashes(c),
	})
}

// postFormHas reports whether the form contains the given field, regardless
// of its value. Used for the login/signup submit button discriminator.
func postFormHas(c *gin.Context, key string) bool {
	_, ok := c.GetPostForm(key)
	return ok
}
