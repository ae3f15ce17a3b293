package auth

import (
	"encoding/gob"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/models"
)

// Session keys for the resolved identity.
const (
	sessionKeyUserID   = "user_id"
	sessionKeyUsername = "user_username"
	sessionKeyIsAdmin  = "user_is_admin"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Flash categories, mirroring the presentation layer's styling hooks.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

func init() {
	gob.Register(Flash{})
}

// LoginSession binds the session to the given user identifier.
func LoginSession(c *gin.Context, user models.User) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyUsername, user.Username)
	session.Set(sessionKeyIsAdmin, user.IsAdmin)
	return session.Save()
}

// LogoutSession invalidates the session, returning the identity to anonymous.
func LogoutSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// AddFlash queues a one-shot message for the next rendered page.
func AddFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(Flash{Category: category, Message: message})
	if err := session.Save(); err != nil {
		log.Error("failed to save session flash", "error", err)
	}
}

// Flashes returns and consumes all queued flash messages.
func Flashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		log.Error("failed to save session after consuming flashes", "error", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}

func getSessionString(session sessions.Session, key string) string {
	if v, ok := session.Get(key).(string); ok {
		return v
	}
	return ""
}

func getSessionBool(session sessions.Session, key string) bool {
	if v, ok := session.Get(key).(bool); ok {
		return v
	}
	return false
}
