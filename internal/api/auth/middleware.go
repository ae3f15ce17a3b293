package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/models"
)

// Identity resolves the identity from the session once per request and
// attaches it to the context. Requests without a session stay anonymous;
// no redirect happens here.
func (p *Provider) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(sessionKeyUserID).(uint)
		if !ok {
			c.Next()
			return
		}

		// create user model from session data
		user := &models.User{
			ID:       userID,
			Username: getSessionString(session, sessionKeyUsername),
			IsAdmin:  getSessionBool(session, sessionKeyIsAdmin),
		}

		c.Set("user_id", userID)
		c.Set("user", user)
		c.Next()
	}
}

// RequireAuth guards a route; anonymous requests are redirected to the auth
// entry point and never reach the handler body.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/auth")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUser guards user-only routes. Admin identities are redirected to the
// admin dashboard with a warning.
func (p *Provider) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.IsAdmin {
			AddFlash(c, FlashDanger, "Access denied. Admins cannot access user pages.")
			c.Redirect(http.StatusFound, "/admin_dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin guards admin-only routes. Non-admin identities are redirected
// to the home page with a warning.
func (p *Provider) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			AddFlash(c, FlashDanger, "Access denied. Admins only.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity resolved by the Identity middleware, or
// false for anonymous requests.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
