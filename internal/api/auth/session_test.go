package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("test_session", store))
	return router
}

func TestFlashRoundTrip(t *testing.T) {
	router := newSessionRouter()

	router.GET("/set", func(c *gin.Context) {
		AddFlash(c, FlashSuccess, "it worked")
		c.Status(http.StatusOK)
	})
	router.GET("/get", func(c *gin.Context) {
		flashes := Flashes(c)
		require.Len(t, flashes, 1)
		assert.Equal(t, FlashSuccess, flashes[0].Category)
		assert.Equal(t, "it worked", flashes[0].Message)

		// Flashes are one-shot
		assert.Empty(t, Flashes(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/set", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest("GET", "/get", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginAndLogoutSession(t *testing.T) {
	router := newSessionRouter()

	user := models.User{ID: 42, Username: "alice", IsAdmin: false}

	router.GET("/login", func(c *gin.Context) {
		require.NoError(t, LoginSession(c, user))
		c.Status(http.StatusOK)
	})
	router.GET("/logout", func(c *gin.Context) {
		require.NoError(t, LogoutSession(c))
		c.Status(http.StatusOK)
	})
	router.GET("/whoami", func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get("user_id").(uint)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, uint(42), id)
		assert.Equal(t, "alice", getSessionString(session, "user_username"))
		assert.False(t, getSessionBool(session, "user_is_admin"))
		c.Status(http.StatusOK)
	})

	// Login
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Session resolves to the user
	req := httptest.NewRequest("GET", "/whoami", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Logout clears the session
	req = httptest.NewRequest("GET", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	loggedOut := w.Result().Cookies()

	req = httptest.NewRequest("GET", "/whoami", nil)
	for _, c := range loggedOut {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionHelperFunctions(t *testing.T) {
	router := newSessionRouter()

	router.GET("/test-helpers", func(c *gin.Context) {
		session := sessions.Default(c)

		session.Set("string_val", "test_string")
		session.Set("bool_val", true)
		session.Set("int_val", 42)
		_ = session.Save()

		assert.Equal(t, "test_string", getSessionString(session, "string_val"))
		assert.Equal(t, "", getSessionString(session, "int_val"))     // non-string
		assert.Equal(t, "", getSessionString(session, "missing_key")) // missing

		assert.Equal(t, true, getSessionBool(session, "bool_val"))
		assert.Equal(t, false, getSessionBool(session, "string_val"))  // non-bool
		assert.Equal(t, false, getSessionBool(session, "missing_key")) // missing

		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test-helpers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
