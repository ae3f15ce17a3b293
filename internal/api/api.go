package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/bookshelf/internal/api/auth"
	"github.com/jon4hz/bookshelf/internal/api/handler"
	"github.com/jon4hz/bookshelf/internal/api/middleware"
	"github.com/jon4hz/bookshelf/internal/catalog"
	"github.com/jon4hz/bookshelf/internal/config"
	"github.com/jon4hz/bookshelf/internal/database"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        database.DB
	books     *catalog.Client
	provider  *auth.Provider
}

func New(cfg *config.Config, db database.DB, books *catalog.Client) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
		books:     books,
		provider:  auth.NewProvider(db),
	}
	s.ginEngine.LoadHTMLGlob(cfg.TemplateGlob)
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("bookshelf_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()
	s.ginEngine.Use(
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RequestID(),
		s.provider.Identity(),
	)

	h := handler.New(s.db, s.books, s.provider, s.cfg.GoogleBooks)

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/auth", h.AuthPage)
	s.ginEngine.POST("/auth", h.AuthSubmit)
	s.ginEngine.GET("/search", h.Search)
	s.ginEngine.POST("/search", h.Search)
	s.ginEngine.GET("/admin_login", h.AdminLoginPage)
	s.ginEngine.POST("/admin_login", h.AdminLoginSubmit)

	userGroup := s.ginEngine.Group("/")
	userGroup.Use(s.provider.RequireAuth(), s.provider.RequireUser())
	userGroup.GET("/dashboard", h.Dashboard)
	userGroup.POST("/dashboard", h.Dashboard)
	userGroup.POST("/add_book", h.AddBook)
	userGroup.POST("/add_book_to_shelf", h.AddBookToShelf)
	userGroup.POST("/remove_book_from_shelf/:id", h.RemoveBookFromShelf)

	adminGroup := s.ginEngine.Group("/")
	adminGroup.Use(s.provider.RequireAuth(), s.provider.RequireAdmin())
	adminGroup.GET("/admin_dashboard", h.AdminDashboard)

	authed := s.ginEngine.Group("/")
	authed.Use(s.provider.RequireAuth())
	authed.GET("/logout", h.Logout)
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
