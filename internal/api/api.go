package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/penmark/penmark/internal/api/handler"
	"github.com/penmark/penmark/internal/api/session"
	"github.com/penmark/penmark/internal/auth"
	"github.com/penmark/penmark/internal/blog"
	"github.com/penmark/penmark/internal/config"
	"github.com/penmark/penmark/internal/database"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	handler   *handler.Handler
}

func New(cfg *config.Config, db database.DB, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	authSvc := auth.NewService(db)
	blogSvc := blog.NewService(db, cfg.Pagination.PageSize)

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		handler:   handler.New(authSvc, blogSvc, cfg),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupSession() {
	key := s.cfg.Session.Key
	if key == "" {
		// Sessions won't survive a restart without a configured key.
		key = uuid.NewString()
		log.Warn("no session key configured, generated a random one")
	}

	store := cookie.NewStore([]byte(key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   s.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("penmark_session", store))
	s.ginEngine.Use(session.Identify())
}

func (s *Server) setupRoutes() {
	s.setupSession()

	h := s.handler

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/list", h.ListPage)
	s.ginEngine.GET("/articles", h.AllArticles)
	s.ginEngine.GET("/article/:id", h.Article)
	s.ginEngine.GET("/search", h.Search)
	s.ginEngine.GET("/users", h.Users)

	s.ginEngine.GET("/login", h.LoginForm)
	s.ginEngine.POST("/login", h.Login)
	s.ginEngine.GET("/logout", h.Logout)
	s.ginEngine.GET("/signup", h.SignupForm)
	s.ginEngine.POST("/signup", h.Signup)

	protected := s.ginEngine.Group("/")
	protected.Use(session.RequireAuth())

	protected.GET("/add-article", h.AddArticleForm)
	protected.POST("/add-article", h.AddArticle)
	protected.GET("/article/:id/edit", h.EditArticleForm)
	protected.POST("/article/:id/edit", h.EditArticle)
	protected.POST("/article/:id/delete", h.DeleteArticle)
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() http.Handler {
	return s.ginEngine
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
