package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/penmark/penmark/internal/api/models"
	"github.com/penmark/penmark/internal/auth"
	"github.com/penmark/penmark/internal/blog"
	"github.com/penmark/penmark/internal/config"
	"github.com/penmark/penmark/internal/database"
	"github.com/penmark/penmark/internal/validation"
)

type Handler struct {
	auth *auth.Service
	blog *blog.Service
	cfg  *config.Config
}

func New(authSvc *auth.Service, blogSvc *blog.Service, cfg *config.Config) *Handler {
	return &Handler{
		auth: authSvc,
		blog: blogSvc,
		cfg:  cfg,
	}
}

// Home returns the latest articles for the front page.
func (h *Handler) Home(c *gin.Context) {
	articles, err := h.blog.Latest(c.Request.Context(), h.cfg.Pagination.HomeSize)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"articles": models.ToArticles(articles, h.cfg.Gravatar),
	})
}

// abortWithError translates service errors into HTTP responses.
// Store failures are logged server-side and surfaced as a generic 500.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []string(verr)})
	case errors.Is(err, blog.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
	case errors.Is(err, blog.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you can only modify your own articles"})
	case errors.Is(err, blog.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "article not found"})
	case errors.Is(err, database.ErrDuplicateEmail):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
	default:
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
