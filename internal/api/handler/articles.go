package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/penmark/penmark/internal/api/models"
	"github.com/penmark/penmark/internal/api/session"
	"github.com/penmark/penmark/internal/blog"
)

// articleForm is the request shape for creating and editing articles.
type articleForm struct {
	Title    string `form:"title" json:"title"`
	Summary  string `form:"summary" json:"summary"`
	Content  string `form:"content" json:"content"`
	Category string `form:"category" json:"category"`
}

func (f articleForm) toBlog() blog.ArticleForm {
	return blog.ArticleForm{
		Title:    f.Title,
		Summary:  f.Summary,
		Content:  f.Content,
		Category: f.Category,
	}
}

// articleID parses the :id route parameter. A malformed id behaves
// like a missing article.
func articleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return 0, false
	}
	return uint(id), true
}

// ListPage returns one page of the article list.
func (h *Handler) ListPage(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := h.blog.List(c.Request.Context(), page)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ArticlePage{
		Articles:   models.ToArticles(result.Articles, h.cfg.Gravatar),
		Current:    result.Current,
		TotalPages: result.TotalPages,
	})
}

// AllArticles returns every article, newest first.
func (h *Handler) AllArticles(c *gin.Context) {
	articles, err := h.blog.All(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"articles": models.ToArticles(articles, h.cfg.Gravatar),
	})
}

// Article returns one article with its author.
func (h *Handler) Article(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.blog.Get(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	ident := session.Current(c)
	c.JSON(http.StatusOK, gin.H{
		"article":   models.ToArticle(*article, h.cfg.Gravatar),
		"is_owner":  !ident.IsGuest() && ident.UserID == article.UserID,
		"logged_in": !ident.IsGuest(),
	})
}

// AddArticleForm returns what the create form needs.
func (h *Handler) AddArticleForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": []string{blog.CategoryAll, blog.CategoryLimited},
	})
}

// AddArticle creates an article owned by the current identity and
// redirects to its detail page.
func (h *Handler) AddArticle(c *gin.Context) {
	var form articleForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	id, err := h.blog.Create(c.Request.Context(), session.Current(c), form.toBlog())
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/article/%d", id))
}

// EditArticleForm returns the article for the edit form, owner only.
func (h *Handler) EditArticleForm(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.blog.GetOwned(c.Request.Context(), session.Current(c), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article":    models.ToArticle(*article, h.cfg.Gravatar),
		"categories": []string{blog.CategoryAll, blog.CategoryLimited},
	})
}

// EditArticle updates an article and redirects to its detail page.
func (h *Handler) EditArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var form articleForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	if err := h.blog.Update(c.Request.Context(), session.Current(c), id, form.toBlog()); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/article/%d", id))
}

// DeleteArticle removes an article and redirects to the article list.
func (h *Handler) DeleteArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.blog.Delete(c.Request.Context(), session.Current(c), id); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/articles")
}

// Search returns articles matching the query keyword.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")

	articles, err := h.blog.Search(c.Request.Context(), query)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"articles": models.ToArticles(articles, h.cfg.Gravatar),
	})
}
