package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/penmark/penmark/internal/api/models"
)

// Users lists all registered users. Only public fields are exposed;
// emails and password hashes never leave the server.
func (h *Handler) Users(c *gin.Context) {
	users, err := h.auth.Users(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": models.ToUsers(users, h.cfg.Gravatar),
	})
}
