package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/penmark/penmark/internal/api/session"
	"github.com/penmark/penmark/internal/auth"
)

type loginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type signupForm struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm"`
}

// LoginForm tells the client what the login form expects.
func (h *Handler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"email", "password"}})
}

// Login verifies credentials and binds the session.
// Both failure reasons collapse into one generic message so the endpoint
// can't be used to enumerate accounts.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	ident, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if errors.Is(err, auth.ErrNoSuchUser) || errors.Is(err, auth.ErrBadPassword) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := session.Bind(c, ident); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/list")
}

// Logout destroys the session. Cleanup is best-effort: even if the
// store can't be invalidated right away the user is treated as logged out.
func (h *Handler) Logout(c *gin.Context) {
	if err := session.Destroy(c); err != nil {
		log.Error("failed to destroy session", "error", err)
	}
	c.Redirect(http.StatusFound, "/articles")
}

// SignupForm tells the client what the signup form expects.
func (h *Handler) SignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"username", "email", "password", "password_confirm"}})
}

// Signup registers a new user and redirects to the login form.
func (h *Handler) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	_, err := h.auth.Signup(c.Request.Context(), auth.SignupForm{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
