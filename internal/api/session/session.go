// Package session maps the cookie-backed session onto an explicit
// identity value so handlers and services never read session state
// ambiently.
package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/penmark/penmark/internal/auth"
)

const (
	keyUserID   = "user_id"
	keyUsername = "user_username"

	ctxIdentity = "identity"
)

// Identify attaches the session identity to the gin context.
// A request with no or broken session data is treated as a guest.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		var ident auth.Identity
		if id, ok := sess.Get(keyUserID).(uint); ok {
			username, _ := sess.Get(keyUsername).(string)
			ident = auth.Identity{UserID: id, Username: username}
		}

		c.Set(ctxIdentity, ident)
		c.Next()
	}
}

// RequireAuth rejects guests with 401 before the handler runs.
// It must be registered after Identify.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Current(c).IsGuest() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// Current returns the identity attached by Identify, or a guest identity.
func Current(c *gin.Context) auth.Identity {
	if v, ok := c.Get(ctxIdentity); ok {
		if ident, ok := v.(auth.Identity); ok {
			return ident
		}
	}
	return auth.Identity{}
}

// Bind marks the session as authenticated.
func Bind(c *gin.Context, ident auth.Identity) error {
	sess := sessions.Default(c)
	sess.Set(keyUserID, ident.UserID)
	sess.Set(keyUsername, ident.Username)
	return sess.Save()
}

// Destroy clears all session state and expires the cookie.
func Destroy(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}
