package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey         = "userId"
	sessionCookieName = "session"
)

// identifyUser resolves the acting user from the session cookie (or a
// Bearer header for non-browser clients) and stores the id in the gin
// context. It never aborts: anonymous requests continue as anonymous.
func (h *Handler) identifyUser(c *gin.Context) {
	token := sessionToken(c)
	if token == "" {
		c.Next()
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		// expired or tampered cookie → treat as anonymous
		c.Next()
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

// requireUser gates session-only routes: anonymous callers are sent to
// the login page (login-view semantics).
func (h *Handler) requireUser(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.Redirect(http.StatusFound, pathLogin)
		c.Abort()
		return
	}
	c.Next()
}

// redirectIfAuthenticated short-circuits register/login for callers who
// already hold a session; the form is not reprocessed.
func (h *Handler) redirectIfAuthenticated(c *gin.Context) {
	if _, ok := currentUserID(c); ok {
		c.Redirect(http.StatusFound, pathHome)
		c.Abort()
		return
	}
	c.Next()
}

// sessionToken extracts the session token from the cookie, falling back
// to an Authorization: Bearer header.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// currentUserID returns the authenticated user id stored by identifyUser.
func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// setSessionCookie binds the session token to the client. MaxAge is
// left at 0 (browser-session cookie); the token itself carries the
// server-side expiry.
func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
}

// clearSessionCookie destroys the client-side session binding.
func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
