package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session cookie and gin-context keys.
const (
	sessionCookieName = "token"

	ctxUserIDKey   = "userId"
	ctxUsernameKey = "username"

	requestIDHeader = "X-Request-Id"
)

// requestIDMiddleware tags every request with an id for log correlation.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("requestId", id)
	c.Writer.Header().Set(requestIDHeader, id)
	c.Next()
}

// sessionMiddleware gates a route on a valid session cookie. Missing
// cookie: 401. Invalid or expired cookie: clear it and 401 — a rejection
// status, never a redirect, so API clients can detect the failure. On
// success the VERIFIED claims are attached to the gin context; downstream
// handlers must take identity from there and never from body fields.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "no session token provided",
		})
		return
	}

	claims, err := h.services.Sessions.Verify(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("session_rejected", "err", err)
		}
		h.clearSessionCookie(c)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserIDKey, claims.UserID)
	c.Set(ctxUsernameKey, claims.Username)
	c.Next()
}

// setSessionCookie transports a freshly issued token. maxAge is seconds
// until the token itself expires, so cookie and token die together.
func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(h.sameSiteMode())
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", h.cookies.Secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(h.sameSiteMode())
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.cookies.Secure, true)
}

func (h *Handler) sameSiteMode() http.SameSite {
	if h.cookies.CrossSite {
		// Cross-site frontends need SameSite=None, which browsers only
		// accept together with Secure.
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// currentUserID reads the verified account id attached by sessionMiddleware.
func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// currentUsername reads the verified username attached by sessionMiddleware.
func currentUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUsernameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
