package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie holds the browser's session id
	SessionCookie = "bd_session"
	// sessionMaxAge keeps the cookie for a year, like browser-local storage
	sessionMaxAge = 365 * 24 * 60 * 60
)

// sessionID returns the caller's session id, issuing a new cookie if the
// request has none or a malformed one
func (h *Handler) sessionID(c *gin.Context) string {
	if id, ok := c.Get(SessionCookie); ok {
		return id.(string)
	}
	if raw, err := c.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(raw); err == nil {
			c.Set(SessionCookie, id.String())
			return id.String()
		}
	}

	id := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", h.secureCookies, true)
	c.Set(SessionCookie, id)
	return id
}
