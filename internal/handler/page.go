package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"book-deconstructor/internal/app"
	"book-deconstructor/internal/web"

	"github.com/gin-gonic/gin"
)

// HandleIndex renders the page for the caller's current state
func (h *Handler) HandleIndex(c *gin.Context) {
	snap := h.controller(c).Snapshot()
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, web.PageTemplate, web.NewPage(snap))
}

// HandleDeconstruct starts a deconstruction from the search form
func (h *Handler) HandleDeconstruct(c *gin.Context) {
	// Begin records the title as the input only when it accepts it
	req, err := h.controller(c).Begin(normalizeTitle(c.PostForm("title")))
	h.startOrIgnore(c, req, err)
}

// HandleRetry re-issues the last query from the error panel
func (h *Handler) HandleRetry(c *gin.Context) {
	req, err := h.controller(c).BeginRetry()
	h.startOrIgnore(c, req, err)
}

// HandleHistory re-submits a history chip. The chip posts the title it
// showed, which wins over the index if the history changed since rendering.
func (h *Handler) HandleHistory(c *gin.Context) {
	if title := c.PostForm("title"); title != "" {
		req, err := h.controller(c).BeginHistoryEntry(title)
		h.startOrIgnore(c, req, err)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		redirectHome(c)
		return
	}
	req, err := h.controller(c).BeginHistory(index)
	h.startOrIgnore(c, req, err)
}

// startOrIgnore runs an accepted request in the background and always
// redirects back to the page. Rejections are not shown to the user.
func (h *Handler) startOrIgnore(c *gin.Context, req *app.Request, err error) {
	switch {
	case err == nil:
		h.runDetached(c, req)
	case errors.Is(err, app.ErrBlankQuery):
	default:
		log.Printf("[STATE] Submission ignored: %v", err)
	}
	redirectHome(c)
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
