package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"book-deconstructor/internal/app"

	"github.com/gin-gonic/gin"
)

// DeconstructRequest is the JSON body of POST /api/deconstruct
type DeconstructRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

// HandleGetState returns the caller's snapshot
func (h *Handler) HandleGetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller(c).Snapshot())
}

// HandleAPIDeconstruct runs a deconstruction synchronously and returns the resulting snapshot.
// Gateway failures are part of the snapshot (status "error"), not HTTP errors.
func (h *Handler) HandleAPIDeconstruct(c *gin.Context) {
	var req DeconstructRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.Contains(err.Error(), "max") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Title is too long (max 200 characters)",
				"code":  "TITLE_TOO_LONG",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: title is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	ctrl := h.controller(c)
	title := normalizeTitle(req.Title)
	h.runSync(c, ctrl, func() error {
		return ctrl.Submit(context.WithoutCancel(c.Request.Context()), title)
	})
}

// HandleAPIRetry re-issues the last query synchronously
func (h *Handler) HandleAPIRetry(c *gin.Context) {
	ctrl := h.controller(c)
	h.runSync(c, ctrl, func() error {
		return ctrl.Retry(context.WithoutCancel(c.Request.Context()))
	})
}

// HandleAPIHistory re-submits a history entry synchronously
func (h *Handler) HandleAPIHistory(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid history index",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	ctrl := h.controller(c)
	h.runSync(c, ctrl, func() error {
		return ctrl.SelectHistory(context.WithoutCancel(c.Request.Context()), index)
	})
}

func (h *Handler) runSync(c *gin.Context, ctrl *app.Controller, run func() error) {
	h.inflight.Add(1)
	err := run()
	h.inflight.Done()

	switch {
	case err == nil:
		c.JSON(http.StatusOK, ctrl.Snapshot())
	case errors.Is(err, app.ErrBlankQuery):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: title is required",
			"code":  "INVALID_REQUEST",
		})
	case errors.Is(err, app.ErrInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"error": "A deconstruction is already in progress",
			"code":  "IN_PROGRESS",
		})
	case errors.Is(err, app.ErrNothingToRetry):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Nothing to retry",
			"code":  "NOTHING_TO_RETRY",
		})
	case errors.Is(err, app.ErrNoSuchEntry):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "History entry not found",
			"code":  "HISTORY_NOT_FOUND",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process request",
			"code":  "INTERNAL_ERROR",
		})
	}
}
