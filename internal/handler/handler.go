package handler

import (
	"context"
	"log"
	"sync"
	"unicode/utf8"

	"book-deconstructor/internal/app"
	"book-deconstructor/internal/deconstruct"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"
)

// MaxTitleLength is the longest accepted book title, in characters
const MaxTitleLength = 200

// Handler serves the page, the JSON API and the probes
type Handler struct {
	registry      *app.Registry
	gatewayMode   deconstruct.Mode
	secureCookies bool
	inflight      sync.WaitGroup
}

// New creates a Handler. gatewayMode is reported by the probes.
func New(registry *app.Registry, gatewayMode deconstruct.Mode, secureCookies bool) *Handler {
	return &Handler{
		registry:      registry,
		gatewayMode:   gatewayMode,
		secureCookies: secureCookies,
	}
}

// Wait blocks until every background deconstruction has finished
func (h *Handler) Wait() {
	h.inflight.Wait()
}

// controller returns the controller for the caller's session
func (h *Handler) controller(c *gin.Context) *app.Controller {
	return h.registry.Get(c.Request.Context(), h.sessionID(c))
}

// runDetached runs req in the background. The request is not tied to the
// HTTP request, so it completes even if the browser goes away.
func (h *Handler) runDetached(c *gin.Context, req *app.Request) {
	ctx := context.WithoutCancel(c.Request.Context())
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		req.Run(ctx)
	}()
}

// normalizeTitle applies NFC so lookalike compositions dedupe in history,
// and cuts titles longer than MaxTitleLength
func normalizeTitle(title string) string {
	title = norm.NFC.String(title)
	if utf8.RuneCountInString(title) > MaxTitleLength {
		title = string([]rune(title)[:MaxTitleLength])
	}
	return title
}

// Routes registers all routes. submitLimit guards routes that call the gateway.
func Routes(r *gin.Engine, h *Handler, submitLimit gin.HandlerFunc) {
	// Health check endpoints (no rate limiting)
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)

	r.GET("/", h.HandleIndex)
	r.POST("/deconstruct", submitLimit, h.HandleDeconstruct)
	r.POST("/retry", submitLimit, h.HandleRetry)
	r.POST("/history/:index", submitLimit, h.HandleHistory)

	api := r.Group("/api")
	{
		api.GET("/state", h.HandleGetState)
		api.POST("/deconstruct", submitLimit, h.HandleAPIDeconstruct)
		api.POST("/retry", submitLimit, h.HandleAPIRetry)
		api.POST("/history/:index", submitLimit, h.HandleAPIHistory)
	}

	log.Printf("[INFO] Routes registered gateway=%s", h.gatewayMode)
}
