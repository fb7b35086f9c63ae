package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"book-deconstructor/internal/app"
	"book-deconstructor/internal/config"
	"book-deconstructor/internal/deconstruct"
	"book-deconstructor/internal/handler"
	"book-deconstructor/internal/middleware"
	"book-deconstructor/internal/storage"
	"book-deconstructor/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] Invalid configuration: %v", err)
	}
	log.Printf("[INFO] Starting Book Deconstructor env=%s", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.HistoryBackend, storage.Options{
		Dir:        cfg.HistoryDir,
		RedisURL:   cfg.RedisURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to open history storage: %v", err)
	}
	defer store.Close()
	log.Printf("[INFO] History storage ready backend=%s", cfg.HistoryBackend)

	gateway, mode := deconstruct.Select(ctx, cfg.DemoMode, cfg.GeminiAPIKey, cfg.GeminiModel)

	registry, err := app.NewRegistry(cfg.SessionCacheSize, gateway, store)
	if err != nil {
		log.Fatalf("[FATAL] Failed to create session registry: %v", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		log.Fatalf("[FATAL] Failed to parse templates: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)
	dailyQuota := middleware.NewDailyQuota(cfg.DailyQuota)
	log.Printf("[INFO] Rate limiting enabled rate=%.2f/s burst=%d quota=%d",
		cfg.RateLimitPerSecond, cfg.RateLimitBurst, cfg.DailyQuota)

	h := handler.New(registry, mode, cfg.IsProduction())
	handler.Routes(r, h, middleware.RateLimitMiddleware(ipLimiter, dailyQuota))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[INFO] Server ready port=%s allowed_origins=%v", cfg.Port, cfg.AllowedOrigins)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] Server shutdown: %v", err)
	}
	// let outstanding deconstructions finish so their history is saved
	h.Wait()
	log.Println("[INFO] Server stopped")
}
