package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}

func run(ctx context.Context, cfg *Config) error {
	setupLogging(cfg.production, cfg.verbose)
	logInfo("Starting Footdle v%s in %s mode", releaseVersion, envName(cfg.production))

	if cfg.seed == defaultSeed {
		logWarn("Using the development seed; set FOOTDLE_SEED or WORDS_SEED before deploying")
	}

	words, err := loadWordList(cfg.wordsPath)
	if err != nil {
		return err
	}
	logInfo("Loaded %d words from %s", len(words), cfg.wordsPath)

	app, err := newApp(cfg, words, time.Now)
	if err != nil {
		return err
	}

	if cfg.production {
		gin.SetMode(gin.ReleaseMode)
	}

	return startServer(ctx, cfg, newRouter(app))
}

func newRouter(app *App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), requestLogMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET(RouteHealthz, noStoreCacheControl(), app.healthzHandler)
	router.GET(RouteVersion, noStoreCacheControl(), versionHandler)

	api := router.Group(RouteAPI)
	api.GET(RoutePuzzle, app.puzzleCacheControl(), app.puzzleHandler)

	scoreChain := []gin.HandlerFunc{noStoreCacheControl()}
	if app.RateLimitRPS > 0 {
		scoreChain = append(scoreChain, app.rateLimitMiddleware())
	}
	api.POST(RouteScore, append(scoreChain, app.scoreHandler)...)

	return router
}

func startServer(ctx context.Context, cfg *Config, router *gin.Engine) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logInfo("Server starting on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
	}

	logInfo("Server shutdown complete")
	return nil
}
