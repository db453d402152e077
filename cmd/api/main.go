package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-applytrack-backend/config"
	v1 "go-applytrack-backend/internal/delivery/http/v1"
	"go-applytrack-backend/internal/repository/postgres"
	"go-applytrack-backend/internal/usecase"
	"go-applytrack-backend/pkg/auth"
	"go-applytrack-backend/pkg/database"
	"go-applytrack-backend/pkg/logger"
	"go-applytrack-backend/pkg/markdown"
	"go-applytrack-backend/pkg/pdf"
	"go-applytrack-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           ApplyTrack Backend API
// @version         1.0
// @description     Backend for resume and cover letter management using Clean Architecture.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting applytrack backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional: rate limiting degrades to in-memory without it)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup PDF Renderer
	// The chromium renderer launches the browser here so a broken install
	// fails at startup instead of on the first export request.
	renderer, err := newRenderer(cfg)
	if err != nil {
		logger.Log.Error("Failed to start PDF renderer", "renderer", cfg.PDFRenderer, "error", err)
		os.Exit(1)
	}
	defer renderer.Close()

	// 6. Setup Repositories
	documentRepo := postgres.NewDocumentRepository(dbPool)
	shareRepo := postgres.NewShareRepository(dbPool)

	// 7. Setup UseCases
	validate := validator.New()
	documentUC := usecase.NewDocumentUsecase(documentRepo, validate)
	shareUC := usecase.NewShareUsecase(shareRepo, documentRepo, cfg.FrontendURL, cfg.ShareRateLimitMax, cfg.ShareRateLimitWindow)
	exportUC := usecase.NewExportUsecase(shareUC, markdown.NewFormatter(), renderer)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		DocumentUC:   documentUC,
		ShareUC:      shareUC,
		ExportUC:     exportUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func newRenderer(cfg *config.Config) (pdf.Renderer, error) {
	switch cfg.PDFRenderer {
	case "wkhtmltopdf":
		return pdf.NewWkhtmltopdfRenderer(cfg.WkhtmltopdfBin), nil
	default:
		return pdf.NewChromiumRenderer(cfg.RodBrowserBin, cfg.PDFRenderTimeout)
	}
}
