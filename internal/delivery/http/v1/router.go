package v1

import (
	"net/http"

	"go-applytrack-backend/config"
	"go-applytrack-backend/internal/delivery/http/middleware"
	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	DocumentUC   domain.DocumentUsecase
	ShareUC      domain.ShareUsecase
	ExportUC     domain.ExportUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public share routes: no auth, rate limited per client IP
	public := api.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.PublicShareRateLimitConfig()))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewDocumentHandler(protected, deps.DocumentUC)
		NewShareHandler(public, protected, deps.ShareUC)
		NewExportHandler(public, protected, deps.ExportUC)
	}

	return r
}
