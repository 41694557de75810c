package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uwgen/media-api/internal/api/handler"
	"github.com/uwgen/media-api/internal/api/middleware"
	"github.com/uwgen/media-api/internal/core/ports"
	"github.com/uwgen/media-api/internal/core/service"
	mongodb "github.com/uwgen/media-api/internal/infrastructure/db/mongo"
	redisdb "github.com/uwgen/media-api/internal/infrastructure/db/redis"
	"github.com/uwgen/media-api/internal/pkg/secrets"
	"github.com/uwgen/media-api/internal/pkg/token"
)

// Dependencies carries everything the router needs to assemble the service.
type Dependencies struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Issuer     *token.Issuer
	Cipher     *secrets.Cipher
	Artifacts  ports.ArtifactStore
	Provider   ports.ImageProvider
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("uwgen"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	sessions := redisdb.NewSessionStore(deps.Redis, deps.SessionTTL)

	authService := service.NewAuthService(userRepo, deps.Issuer)
	vaultService := service.NewVaultService(userRepo, deps.Cipher)
	galleryService := service.NewGalleryService(deps.Artifacts)
	imageService := service.NewImageService(vaultService, deps.Provider, deps.Artifacts, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, sessions)
	settingsHandler := handler.NewSettingsHandler(vaultService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	imageHandler := handler.NewImageHandler(imageService, deps.Artifacts)

	authRequired := middleware.Auth(deps.Issuer, userRepo, sessions)

	// --- Auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/signin", authHandler.Signin)
	v1.POST("/auth/logout", authHandler.Logout)

	// --- Protected routes ---
	v1.PUT("/settings", settingsHandler.Update, authRequired)
	v1.POST("/settings/api-key/regenerate", settingsHandler.RegenerateAPIKey, authRequired)
	v1.POST("/image_gen", imageHandler.Generate, authRequired)
	v1.POST("/image_edit", imageHandler.Edit, authRequired)
	v1.GET("/images/:type/:date/:id", imageHandler.Serve, authRequired)
	v1.GET("/gallery", galleryHandler.List, authRequired)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
