package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pawhaven/adoption-api/internal/api/handler"
	"github.com/pawhaven/adoption-api/internal/api/middleware"
	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/service"
	mongodb "github.com/pawhaven/adoption-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. The JWT secret is threaded into the token service here and
// nowhere else.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("adoption"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	animalRepo := mongodb.NewAnimalRepository(db)
	favoriteRepo := mongodb.NewFavoriteRepository(db)

	tokenService := service.NewTokenService(jwtSecret, 0)
	authService := service.NewAuthService(accountRepo, tokenService)
	animalService := service.NewAnimalService(animalRepo, favoriteRepo, log)
	favoriteService := service.NewFavoriteService(favoriteRepo, animalRepo)

	authHandler := handler.NewAuthHandler(authService)
	animalHandler := handler.NewAnimalHandler(animalService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	requireAdmin := middleware.Authenticate(tokenService, domain.RoleAdmin)
	requireCustomer := middleware.Authenticate(tokenService, domain.RoleCustomer)

	// --- Auth routes ---
	e.POST("/api/admin/login", authHandler.AdminLogin)
	e.POST("/api/customers/register", authHandler.Register)
	e.POST("/api/customers/login", authHandler.CustomerLogin)

	// --- Animal routes (public reads, admin writes) ---
	e.GET("/api/animals", animalHandler.List)
	e.GET("/api/animals/:id", animalHandler.Get)
	e.POST("/api/animals", animalHandler.Create, requireAdmin)
	e.PUT("/api/animals/:id", animalHandler.Update, requireAdmin)
	e.DELETE("/api/animals/:id", animalHandler.Delete, requireAdmin)

	// --- Favorites routes (customer only) ---
	e.GET("/api/favorites", favoriteHandler.List, requireCustomer)
	e.POST("/api/favorites/:animalId", favoriteHandler.Add, requireCustomer)
	e.DELETE("/api/favorites/:animalId", favoriteHandler.Remove, requireCustomer)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
