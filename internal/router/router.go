package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platefuel/backend/config"
	"github.com/platefuel/backend/internal/api"
	"github.com/platefuel/backend/internal/database"
	"github.com/platefuel/backend/internal/middleware"
	"github.com/platefuel/backend/internal/service"
)

// Setup wires middleware, services and handlers into the Gin engine. The
// Redis client and image service may be nil; the affected features degrade
// rather than block startup.
func Setup(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	authService := service.NewAuthService(db, cfg.JWTSecret, logger)
	recipeService := service.NewRecipeService(db, redisClient, logger)
	reviewService := service.NewReviewService(db, logger)
	mealPlanService := service.NewMealPlanService(db, logger)
	shoppingService := service.NewShoppingListService(db, logger)
	adminService := service.NewAdminService(db, logger)

	var imageService *service.ImageService
	if cfg.S3 != nil {
		imageService = service.NewImageService(cfg.S3, logger)
	}

	authRequired := middleware.AuthMiddleware(authService)
	adminOnly := middleware.AdminRequired()
	writeLimit := middleware.NewWriteRateLimiter(redisClient).Middleware()

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api")
	api.NewAuthHandler(authService, logger).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, imageService, logger).RegisterRoutes(v1, authRequired, writeLimit)
	api.NewReviewHandler(reviewService, logger).RegisterRoutes(v1, authRequired, writeLimit)
	api.NewMealPlanHandler(mealPlanService, logger).RegisterRoutes(v1, authRequired)
	api.NewShoppingListHandler(shoppingService, logger).RegisterRoutes(v1, authRequired)
	api.NewAdminHandler(adminService, logger).RegisterRoutes(v1, authRequired, adminOnly)

	return router
}
