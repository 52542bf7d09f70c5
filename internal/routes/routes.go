package routes

import (
	"operadoras/internal/config"
	"operadoras/internal/controllers"
	"operadoras/internal/search"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, controllers and API routes
func SetupRouter(engine *search.Engine, cfg *config.Config) *gin.Engine {
	operatorController := controllers.OperatorController{Engine: engine}

	router := gin.New()
	router.Use(requestLogger(), recovery(), corsMiddleware(cfg.AllowedOrigins))

	router.GET("/", operatorController.Home)

	api := router.Group("/api")
	{
		// GET /api/buscar?q=termo
		api.GET("/buscar", operatorController.Search)

		// GET /api/health
		api.GET("/health", operatorController.Health)
	}

	return router
}
