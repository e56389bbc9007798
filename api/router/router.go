package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"libdb-finder/api/handlers"
	"libdb-finder/api/middleware"
	"libdb-finder/api/templates"
	"libdb-finder/config"
	_ "libdb-finder/docs"
	"libdb-finder/services"
)

func New(svc *services.AnalysisService, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.CORS(cfg.AllowedOrigins))
	r.SetHTMLTemplate(templates.Load())

	r.GET("/health", handlers.HealthHandler(svc))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTML presenter
	r.GET("/", handlers.IndexPage(svc))
	r.POST("/analyze", handlers.AnalyzePage(svc))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/analyses", handlers.AnalyzeHandler(svc))
		api.GET("/analyses", handlers.ListRunsHandler(svc))
		api.POST("/extract", handlers.ExtractHandler(svc))
		api.GET("/locate", handlers.LocateHandler(svc))
	}

	return r
}
