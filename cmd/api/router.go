package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"alphafusion/internal/config"
	"alphafusion/internal/handlers"
	"alphafusion/internal/middleware"
	"alphafusion/internal/services"

	_ "alphafusion/internal/docs" // Import swagger docs
)

// routerDeps holds everything the HTTP surface is built from.
type routerDeps struct {
	config           *config.Config
	stockService     services.StockServicer
	bucketService    services.BucketServicer
	trendService     services.TrendServicer
	analyticsService services.AnalyticsServicer
	sentimentService services.SentimentServicer
	auditService     services.AuditServicer
	hub              http.Handler
}

func newRouter(d routerDeps) *gin.Engine {
	sessionSecret := []byte(d.config.SessionSecret)

	sessionHandler := handlers.NewSessionHandler(d.bucketService, d.auditService, sessionSecret)
	stockHandler := handlers.NewStockHandler(d.stockService)
	marketHandler := handlers.NewMarketHandler(d.stockService, d.hub)
	trendHandler := handlers.NewTrendHandler(d.trendService)
	bucketHandler := handlers.NewBucketHandler(d.bucketService, d.auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(d.analyticsService, d.sentimentService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(d.config.CORSOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/sessions", sessionHandler.CreateSession)

	stocks := v1.Group("/stocks")
	stocks.GET("", stockHandler.SearchStocks)
	stocks.GET("/:symbol", stockHandler.GetStock)

	market := v1.Group("/market")
	market.GET("/indices", marketHandler.GetIndices)
	market.GET("/live", marketHandler.Live)

	v1.GET("/trends", trendHandler.GetTrends)

	analytics := v1.Group("/analytics")
	analytics.GET("/fundamental", analyticsHandler.GetFundamental)
	analytics.GET("/technical", analyticsHandler.GetTechnical)
	analytics.GET("/sentiment", analyticsHandler.GetSentiment)
	analytics.GET("/combined", analyticsHandler.GetCombined)
	analytics.GET("/credibility", analyticsHandler.GetCredibility)
	analytics.POST("/sentiment/refresh",
		middleware.APIKeyMiddleware(d.config.PipelineAPIKey), analyticsHandler.RefreshSentiment)

	// Session routes
	bucket := v1.Group("/bucket")
	bucket.Use(middleware.SessionMiddleware(sessionSecret))
	bucket.GET("", bucketHandler.GetBucket)
	bucket.GET("/summary", bucketHandler.GetSummary)
	bucket.POST("/holdings", bucketHandler.AddHolding)
	bucket.DELETE("/holdings/:id", bucketHandler.RemoveHolding)

	return router
}
