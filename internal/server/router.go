package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/crmcore-backend/internal/handlers"
)

type RouterConfig struct {
	CustomerHandler *handlers.CustomerHandler
	ProductHandler  *handlers.ProductHandler
	OrderHandler    *handlers.OrderHandler
	ReportHandler   *handlers.ReportHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/hello", handlers.Hello)
		// Customers
		api.POST("/customers", cfg.CustomerHandler.Create)
		api.POST("/customers/bulk", cfg.CustomerHandler.BulkCreate)
		api.GET("/customers", cfg.CustomerHandler.List)
		api.GET("/customers/:id", cfg.CustomerHandler.Get)
		// Products
		api.POST("/products", cfg.ProductHandler.Create)
		api.GET("/products", cfg.ProductHandler.List)
		api.POST("/products/restock", cfg.ProductHandler.Restock)
		// Orders
		api.POST("/orders", cfg.OrderHandler.Create)
		api.GET("/orders", cfg.OrderHandler.List)
		// Reporting
		api.GET("/report", cfg.ReportHandler.Summary)
	}

	return router
}
