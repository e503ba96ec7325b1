package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shiplane/carrier-gateway/internal/handlers"
)

type RouterConfig struct {
	MerchantHandler      *handlers.MerchantHandler
	ShipmentHandler      *handlers.ShipmentHandler
	ShipmentEventHandler *handlers.ShipmentEventHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		// Merchants
		api.POST("/merchant", cfg.MerchantHandler.CreateMerchant)
		api.GET("/merchant", cfg.MerchantHandler.ListMerchants)
		api.GET("/merchant/:id", cfg.MerchantHandler.GetMerchant)
		// Shipments
		api.POST("/shipments", cfg.ShipmentHandler.CreateShipment)
		api.GET("/shipments", cfg.ShipmentHandler.ListShipments)
		api.GET("/shipments/:id", cfg.ShipmentHandler.GetShipment)
		api.POST("/shipments/:id/status", cfg.ShipmentHandler.TransitionStatus)
		// Shipment events
		api.GET("/shipments/:id/events", cfg.ShipmentEventHandler.ListEvents)
		api.POST("/shipments/:id/events", cfg.ShipmentEventHandler.AppendEvent)
	}

	return router
}
