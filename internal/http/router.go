package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string, readiness func(ctx context.Context) error) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		if readiness != nil {
			if err := readiness(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The quote estimator backs the public quote wizard, so it stays
	// outside the auth group.
	public := router.Group("/api/v1")
	{
		public.GET("/pricing/quote", handler.quote)
		public.GET("/pricing/tranches", handler.listTranches)
		public.GET("/pricing/categories", handler.listCategories)
	}

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/missions", handler.listMissions)
		protected.GET("/missions/:id", handler.getMission)
		protected.POST("/missions", handler.createMission)
		protected.PUT("/missions/:id/status", handler.updateMissionStatus)
		protected.POST("/missions/:id/cancel", handler.cancelMission)
		protected.PUT("/missions/:id/driver", handler.assignDriver)

		protected.GET("/pricing/grid", handler.getGrid)
		protected.PUT("/pricing/grid/:category", handler.saveGrid)

		protected.GET("/invoices", handler.listInvoices)
		protected.GET("/invoices/:id", handler.getInvoice)
		protected.POST("/missions/:id/invoice", handler.generateInvoice)
	}

	return router
}
