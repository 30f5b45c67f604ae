package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ciba/handlers"
	"ciba/utils"
)

// RegisterClinicRoutes registers the clinic booking endpoints.
func RegisterClinicRoutes(r *gin.Engine, h *handlers.ClinicHandler) {
	api := r.Group("/api/clinic")
	{
		api.GET("/availability/:date", h.GetAvailabilityHandler)
		api.POST("/dates-availability", h.DatesAvailabilityHandler)
		api.POST("", h.CreateBookingHandler)
	}
}

// RegisterNewsletterRoutes registers subscription and broadcast endpoints.
func RegisterNewsletterRoutes(r *gin.Engine, h *handlers.NewsletterHandler) {
	api := r.Group("/api/newsletter")
	{
		api.POST("/subscribe", h.SubscribeHandler)
		api.POST("/broadcast", h.BroadcastHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterMetricsRoute exposes prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes applies shared middleware and wires up every route group.
func RegisterRoutes(r *gin.Engine, clinicHandler *handlers.ClinicHandler, newsletterHandler *handlers.NewsletterHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterClinicRoutes(r, clinicHandler)
	RegisterNewsletterRoutes(r, newsletterHandler)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
