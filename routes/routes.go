package routes

import (
	"net/http"
	"time"

	"barberbook/handlers"
	"barberbook/middleware"
	"barberbook/models"
	"barberbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterReservationRoutes sets up the endpoints of the scheduling engine.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	api.Use(middleware.JWTAuth(hb.UserRepo))
	{
		// Client surface.
		api.POST("", middleware.RequireRoles(models.RoleClient), hb.Reservations.Create)
		api.DELETE("/:id", middleware.RequireRoles(models.RoleClient), hb.Reservations.Cancel)
		api.GET("/upcoming", middleware.RequireRoles(models.RoleClient), hb.Reservations.Upcoming)
		api.GET("/past", middleware.RequireRoles(models.RoleClient), hb.Reservations.Past)

		// Personnel surface.
		api.PATCH("/:id/status", middleware.RequireRoles(models.RolePersonnel), hb.Reservations.UpdateStatus)
		api.GET("/personnel/:id", middleware.RequireRoles(models.RolePersonnel, models.RoleOwner, models.RoleAdmin), hb.Reservations.ForPersonnel)
		api.GET("/client/:clientId", middleware.RequireRoles(models.RolePersonnel, models.RoleOwner, models.RoleAdmin), hb.Reservations.ClientHistory)

		// Admin surface.
		api.GET("", middleware.RequireRoles(models.RoleAdmin), hb.Reservations.ListAll)

		// Blocked-slot management.
		api.POST("/block", middleware.RequireRoles(models.RolePersonnel, models.RoleAdmin), hb.BlockedSlots.Block)
		api.DELETE("/block", middleware.RequireRoles(models.RolePersonnel, models.RoleAdmin), hb.BlockedSlots.Unblock)
		api.GET("/blocked/day", middleware.RequireRoles(models.RolePersonnel, models.RoleAdmin), hb.BlockedSlots.Day)
	}
}

// RegisterLoyaltyRoutes sets up the loyalty ledger endpoints.
func RegisterLoyaltyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/loyalty")
	api.Use(middleware.JWTAuth(hb.UserRepo))
	{
		api.GET("/me", hb.Loyalty.Me)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterReservationRoutes(r, hb)
	RegisterLoyaltyRoutes(r, hb)
}
