// internal/app/router.go
package app

import (
	authHandler "alamin-service/internal/handlers/auth"
	clientHandler "alamin-service/internal/handlers/client"
	insuranceHandler "alamin-service/internal/handlers/insurance"
	reminderHandler "alamin-service/internal/handlers/reminder"
	statsHandler "alamin-service/internal/handlers/stats"
	syncHandler "alamin-service/internal/handlers/sync"
	wsHandler "alamin-service/internal/handlers/websocket"
	"alamin-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	ClientHandler    *clientHandler.ClientHandler
	InsuranceHandler *insuranceHandler.InsuranceHandler
	SyncHandler      *syncHandler.SyncHandler
	ReminderHandler  *reminderHandler.ReminderHandler
	StatsHandler     *statsHandler.StatsHandler
	WSHandler        *wsHandler.WebSocketHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.Me)
	}

	// ==================== Clients ====================
	clients := api.Group("/clients")
	clients.Use(h.AuthMiddleware.Auth())
	{
		clients.GET("", h.ClientHandler.List)
		clients.POST("", h.ClientHandler.Create)
		clients.GET("/:id", h.ClientHandler.Get)
		clients.PUT("/:id", h.ClientHandler.Update)
		clients.DELETE("/:id", h.ClientHandler.Delete)

		// Owned records
		clients.POST("/:id/transactions", h.ClientHandler.AddTransaction)
		clients.PUT("/:id/transactions/:txId", h.ClientHandler.UpdateTransaction)
		clients.DELETE("/:id/transactions/:txId", h.ClientHandler.DeleteTransaction)

		clients.POST("/:id/files", h.ClientHandler.AddFile)
		clients.GET("/:id/files/:fileId", h.ClientHandler.GetFile)
		clients.DELETE("/:id/files/:fileId", h.ClientHandler.DeleteFile)

		clients.PUT("/:id/reminder", h.ClientHandler.SetReminder)
	}

	// ==================== Insurance Companies ====================
	insurance := api.Group("/insurance")
	insurance.Use(h.AuthMiddleware.Auth())
	{
		insurance.GET("", h.InsuranceHandler.List)
		insurance.POST("", h.InsuranceHandler.Create)
		insurance.GET("/:id", h.InsuranceHandler.Get)
		insurance.PUT("/:id", h.InsuranceHandler.Update)
		insurance.DELETE("/:id", h.InsuranceHandler.Delete)
	}

	// ==================== Reminders ====================
	reminders := api.Group("/reminders")
	reminders.Use(h.AuthMiddleware.Auth())
	{
		reminders.GET("", h.ReminderHandler.ListAll)
		reminders.GET("/upcoming", h.ReminderHandler.ListUpcoming)
	}

	// ==================== Snapshot Export / Import ====================
	data := api.Group("")
	data.Use(h.AuthMiddleware.Auth())
	{
		data.GET("/export", h.SyncHandler.Export)
		data.POST("/import", h.SyncHandler.Import)
		data.GET("/stats", h.StatsHandler.Overview)
	}

	// ==================== Manager Routes ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.ManagerOnly())
	{
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
