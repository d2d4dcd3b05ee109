package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"saldoku.backend/internal/interfaces/http/handlers"
	"saldoku.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	walletHandler   *handlers.WalletHandler
	transferHandler *handlers.TransferHandler
	savingsHandler  *handlers.SavingsHandler
	topupHandler    *handlers.TopupHandler
	adminHandler    *handlers.AdminHandler
	authMiddleware  gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, with protected profile endpoints)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Wallet routes (protected)
		wallets := v1.Group("/wallets")
		wallets.Use(d.authMiddleware)
		{
			wallets.GET("", d.walletHandler.ListWallets)
			wallets.POST("", d.walletHandler.CreateWallet)
			wallets.GET("/:id", d.walletHandler.GetWallet)
			wallets.DELETE("/:id", d.walletHandler.DeleteWallet)
		}

		// Transfer routes (protected)
		transfers := v1.Group("/transfers")
		transfers.Use(d.authMiddleware)
		{
			transfers.POST("", middleware.IdempotencyMiddleware(), d.transferHandler.Transfer)
		}

		// Transaction history (protected)
		transactions := v1.Group("/transactions")
		transactions.Use(d.authMiddleware)
		{
			transactions.GET("", d.transferHandler.ListTransactions)
			transactions.GET("/:id", d.transferHandler.GetTransaction)
		}

		// Savings plan routes (protected)
		savings := v1.Group("/savings")
		savings.Use(d.authMiddleware)
		{
			savings.POST("", d.savingsHandler.CreatePlan)
			savings.GET("", d.savingsHandler.ListPlans)
			savings.GET("/:id", d.savingsHandler.GetPlan)
			savings.PATCH("/:id", d.savingsHandler.UpdatePlan)
			savings.DELETE("/:id", d.savingsHandler.DeletePlan)
			savings.POST("/:id/movements", middleware.IdempotencyMiddleware(), d.savingsHandler.Move)
		}

		// Top-up request routes (protected)
		topups := v1.Group("/topups")
		topups.Use(d.authMiddleware)
		{
			topups.POST("", middleware.IdempotencyMiddleware(), d.topupHandler.CreateRequest)
			topups.GET("", d.topupHandler.ListMyRequests)
		}

		// Admin routes (protected, admin roles only)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.Stats)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/verification", d.adminHandler.UpdateVerification)
			admin.PUT("/users/:id/role", middleware.RequireSuperAdmin(), d.adminHandler.UpdateRole)
			admin.GET("/transactions", d.adminHandler.ListTransactions)
			admin.GET("/logs", middleware.RequireSuperAdmin(), d.adminHandler.ListLogs)
			admin.GET("/topups/pending", d.topupHandler.ListPending)
			admin.POST("/topups/:id/settle", d.topupHandler.Settle)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID, Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
