package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-rights-ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(middleware.NewAuthenticator(authCfg))

	v1 := router.Group("/api/v1")
	{
		contents := v1.Group("/contents/:id")

		// Token identity (public read access)
		contents.GET("/token", handler.GetToken)

		// Tokenization (creators tokenize their own content, recovery is for operators)
		contents.POST("/tokenize", auth, handler.Tokenize)
		contents.POST("/tokenization/recover", auth, middleware.RequireRole(middleware.ROLE_OPERATOR), handler.RecoverTokenization)
		contents.GET("/tokenization", handler.GetTokenization)

		// Purchases
		contents.POST("/purchases", handler.Purchase)
		contents.GET("/purchases/:wallet", handler.GetPurchase)

		// Ownership and rights (public read access)
		contents.GET("/ownership/:wallet", handler.GetOwnership)
		contents.GET("/rights/:wallet", handler.GetRights)
	}
}
