// Package app wires the HTTP routes for the thinking assistant API.
package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the shared HTTP router.
func NewRouter() (*gin.Engine, error) {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", Health)
	router.GET("/test", TestStore)

	router.POST("/api/account/init", InitAccount)
	router.POST("/api/account/upgrade", UpgradeAccount)
	router.GET("/api/account/:clientid", GetAccount)

	router.POST("/api/billing/create-checkout-session", CreateCheckoutSession)
	router.POST("/api/billing/portal-session", CreatePortalSession)
	router.POST("/api/stripe/webhook", StripeWebhook)

	router.POST("/api/session", StartSession)
	router.GET("/api/session/:sessionid/next-question", NextQuestion)
	router.POST("/api/session/:sessionid/answer", SubmitAnswer)
	router.GET("/api/session/:sessionid/suggestions", GetSuggestions)

	return router, nil
}
