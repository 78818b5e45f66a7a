package routes

import (
	"cee-backend/handlers/billing"
	"cee-backend/middleware"

	"github.com/gin-gonic/gin"
)

func BillingRoutes(r *gin.Engine) {
	subscriptionRoutes := r.Group("/subscriptions")
	subscriptionRoutes.Use(middleware.JWTAuth())
	{
		subscriptionRoutes.POST("/", billing.CreateSubscription)
		subscriptionRoutes.DELETE("/", billing.CancelSubscription)
	}
	// Sin autenticación propia: la firma Stripe es la autenticación
	r.POST("/webhooks/billing", billing.WebhookHandler)
}
