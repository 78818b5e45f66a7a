package routes

import (
	"time"

	"cee-backend/handlers/contacts"
	"cee-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ContactsRoutes(r *gin.Engine) {
	r.POST("/contact", middleware.RateLimit(5, time.Minute), contacts.CreateContact)
	r.GET("/contact", middleware.AdminAuth(), contacts.GetAllContacts)
	r.PUT("/contact/:id/processed", middleware.AdminAuth(), contacts.MarkContactProcessed)
}
