package routes

import (
	"time"

	"cee-backend/handlers/auth"
	"cee-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	r.POST("/register", middleware.RateLimit(10, time.Minute), auth.Register)
	r.POST("/login", middleware.RateLimit(20, time.Minute), auth.Login)
	r.GET("/auth/me", middleware.JWTAuth(), auth.Me)
}
