package routes

import (
	"cee-backend/handlers/users"
	"cee-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	userRoutes := r.Group("/users")
	{
		userRoutes.GET("/me", middleware.JWTAuth(), users.GetProfile)
		userRoutes.PUT("/me", middleware.JWTAuth(), users.UpdateProfile)
		userRoutes.GET("/me/billing", middleware.JWTAuth(), users.GetBillingDashboard)
		userRoutes.GET("/", middleware.AdminAuth(), users.GetAllUsers)
		userRoutes.PUT("/:id/role", middleware.AdminAuth(), users.UpdateUserRole)
	}
}
