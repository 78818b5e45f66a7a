package routes

import (
	"cee-backend/handlers/businesses"
	"cee-backend/middleware"

	"github.com/gin-gonic/gin"
)

func BusinessesRoutes(r *gin.Engine) {
	businessRoutes := r.Group("/businesses")
	{
		businessRoutes.GET("/", businesses.GetAllBusinesses)
		businessRoutes.POST("/", middleware.AnuncianteAuth(), businesses.CreateBusiness)
		businessRoutes.GET("/mine", middleware.AnuncianteAuth(), businesses.GetMyBusinesses)
		businessRoutes.PUT("/:id", middleware.AnuncianteAuth(), businesses.UpdateBusiness)
		businessRoutes.POST("/:id/logo", middleware.AnuncianteAuth(), businesses.UploadBusinessLogo)
	}
}
